package newsletter

import "errors"

var (
	ErrAlreadySubscribed = errors.New("email already subscribed")
	ErrInvalidEmail      = errors.New("a valid email address is required")
)
