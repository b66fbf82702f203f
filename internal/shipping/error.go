package shipping

import "errors"

var (
	ErrZoneNotFound = errors.New("shipping zone not found")
	ErrZoneExists   = errors.New("shipping zone already configured for region")
	ErrInvalidZone  = errors.New("region must be non-empty and fee non-negative")
)
