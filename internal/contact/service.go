package contact

import (
	"context"
	"errors"
	"fmt"

	"emeraldscents-be/internal/logger"
	"emeraldscents-be/internal/notification"

	"go.uber.org/zap"
)

var ErrMissingFields = errors.New("name, email, subject and message are required")

type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type Service interface {
	Submit(ctx context.Context, msg Message) error
}

type service struct {
	mailer     notification.Mailer
	adminEmail string
}

func NewService(mailer notification.Mailer, adminEmail string) Service {
	return &service{mailer: mailer, adminEmail: adminEmail}
}

// Submit forwards the form to the store inbox and confirms receipt to the
// sender. Only the store-side delivery failure surfaces as an error; a
// bounced confirmation is logged and swallowed.
func (s *service) Submit(ctx context.Context, msg Message) error {
	if msg.Name == "" || msg.Email == "" || msg.Subject == "" || msg.Message == "" {
		return ErrMissingFields
	}

	err := s.mailer.Send(
		ctx,
		s.adminEmail,
		fmt.Sprintf("Contact Form: %s", msg.Subject),
		notification.ContactAdminEmail(msg.Name, msg.Email, msg.Subject, msg.Message),
	)
	if err != nil {
		return err
	}

	if err := s.mailer.Send(
		ctx,
		msg.Email,
		notification.SubjectContactConfirmation,
		notification.ContactConfirmationEmail(msg.Name, msg.Message),
	); err != nil {
		logger.FromCtx(ctx).Warn("failed to send contact confirmation email",
			zap.String("email", msg.Email),
			zap.Error(err),
		)
	}

	return nil
}
