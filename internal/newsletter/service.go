package newsletter

import (
	"context"
	"strings"

	"emeraldscents-be/internal/logger"
	"emeraldscents-be/internal/notification"

	"go.uber.org/zap"
)

type Service interface {
	Subscribe(ctx context.Context, email string) error
}

type service struct {
	repo   Repository
	mailer notification.Mailer
}

func NewService(repo Repository, mailer notification.Mailer) Service {
	return &service{repo: repo, mailer: mailer}
}

func (s *service) Subscribe(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}

	if _, err := s.repo.Subscribe(ctx, email); err != nil {
		return err
	}

	// Welcome mail must not fail the subscription.
	if err := s.mailer.Send(ctx, email, notification.SubjectNewsletterWelcome, notification.NewsletterWelcomeEmail()); err != nil {
		logger.FromCtx(ctx).Warn("failed to send newsletter welcome email",
			zap.String("email", email),
			zap.Error(err),
		)
	}

	return nil
}
