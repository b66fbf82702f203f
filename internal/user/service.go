package user

import (
	"context"

	"emeraldscents-be/internal/logger"
	"emeraldscents-be/internal/notification"
	"emeraldscents-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Signup(ctx context.Context, input SignupInput) (*User, error)
	Login(ctx context.Context, input LoginInput) (string, *User, error)
	Profile(ctx context.Context, userID string) (*User, error)
}

type service struct {
	repo   Repository
	mailer notification.Mailer
}

func NewService(repo Repository, mailer notification.Mailer) Service {
	return &service{repo: repo, mailer: mailer}
}

func (s *service) Signup(ctx context.Context, input SignupInput) (*User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashed,
		Role:     utils.RoleCustomer,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	// Welcome mail must not block or fail the signup.
	if err := s.mailer.Send(ctx, u.Email, notification.SubjectWelcome, notification.WelcomeEmail(u.Name)); err != nil {
		logger.FromCtx(ctx).Warn("failed to send welcome email",
			zap.String("email", u.Email),
			zap.Error(err),
		)
	}

	return u, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (string, *User, error) {
	u, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		if err == ErrUserNotFound {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !CheckPasswordHash(input.Password, u.Password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, u.Role, u.Email)
	if err != nil {
		return "", nil, err
	}

	return token, u, nil
}

func (s *service) Profile(ctx context.Context, userID string) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}
