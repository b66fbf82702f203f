package review

import (
	"context"

	"emeraldscents-be/internal/utils"
)

type Service interface {
	// Create stores an unapproved review; it stays invisible to the
	// public listing until an admin approves it.
	Create(ctx context.Context, productID string, input ReviewInput) (*Review, error)
	ListApproved(ctx context.Context, productID string) ([]*Review, error)
	ListPending(ctx context.Context) ([]*Review, error)
	Approve(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, productID string, input ReviewInput) (*Review, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}

	rev := &Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}
	if err := s.repo.Create(ctx, rev); err != nil {
		return nil, err
	}
	return rev, nil
}

func (s *service) ListApproved(ctx context.Context, productID string) ([]*Review, error) {
	reviews, err := s.repo.ListByProduct(ctx, productID, true)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []*Review{}
	}
	return reviews, nil
}

func (s *service) ListPending(ctx context.Context) ([]*Review, error) {
	reviews, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []*Review{}
	}
	return reviews, nil
}

func (s *service) Approve(ctx context.Context, id string) error {
	return s.repo.Approve(ctx, id)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
