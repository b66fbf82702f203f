package cart

import (
	"context"

	"emeraldscents-be/internal/product"
	"emeraldscents-be/internal/utils"
)

type Service interface {
	Add(ctx context.Context, input AddItemInput) (*CartItem, error)
	Get(ctx context.Context) ([]*CartItem, error)
	UpdateQuantity(ctx context.Context, input UpdateItemInput) error
	Remove(ctx context.Context, productID string) error
	Clear(ctx context.Context) error
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

func (s *service) Add(ctx context.Context, input AddItemInput) (*CartItem, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotAuthenticated
	}
	if input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	if !p.IsPublished {
		return nil, ErrProductNotFound
	}

	existing, err := s.repo.GetItem(ctx, userID, input.ProductID)
	if err != nil {
		return nil, err
	}

	finalQty := input.Quantity
	if existing != nil {
		finalQty += existing.Quantity
	}

	if p.Inventory < finalQty {
		return nil, ErrInsufficientStock
	}

	if existing == nil {
		return s.repo.CreateItem(ctx, userID, input.ProductID, finalQty)
	}

	if err := s.repo.UpdateQuantity(ctx, userID, input.ProductID, finalQty); err != nil {
		return nil, err
	}
	existing.Quantity = finalQty
	return existing, nil
}

func (s *service) Get(ctx context.Context) ([]*CartItem, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotAuthenticated
	}

	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*CartItem{}
	}
	return items, nil
}

func (s *service) UpdateQuantity(ctx context.Context, input UpdateItemInput) error {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUserNotAuthenticated
	}
	if input.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return s.repo.UpdateQuantity(ctx, userID, input.ProductID, input.Quantity)
}

func (s *service) Remove(ctx context.Context, productID string) error {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUserNotAuthenticated
	}
	return s.repo.Remove(ctx, userID, productID)
}

func (s *service) Clear(ctx context.Context) error {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUserNotAuthenticated
	}
	return s.repo.Clear(ctx, userID)
}
