package product

import (
	"context"
	"math"
)

type Service interface {
	List(ctx context.Context, filter *ListFilter, sort ListSort, limit, page int) (*ListResult, error)
	Get(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, input ProductInput) (*Product, error)
	Update(ctx context.Context, id string, input ProductInput) (*Product, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, filter *ListFilter, sort ListSort, limit, page int) (*ListResult, error) {
	if limit <= 0 {
		limit = 12
	}
	if page <= 0 {
		page = 1
	}

	products, total, err := s.repo.List(ctx, filter, sort, limit, page)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []*Product{}
	}

	return &ListResult{
		Products:    products,
		Total:       total,
		TotalPages:  int64(math.Ceil(float64(total) / float64(limit))),
		CurrentPage: page,
	}, nil
}

func (s *service) Get(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, input ProductInput) (*Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, input)
}

func (s *service) Update(ctx context.Context, id string, input ProductInput) (*Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, input)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func validateInput(input ProductInput) error {
	if input.Name == "" || input.SKU == "" {
		return ErrInvalidInput
	}
	if input.Price < 0 || input.Inventory < 0 {
		return ErrInvalidInput
	}
	if input.SalePrice != nil && *input.SalePrice < 0 {
		return ErrInvalidInput
	}
	return nil
}
