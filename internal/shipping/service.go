package shipping

import (
	"context"
	"strings"

	"emeraldscents-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]*ShippingZone, error)
	// FeeFor returns the flat fee configured for region, or the fallback
	// fee when no zone matches. It never fails checkout: lookup errors
	// degrade to the fallback.
	FeeFor(ctx context.Context, region string) int64
	Create(ctx context.Context, input ZoneInput) (*ShippingZone, error)
	Update(ctx context.Context, id string, input ZoneInput) (*ShippingZone, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo        Repository
	fallbackFee int64
}

func NewService(repo Repository, fallbackFee int64) Service {
	return &service{repo: repo, fallbackFee: fallbackFee}
}

func (s *service) List(ctx context.Context) ([]*ShippingZone, error) {
	zones, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if zones == nil {
		zones = []*ShippingZone{}
	}
	return zones, nil
}

func (s *service) FeeFor(ctx context.Context, region string) int64 {
	zone, err := s.repo.GetByRegion(ctx, region)
	if err != nil {
		if err != ErrZoneNotFound {
			logger.FromCtx(ctx).Warn("shipping zone lookup failed, using fallback fee",
				zap.String("region", region),
				zap.Error(err),
			)
		}
		return s.fallbackFee
	}
	return zone.Fee
}

func (s *service) Create(ctx context.Context, input ZoneInput) (*ShippingZone, error) {
	if err := validateZone(&input); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, input)
}

func (s *service) Update(ctx context.Context, id string, input ZoneInput) (*ShippingZone, error) {
	if err := validateZone(&input); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, input)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func validateZone(input *ZoneInput) error {
	input.Region = strings.TrimSpace(input.Region)
	if input.Region == "" || input.Fee < 0 {
		return ErrInvalidZone
	}
	return nil
}
