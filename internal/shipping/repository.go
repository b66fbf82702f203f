package shipping

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const pgUniqueViolation = "23505"

type Repository interface {
	List(ctx context.Context) ([]*ShippingZone, error)
	GetByRegion(ctx context.Context, region string) (*ShippingZone, error)
	Create(ctx context.Context, input ZoneInput) (*ShippingZone, error)
	Update(ctx context.Context, id string, input ZoneInput) (*ShippingZone, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]*ShippingZone, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, region, fee, created_at
		FROM shipping_zones
		ORDER BY region ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zones []*ShippingZone
	for rows.Next() {
		var z ShippingZone
		if err := rows.Scan(&z.ID, &z.Region, &z.Fee, &z.CreatedAt); err != nil {
			return nil, err
		}
		zones = append(zones, &z)
	}
	return zones, rows.Err()
}

func (r *repository) GetByRegion(ctx context.Context, region string) (*ShippingZone, error) {
	var z ShippingZone
	err := r.db.QueryRowContext(ctx, `
		SELECT id, region, fee, created_at
		FROM shipping_zones
		WHERE region = $1
	`, region).Scan(&z.ID, &z.Region, &z.Fee, &z.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrZoneNotFound
	}
	if err != nil {
		return nil, err
	}
	return &z, nil
}

func (r *repository) Create(ctx context.Context, input ZoneInput) (*ShippingZone, error) {
	z := ShippingZone{
		ID:     uuid.New().String(),
		Region: input.Region,
		Fee:    input.Fee,
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO shipping_zones (id, region, fee)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, z.ID, z.Region, z.Fee).Scan(&z.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
		return nil, ErrZoneExists
	}
	if err != nil {
		return nil, err
	}
	return &z, nil
}

func (r *repository) Update(ctx context.Context, id string, input ZoneInput) (*ShippingZone, error) {
	var z ShippingZone
	err := r.db.QueryRowContext(ctx, `
		UPDATE shipping_zones
		SET region = $1, fee = $2
		WHERE id = $3
		RETURNING id, region, fee, created_at
	`, input.Region, input.Fee, id).
		Scan(&z.ID, &z.Region, &z.Fee, &z.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrZoneNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
		return nil, ErrZoneExists
	}
	if err != nil {
		return nil, err
	}
	return &z, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shipping_zones WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrZoneNotFound
	}
	return nil
}
