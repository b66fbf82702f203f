package address

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrAddressNotFound = errors.New("address not found")
	ErrInvalidAddress  = errors.New("street, city and region are required")
)

type Repository interface {
	Create(ctx context.Context, userID string, input AddressInput) (*Address, error)
	ListByUser(ctx context.Context, userID string) ([]*Address, error)
	GetByID(ctx context.Context, id string) (*Address, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, userID string, input AddressInput) (*Address, error) {
	if input.Street == "" || input.City == "" || input.Region == "" {
		return nil, ErrInvalidAddress
	}

	a := Address{
		ID:       uuid.New().String(),
		UserID:   userID,
		FullName: input.FullName,
		Street:   input.Street,
		City:     input.City,
		Region:   input.Region,
		Phone:    input.Phone,
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO addresses (id, user_id, full_name, street, city, region, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`, a.ID, a.UserID, a.FullName, a.Street, a.City, a.Region, a.Phone).Scan(&a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]*Address, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, full_name, street, city, region, phone, created_at
		FROM addresses
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addresses []*Address
	for rows.Next() {
		var a Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.FullName, &a.Street, &a.City, &a.Region, &a.Phone, &a.CreatedAt); err != nil {
			return nil, err
		}
		addresses = append(addresses, &a)
	}
	return addresses, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id string) (*Address, error) {
	var a Address
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, full_name, street, city, region, phone, created_at
		FROM addresses
		WHERE id = $1
	`, id).Scan(&a.ID, &a.UserID, &a.FullName, &a.Street, &a.City, &a.Region, &a.Phone, &a.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
