package cart

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type Repository interface {
	GetItem(ctx context.Context, userID, productID string) (*CartItem, error)
	CreateItem(ctx context.Context, userID, productID string, quantity int) (*CartItem, error)
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error
	Remove(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
	ListByUser(ctx context.Context, userID string) ([]*CartItem, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetItem(ctx context.Context, userID, productID string) (*CartItem, error) {
	var item CartItem
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, product_id, quantity, created_at, updated_at
		FROM carts
		WHERE user_id = $1 AND product_id = $2
	`, userID, productID).Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) CreateItem(ctx context.Context, userID, productID string, quantity int) (*CartItem, error) {
	item := CartItem{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO carts (id, user_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`, item.ID, item.UserID, item.ProductID, item.Quantity).
		Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE carts
		SET quantity = $1, updated_at = NOW()
		WHERE user_id = $2 AND product_id = $3
	`, quantity, userID, productID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *repository) Remove(ctx context.Context, userID, productID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM carts
		WHERE user_id = $1 AND product_id = $2
	`, userID, productID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *repository) Clear(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	return err
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]*CartItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.user_id, c.product_id, c.quantity, c.created_at, c.updated_at,
		       p.name, COALESCE(p.sale_price, p.price)
		FROM carts c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*CartItem
	for rows.Next() {
		var item CartItem
		err := rows.Scan(
			&item.ID, &item.UserID, &item.ProductID, &item.Quantity,
			&item.CreatedAt, &item.UpdatedAt,
			&item.ProductName, &item.ProductPrice,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}
