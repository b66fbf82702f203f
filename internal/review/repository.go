package review

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *Review) error
	ListByProduct(ctx context.Context, productID string, approvedOnly bool) ([]*Review, error)
	ListPending(ctx context.Context) ([]*Review, error)
	Approve(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rev *Review) error {
	if rev.ID == "" {
		rev.ID = uuid.New().String()
	}

	return r.db.QueryRowContext(ctx, `
		INSERT INTO reviews (id, product_id, user_id, rating, comment, is_approved)
		VALUES ($1, $2, $3, $4, $5, FALSE)
		RETURNING created_at
	`, rev.ID, rev.ProductID, rev.UserID, rev.Rating, rev.Comment).Scan(&rev.CreatedAt)
}

func (r *repository) ListByProduct(ctx context.Context, productID string, approvedOnly bool) ([]*Review, error) {
	query := `
		SELECT r.id, r.product_id, r.user_id, u.name, r.rating, r.comment, r.is_approved, r.created_at
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.product_id = $1`
	if approvedOnly {
		query += ` AND r.is_approved = TRUE`
	}
	query += ` ORDER BY r.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReviews(rows)
}

func (r *repository) ListPending(ctx context.Context) ([]*Review, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT r.id, r.product_id, r.user_id, u.name, r.rating, r.comment, r.is_approved, r.created_at
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.is_approved = FALSE
		ORDER BY r.created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReviews(rows)
}

func scanReviews(rows *sql.Rows) ([]*Review, error) {
	var reviews []*Review
	for rows.Next() {
		var rev Review
		err := rows.Scan(
			&rev.ID, &rev.ProductID, &rev.UserID, &rev.UserName,
			&rev.Rating, &rev.Comment, &rev.IsApproved, &rev.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, &rev)
	}
	return reviews, rows.Err()
}

func (r *repository) Approve(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reviews SET is_approved = TRUE WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrReviewNotFound
	}
	return nil
}
