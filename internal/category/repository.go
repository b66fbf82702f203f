package category

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

var ErrCategoryNotFound = errors.New("category not found")

type Repository interface {
	List(ctx context.Context) ([]*Category, error)
	Create(ctx context.Context, input CategoryInput) (*Category, error)
	Update(ctx context.Context, id string, input CategoryInput) (*Category, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]*Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.description, c.image, c.created_at,
		       COUNT(p.id) AS product_count
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		GROUP BY c.id
		ORDER BY c.name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Image, &c.CreatedAt, &c.ProductCount); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

func (r *repository) Create(ctx context.Context, input CategoryInput) (*Category, error) {
	c := Category{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		Image:       input.Image,
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO categories (id, name, description, image)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, c.ID, c.Name, c.Description, c.Image).Scan(&c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) Update(ctx context.Context, id string, input CategoryInput) (*Category, error) {
	var c Category
	err := r.db.QueryRowContext(ctx, `
		UPDATE categories
		SET name = $1, description = $2, image = $3
		WHERE id = $4
		RETURNING id, name, description, image, created_at
	`, input.Name, input.Description, input.Image, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.Image, &c.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
