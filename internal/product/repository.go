package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"emeraldscents-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const pgUniqueViolation = "23505"

type Repository interface {
	List(ctx context.Context, filter *ListFilter, sort ListSort, limit, page int) ([]*Product, int64, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, input ProductInput) (*Product, error)
	Update(ctx context.Context, id string, input ProductInput) (*Product, error)
	Delete(ctx context.Context, id string) error
	CountLowStock(ctx context.Context, below int) (int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	p.id, p.name, p.description, p.price, p.sale_price, p.sku,
	p.inventory, p.is_published, p.category_id, c.name,
	p.scent_notes, p.size_label, p.images,
	COALESCE(AVG(r.rating) FILTER (WHERE r.is_approved), 0),
	p.created_at, p.updated_at`

func (r *repository) List(
	ctx context.Context,
	filter *ListFilter,
	sort ListSort,
	limit, page int,
) ([]*Product, int64, error) {

	if limit <= 0 {
		limit = 12
	}
	if limit > 100 {
		limit = 100
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	log := logger.FromCtx(ctx).With(
		zap.String("method", "List"),
		zap.Int("limit", limit),
		zap.Int("page", page),
	)

	where := " WHERE 1=1"
	args := []any{}
	argIndex := 1

	if filter != nil {
		if !filter.IncludeUnpublished {
			where += " AND p.is_published = TRUE"
		}

		if filter.Search != "" {
			where += fmt.Sprintf(
				" AND (p.name ILIKE $%d OR p.description ILIKE $%d OR $%d = ANY(p.scent_notes))",
				argIndex, argIndex, argIndex+1,
			)
			args = append(args, "%"+filter.Search+"%", filter.Search)
			argIndex += 2
		}

		if filter.CategoryID != "" {
			where += fmt.Sprintf(" AND p.category_id = $%d", argIndex)
			args = append(args, filter.CategoryID)
			argIndex++
		}

		if filter.MinPrice > 0 {
			where += fmt.Sprintf(" AND p.price >= $%d", argIndex)
			args = append(args, filter.MinPrice)
			argIndex++
		}

		if filter.MaxPrice > 0 {
			where += fmt.Sprintf(" AND p.price <= $%d", argIndex)
			args = append(args, filter.MaxPrice)
			argIndex++
		}

		if len(filter.ScentNotes) > 0 {
			where += fmt.Sprintf(" AND p.scent_notes && $%d", argIndex)
			args = append(args, pq.Array(filter.ScentNotes))
			argIndex++
		}

		if filter.InStock {
			where += " AND p.inventory > 0"
		}
	} else {
		where += " AND p.is_published = TRUE"
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM products p" + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count products", zap.Error(err))
		return nil, 0, err
	}

	orderBy := "p.created_at DESC"
	switch sort {
	case SortPriceLow:
		orderBy = "p.price ASC"
	case SortPriceHigh:
		orderBy = "p.price DESC"
	case SortName:
		orderBy = "p.name ASC"
	case SortRating:
		orderBy = "14 DESC" // the aggregated rating column
	}

	query := "SELECT" + productColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		LEFT JOIN reviews r ON r.product_id = p.id` +
		where +
		" GROUP BY p.id, c.name ORDER BY " + orderBy +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query products", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("failed to scan product row", zap.Error(err))
			return nil, 0, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	log.Debug("products listed", zap.Int("count", len(products)))
	return products, total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var p Product
	var categoryName sql.NullString
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.SalePrice, &p.SKU,
		&p.Inventory, &p.IsPublished, &p.CategoryID, &categoryName,
		pq.Array(&p.ScentNotes), &p.SizeLabel, pq.Array(&p.Images),
		&p.AvgRating, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.CategoryName = categoryName.String
	return &p, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	query := "SELECT" + productColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		LEFT JOIN reviews r ON r.product_id = p.id
		WHERE p.id = $1
		GROUP BY p.id, c.name`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, input ProductInput) (*Product, error) {
	p := Product{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		SalePrice:   input.SalePrice,
		SKU:         input.SKU,
		Inventory:   input.Inventory,
		IsPublished: input.IsPublished,
		CategoryID:  input.CategoryID,
		ScentNotes:  input.ScentNotes,
		SizeLabel:   input.SizeLabel,
		Images:      input.Images,
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (
			id, name, description, price, sale_price, sku,
			inventory, is_published, category_id, scent_notes, size_label, images
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING created_at, updated_at
	`,
		p.ID, p.Name, p.Description, p.Price, p.SalePrice, p.SKU,
		p.Inventory, p.IsPublished, p.CategoryID,
		pq.Array(p.ScentNotes), p.SizeLabel, pq.Array(p.Images),
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
		return nil, ErrSKUExists
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Update(ctx context.Context, id string, input ProductInput) (*Product, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products SET
			name = $1, description = $2, price = $3, sale_price = $4, sku = $5,
			inventory = $6, is_published = $7, category_id = $8,
			scent_notes = $9, size_label = $10, images = $11,
			updated_at = NOW()
		WHERE id = $12
	`,
		input.Name, input.Description, input.Price, input.SalePrice, input.SKU,
		input.Inventory, input.IsPublished, input.CategoryID,
		pq.Array(input.ScentNotes), input.SizeLabel, pq.Array(input.Images), id,
	)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
		return nil, ErrSKUExists
	}
	if err != nil {
		return nil, err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return nil, ErrProductNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) CountLowStock(ctx context.Context, below int) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM products
		WHERE inventory < $1 AND is_published = TRUE
	`, below).Scan(&n)
	return n, err
}
