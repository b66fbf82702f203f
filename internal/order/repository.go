package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"emeraldscents-be/internal/address"
	"emeraldscents-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const pgUniqueViolation = "23505"

type Repository interface {
	// Create persists the order header and its items as one transaction.
	// Returns ErrRefConflict when the generated order number or payment
	// reference collides; callers regenerate and retry.
	Create(ctx context.Context, o *Order) error

	GetByID(ctx context.Context, id string) (*Order, error)
	GetByPaymentRef(ctx context.Context, ref string) (*Order, error)
	GetByNumberAndEmail(ctx context.Context, orderNumber, email string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]*Order, error)
	List(ctx context.Context, filter *OrderFilterInput, sort *OrderSortInput, limit, page int) ([]*Order, error)

	// MarkPaidTx flips paymentStatus to completed and status to
	// PROCESSING, and decrements inventory for every item, in a single
	// transaction. Returns applied=false without mutating anything when
	// the order was already reconciled or is no longer awaiting payment.
	MarkPaidTx(ctx context.Context, o *Order, allowBackorder bool) (applied bool, err error)

	UpdateStatus(ctx context.Context, orderID string, status Status, trackingNo *string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("order_number", o.OrderNumber),
		zap.Int("item_count", len(o.Items)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	if o.ID == "" {
		o.ID = uuid.New().String()
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			id, order_number, payment_ref, user_id, address_id,
			subtotal, shipping_cost, discount, total, promo_code,
			payment_method, payment_status, status, payment_proof
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING created_at, updated_at
	`,
		o.ID, o.OrderNumber, o.PaymentRef, o.UserID, o.AddressID,
		o.Subtotal, o.ShippingCost, o.Discount, o.Total, o.PromoCode,
		o.PaymentMethod, o.PaymentStatus, o.Status, o.PaymentProof,
	).Scan(&o.CreatedAt, &o.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			log.Warn("order reference collision", zap.String("constraint", pqErr.Constraint))
			return ErrRefConflict
		}
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID

		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, item.OrderID, item.ProductID, item.Quantity, item.Price).Scan(&item.ID)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Int("item_index", i),
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return err
	}

	committed = true
	log.Info("order created", zap.String("order_id", o.ID))
	return nil
}

const orderColumns = `
	o.id, o.order_number, o.payment_ref, o.user_id, o.address_id,
	o.subtotal, o.shipping_cost, o.discount, o.total, o.promo_code,
	o.payment_method, o.payment_status, o.status, o.tracking_number,
	o.payment_proof, o.created_at, o.updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.PaymentRef, &o.UserID, &o.AddressID,
		&o.Subtotal, &o.ShippingCost, &o.Discount, &o.Total, &o.PromoCode,
		&o.PaymentMethod, &o.PaymentStatus, &o.Status, &o.TrackingNo,
		&o.PaymentProof, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	query := `SELECT` + orderColumns + ` FROM orders o WHERE o.id = $1`

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.fetchItems(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return o, nil
}

func (r *repository) GetByPaymentRef(ctx context.Context, ref string) (*Order, error) {
	query := `SELECT` + orderColumns + `, u.email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.payment_ref = $1`

	var o Order
	err := r.db.QueryRowContext(ctx, query, ref).Scan(
		&o.ID, &o.OrderNumber, &o.PaymentRef, &o.UserID, &o.AddressID,
		&o.Subtotal, &o.ShippingCost, &o.Discount, &o.Total, &o.PromoCode,
		&o.PaymentMethod, &o.PaymentStatus, &o.Status, &o.TrackingNo,
		&o.PaymentProof, &o.CreatedAt, &o.UpdatedAt,
		&o.UserEmail,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.fetchItems(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return &o, nil
}

// GetByNumberAndEmail backs the public tracking lookup: the pair acts as
// a shared secret, so only someone who knows both gets the order.
func (r *repository) GetByNumberAndEmail(ctx context.Context, orderNumber, email string) (*Order, error) {
	query := `SELECT` + orderColumns + `, u.email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.order_number = $1 AND LOWER(u.email) = LOWER($2)`

	var o Order
	err := r.db.QueryRowContext(ctx, query, orderNumber, email).Scan(
		&o.ID, &o.OrderNumber, &o.PaymentRef, &o.UserID, &o.AddressID,
		&o.Subtotal, &o.ShippingCost, &o.Discount, &o.Total, &o.PromoCode,
		&o.PaymentMethod, &o.PaymentStatus, &o.Status, &o.TrackingNo,
		&o.PaymentProof, &o.CreatedAt, &o.UpdatedAt,
		&o.UserEmail,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.fetchItems(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return &o, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]*Order, error) {
	query := `SELECT` + orderColumns + `,
		a.id, a.user_id, a.full_name, a.street, a.city, a.region, a.phone, a.created_at
		FROM orders o
		JOIN addresses a ON a.id = o.address_id
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	var orderIDs []string

	for rows.Next() {
		var o Order
		var a address.Address
		err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.PaymentRef, &o.UserID, &o.AddressID,
			&o.Subtotal, &o.ShippingCost, &o.Discount, &o.Total, &o.PromoCode,
			&o.PaymentMethod, &o.PaymentStatus, &o.Status, &o.TrackingNo,
			&o.PaymentProof, &o.CreatedAt, &o.UpdatedAt,
			&a.ID, &a.UserID, &a.FullName, &a.Street, &a.City, &a.Region, &a.Phone, &a.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		o.Address = &a
		orders = append(orders, &o)
		orderIDs = append(orderIDs, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items, err := r.fetchItems(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		o.Items = items[o.ID]
	}

	return orders, nil
}

func (r *repository) List(
	ctx context.Context,
	filter *OrderFilterInput,
	sort *OrderSortInput,
	limit, page int,
) ([]*Order, error) {

	if limit <= 0 {
		limit = 20
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

	query := `SELECT` + orderColumns + ` FROM orders o WHERE 1=1`
	args := []any{}
	argIndex := 1

	if filter != nil {
		if filter.Search != nil && *filter.Search != "" {
			query += fmt.Sprintf(
				" AND (o.order_number ILIKE $%d OR o.payment_ref ILIKE $%d)",
				argIndex, argIndex,
			)
			args = append(args, "%"+*filter.Search+"%")
			argIndex++
		}

		if filter.Status != nil && *filter.Status != "" {
			query += fmt.Sprintf(" AND o.status = $%d", argIndex)
			args = append(args, *filter.Status)
			argIndex++
		}

		if filter.DateFrom != nil {
			query += fmt.Sprintf(" AND o.created_at >= $%d", argIndex)
			args = append(args, *filter.DateFrom)
			argIndex++
		}

		if filter.DateTo != nil {
			query += fmt.Sprintf(" AND o.created_at <= $%d", argIndex)
			args = append(args, *filter.DateTo)
			argIndex++
		}
	}

	orderBy := "o.created_at DESC"
	if sort != nil {
		dir := strings.ToUpper(sort.Direction)
		if dir != "ASC" && dir != "DESC" {
			dir = "DESC"
		}
		switch sort.Field {
		case OrderSortFieldTotal:
			orderBy = "o.total " + dir
		case OrderSortFieldCreatedAt:
			orderBy = "o.created_at " + dir
		}
	}

	query += " ORDER BY " + orderBy
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debug("orders listed", zap.Int("count", len(orders)))
	return orders, nil
}

func (r *repository) fetchItems(ctx context.Context, orderIDs []string) (map[string][]OrderItem, error) {
	result := make(map[string][]OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price, p.name
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price, &item.ProductName); err != nil {
			return nil, err
		}
		result[item.OrderID] = append(result[item.OrderID], item)
	}
	return result, rows.Err()
}

func (r *repository) MarkPaidTx(ctx context.Context, o *Order, allowBackorder bool) (bool, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "MarkPaidTx"),
		zap.String("order_id", o.ID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	// The payment_status guard makes replays a no-op, and the status
	// list keeps a late event from resurrecting an order an admin has
	// already cancelled or moved on. Either way zero rows update and we
	// never reach the inventory decrements.
	res, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET payment_status = $1, status = $2, updated_at = NOW()
		WHERE id = $3 AND payment_status <> $1 AND status IN ($4, $5)
	`, PaymentStatusCompleted, StatusProcessing, o.ID, StatusPending, StatusPaymentPending)
	if err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return false, err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		log.Info("order already reconciled, skipping")
		return false, nil
	}

	for _, item := range o.Items {
		decrement := `
			UPDATE products
			SET inventory = inventory - $1, updated_at = NOW()
			WHERE id = $2`
		if !allowBackorder {
			decrement += ` AND inventory >= $1`
		}

		res, err := tx.ExecContext(ctx, decrement, item.Quantity, item.ProductID)
		if err != nil {
			log.Error("failed to decrement inventory",
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
			return false, err
		}

		if !allowBackorder {
			affected, _ := res.RowsAffected()
			if affected == 0 {
				log.Warn("insufficient inventory, rolling back",
					zap.String("product_id", item.ProductID),
					zap.Int("quantity", item.Quantity),
				)
				return false, ErrOutOfStock
			}
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit reconcile transaction", zap.Error(err))
		return false, err
	}

	committed = true
	log.Info("order reconciled", zap.Int("items", len(o.Items)))
	return true, nil
}

func (r *repository) UpdateStatus(ctx context.Context, orderID string, status Status, trackingNo *string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1,
		    tracking_number = COALESCE($2, tracking_number),
		    updated_at = NOW()
		WHERE id = $3
	`, status, trackingNo, orderID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
