package admin

import (
	"context"
	"database/sql"
	"time"

	"emeraldscents-be/internal/product"
	"emeraldscents-be/internal/user"
)

const lowStockThreshold = 10

// DashboardStats is the back-office landing page summary.
type DashboardStats struct {
	TotalRevenue   int64 `json:"total_revenue"`
	NewOrders      int64 `json:"new_orders"`
	TotalCustomers int64 `json:"total_customers"`
	LowStock       int64 `json:"low_stock"`
}

type Repository interface {
	Stats(ctx context.Context) (*DashboardStats, error)
	Customers(ctx context.Context) ([]*user.CustomerSummary, error)
}

type repository struct {
	db       *sql.DB
	users    user.Repository
	products product.Repository
}

func NewRepository(db *sql.DB, users user.Repository, products product.Repository) Repository {
	return &repository{db: db, users: users, products: products}
}

func (r *repository) Stats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)

	// Revenue counts orders that actually left the warehouse.
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total), 0)
		FROM orders
		WHERE status IN ('DELIVERED', 'SHIPPED')
	`).Scan(&stats.TotalRevenue)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM orders WHERE created_at >= $1
	`, thirtyDaysAgo).Scan(&stats.NewOrders)
	if err != nil {
		return nil, err
	}

	if stats.TotalCustomers, err = r.users.CountCustomers(ctx); err != nil {
		return nil, err
	}
	if stats.LowStock, err = r.products.CountLowStock(ctx, lowStockThreshold); err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *repository) Customers(ctx context.Context) ([]*user.CustomerSummary, error) {
	customers, err := r.users.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	if customers == nil {
		customers = []*user.CustomerSummary{}
	}
	return customers, nil
}
