package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"pickup-delivery-planner/internal/domain"
	"pickup-delivery-planner/internal/platform/obs"
)

// ErrSparseOrderIDs means the stored ids are not exactly 0..N-1.
var ErrSparseOrderIDs = errors.New("order ids are not contiguous from 0")

// SQL-backed implementation of the OrderSource port.
type SQLOrderRepository struct{ DB *sql.DB }

func NewSQLOrderRepository(db *sql.DB) *SQLOrderRepository {
	return &SQLOrderRepository{DB: db}
}

// Return all stored orders in id order.
func (s *SQLOrderRepository) ListOrders(ctx context.Context) (_ []domain.Order, err error) {
	defer obs.Time(ctx, "orders.ListOrders")(&err)

	if s.DB == nil {
		return nil, errors.New("sql order repository: DB is nil")
	}

	query := `
	SELECT
		order_id,
		pickup_x,
		pickup_y,
		delivery_x,
		delivery_y
	FROM orders
	ORDER BY order_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list orders: query orders table: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0, 1024)
	for rows.Next() {
		var id, px, py, dx, dy int
		if err := rows.Scan(&id, &px, &py, &dx, &dy); err != nil {
			return nil, fmt.Errorf("list orders: scan row: %w", err)
		}
		orders = append(orders, domain.NewOrder(id, domain.NewPoint(px, py), domain.NewPoint(dx, dy)))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: row iteration: %w", err)
	}

	if err := checkContiguous(orders); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return orders, nil
}

// Order i must carry id i; the planner indexes orders by id.
func checkContiguous(orders []domain.Order) error {
	for i, o := range orders {
		if o.ID != i {
			return fmt.Errorf("row %d has order_id %d: %w", i, o.ID, ErrSparseOrderIDs)
		}
	}
	return nil
}
