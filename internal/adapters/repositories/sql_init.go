package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"pickup-delivery-planner/internal/domain"
)

// InitSchema creates the orders table if it does not exist.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createOrdersQuery := `
	CREATE TABLE IF NOT EXISTS orders (
		order_id INTEGER PRIMARY KEY,
		pickup_x INTEGER NOT NULL,
		pickup_y INTEGER NOT NULL,
		delivery_x INTEGER NOT NULL,
		delivery_y INTEGER NOT NULL,
		CHECK (order_id >= 0)
	);
	`

	statements := []string{
		createOrdersQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// SeedOrders upserts orders by id in a single transaction.
func SeedOrders(ctx context.Context, db *sql.DB, orders []domain.Order) error {
	if db == nil {
		return errors.New("seed orders: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed orders: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO orders (order_id, pickup_x, pickup_y, delivery_x, delivery_y)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (order_id) DO UPDATE
	SET pickup_x = EXCLUDED.pickup_x,
		pickup_y = EXCLUDED.pickup_y,
		delivery_x = EXCLUDED.delivery_x,
		delivery_y = EXCLUDED.delivery_y;
	`)
	if err != nil {
		return fmt.Errorf("seed orders: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range orders {
		p, d := o.Pickup.Point, o.Delivery.Point
		if _, err := stmt.ExecContext(ctx, o.ID, p.X, p.Y, d.X, d.Y); err != nil {
			return fmt.Errorf("seed orders: insert order_id=%d: %w", o.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed orders: commit tx: %w", err)
	}

	return nil
}
