package domain

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when the requested batch size cannot be served
// by the available orders.
var ErrOutOfRange = errors.New("batch size out of range")

// Delivery vehicle that starts and ends every route at its depot and serves
// a fixed-size batch of orders per route.
type Vehicle struct {
	Depot     Point
	BatchSize int
}

func NewVehicle(depot Point, batchSize int) Vehicle {
	return Vehicle{Depot: depot, BatchSize: batchSize}
}

// SelectBatch returns the first BatchSize orders in input order.
// A batch larger than the order set is a configuration error and is never clamped.
func (v Vehicle) SelectBatch(orders []Order) ([]Order, error) {
	if v.BatchSize < 0 {
		return nil, fmt.Errorf("select batch: batch size %d: %w", v.BatchSize, ErrOutOfRange)
	}
	if v.BatchSize > len(orders) {
		return nil, fmt.Errorf(
			"select batch: batch size %d exceeds %d available orders: %w",
			v.BatchSize, len(orders), ErrOutOfRange,
		)
	}
	return orders[:v.BatchSize:v.BatchSize], nil
}
