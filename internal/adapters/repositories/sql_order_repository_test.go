package repositories

import (
	"context"
	"pickup-delivery-planner/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckContiguous(t *testing.T) {
	require.NoError(t, checkContiguous(nil))
	require.NoError(t, checkContiguous(domain.NewOrders([][4]int{{0, 0, 1, 1}, {2, 2, 3, 3}})))

	gap := []domain.Order{
		domain.NewOrder(0, domain.NewPoint(0, 0), domain.NewPoint(1, 1)),
		domain.NewOrder(2, domain.NewPoint(0, 0), domain.NewPoint(1, 1)),
	}
	require.ErrorIs(t, checkContiguous(gap), ErrSparseOrderIDs)
}

func TestNilDB(t *testing.T) {
	ctx := context.Background()

	_, err := NewSQLOrderRepository(nil).ListOrders(ctx)
	require.Error(t, err)
	require.Error(t, InitSchema(ctx, nil))
	require.Error(t, SeedOrders(ctx, nil, nil))
}
