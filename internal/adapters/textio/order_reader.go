package textio

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"pickup-delivery-planner/internal/domain"
	"pickup-delivery-planner/internal/platform/obs"
	"strconv"
)

// DefaultOrderCount is the number of orders a contest input carries.
const DefaultOrderCount = 1000

var ErrShortInput = errors.New("input ended before all orders were read")

// OrderReader is an OrderSource over whitespace-separated integer groups
// "a b c d": pickup (a,b), delivery (c,d). The order id is the group index.
// The stream is consumed on the first ListOrders call and cached afterwards.
type OrderReader struct {
	r io.Reader
	// Count orders are read; 0 reads groups until EOF.
	count  int
	orders []domain.Order
	read   bool
}

func NewOrderReader(r io.Reader, count int) *OrderReader {
	return &OrderReader{r: r, count: count}
}

func (o *OrderReader) ListOrders(ctx context.Context) (_ []domain.Order, err error) {
	defer obs.Time(ctx, "textio.ListOrders")(&err)

	if o.read {
		return o.orders, nil
	}
	if o.count < 0 {
		return nil, fmt.Errorf("read orders: count must be >= 0, got %d", o.count)
	}

	orders, err := ReadOrders(o.r, o.count)
	if err != nil {
		return nil, err
	}
	o.orders, o.read = orders, true
	return orders, nil
}

// ReadOrders parses count orders from r (count 0: until EOF). Tokens after the
// last requested group are left unread.
func ReadOrders(r io.Reader, count int) ([]domain.Order, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	tuples := make([][4]int, 0, max(count, 0))
	var group [4]int
	token := 0

	for count == 0 || len(tuples) < count {
		if !sc.Scan() {
			break
		}
		v, err := strconv.Atoi(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("read orders: order %d field %d: %w", len(tuples), token%4+1, err)
		}
		group[token%4] = v
		token++
		if token%4 == 0 {
			tuples = append(tuples, group)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read orders: scan input: %w", err)
	}

	if token%4 != 0 {
		return nil, fmt.Errorf("read orders: trailing partial order %d (%d of 4 values): %w", len(tuples), token%4, ErrShortInput)
	}
	if count > 0 && len(tuples) < count {
		return nil, fmt.Errorf("read orders: got %d of %d orders: %w", len(tuples), count, ErrShortInput)
	}

	return domain.NewOrders(tuples), nil
}
