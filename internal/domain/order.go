package domain

// Kind of visitable location belonging to an order.
type TargetKind int

const (
	Pickup TargetKind = iota
	Delivery
)

func (k TargetKind) String() string {
	switch k {
	case Pickup:
		return "pickup"
	case Delivery:
		return "delivery"
	default:
		return "unknown"
	}
}

// Represents a single visitable location of one order.
type Target struct {
	Point   Point
	OrderID int
	Kind    TargetKind
}

// Represents a pickup-and-delivery request.
// The pickup (restaurant) must be visited before the delivery (house).
// Orders are created once from input and never mutated.
type Order struct {
	ID       int
	Pickup   Target
	Delivery Target
}

func NewOrder(id int, pickup, delivery Point) Order {
	return Order{
		ID:       id,
		Pickup:   Target{Point: pickup, OrderID: id, Kind: Pickup},
		Delivery: Target{Point: delivery, OrderID: id, Kind: Delivery},
	}
}

// Target returns the order's pickup or delivery target.
func (o Order) Target(kind TargetKind) Target {
	if kind == Delivery {
		return o.Delivery
	}
	return o.Pickup
}

// NewOrders builds one Order per raw (pickup-x, pickup-y, delivery-x, delivery-y)
// tuple, using the tuple index as the order id. Coordinates are not validated.
func NewOrders(tuples [][4]int) []Order {
	orders := make([]Order, 0, len(tuples))
	for i, t := range tuples {
		orders = append(orders, NewOrder(i, NewPoint(t[0], t[1]), NewPoint(t[2], t[3])))
	}
	return orders
}
