package domain

// Side indicates whether an order buys or sells.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// OrderType selects the execution semantics for an order.
type OrderType string

const (
	OrderTypeLimit     OrderType = "limit"
	OrderTypeMarket    OrderType = "market"
	OrderTypeIOC       OrderType = "ioc"
	OrderTypeFOK       OrderType = "fok"
	OrderTypeStop      OrderType = "stop"
	OrderTypeStopLimit OrderType = "stop_limit"
	OrderTypeIceberg   OrderType = "iceberg"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusNew             OrderStatus = "new"
	OrderStatusPartiallyFilled OrderStatus = "partially_filled"
	OrderStatusFilled          OrderStatus = "filled"
	OrderStatusCancelled       OrderStatus = "cancelled"
)

// Order is a single trade instruction. Identity fields (ID, Side, Type
// at submission, prices) are set once; fill state is mutated only by
// the engine that owns the order.
//
// For iceberg orders Quantity holds the currently displayed slice and
// Reserve the hidden balance; the engine refills Quantity from Reserve
// as slices are consumed. Stop orders carry StopPrice and have their
// Type rewritten (stop → market, stop_limit → limit) on activation.
type Order struct {
	ID          uint64
	Side        Side
	Type        OrderType
	Price       int64 // cents; 0 for market orders and untriggered stops
	StopPrice   int64 // cents; only meaningful for stop / stop_limit
	Quantity    int64
	DisplaySize int64 // iceberg only; requested visible slice size
	Reserve     int64 // iceberg only; quantity held back from display
	Filled      int64
	Seq         uint64 // insertion sequence; secondary sort key after price
	Status      OrderStatus
}

// Remaining returns the unfilled quantity, never negative.
func (o *Order) Remaining() int64 {
	r := o.Quantity - o.Filled
	if r < 0 {
		return 0
	}
	return r
}

// Fill applies up to qty of fills to the order, clamped to the
// remaining quantity, and advances the status. It returns the quantity
// actually applied.
func (o *Order) Fill(qty int64) int64 {
	if qty > o.Remaining() {
		qty = o.Remaining()
	}
	if qty <= 0 {
		return 0
	}
	o.Filled += qty
	if o.Remaining() == 0 {
		o.Status = OrderStatusFilled
	} else {
		o.Status = OrderStatusPartiallyFilled
	}
	return qty
}
