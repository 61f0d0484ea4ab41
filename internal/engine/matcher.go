package engine

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/openclob/matchbook/internal/domain"
	"github.com/openclob/matchbook/internal/store"
)

// Engine is the sole entry point to the matching core. It owns the
// book, the stop manager, the live-order table, and the sequence
// counter used for order IDs, insertion order, and trade numbering.
//
// A single mutex serializes submissions end to end: price-time
// priority and fill-or-kill atomicity are only well-defined when each
// submission, including all of its stop-trigger cascades, runs to
// completion against a quiescent book. No operation blocks on I/O;
// every call terminates because each match strictly consumes resting
// liquidity or drains the parked stop set.
type Engine struct {
	mu     sync.Mutex
	seq    domain.Sequence
	book   *Book
	stops  *StopManager
	orders map[uint64]*domain.Order // live orders only: resting or parked
	log    *store.TradeLog
}

// New creates an engine that appends every trade to the given log.
func New(log *store.TradeLog) *Engine {
	return &Engine{
		book:   NewBook(),
		stops:  NewStopManager(),
		orders: make(map[uint64]*domain.Order),
		log:    log,
	}
}

// Submit processes an order through the engine and returns every trade
// it produced: the primary match trades first, then cascaded trades in
// stop-trigger order, then cascades of cascades.
//
// Stop and stop-limit orders park in the stop manager and return no
// trades. Market and IOC residuals are discarded. A FOK order that
// cannot fill completely produces zero trades and no book mutation;
// this is a defined outcome, not an error. Limit (and stop-turned-
// limit) residuals rest on the book. Iceberg orders enter matching
// with their displayed slice and replenish it from reserve, re-entering
// the back of the time queue at their price.
//
// Returns ErrInvalidOrder for a non-positive quantity, or for an
// iceberg whose display size is not in (0, quantity]. Rejection
// happens before any book mutation.
func (e *Engine) Submit(o *domain.Order) ([]*domain.Trade, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := validate(o); err != nil {
		return nil, err
	}
	return e.submit(o), nil
}

func validate(o *domain.Order) error {
	if o.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidOrder)
	}
	if o.Type == domain.OrderTypeIceberg {
		if o.DisplaySize <= 0 {
			return fmt.Errorf("%w: iceberg display size must be positive", domain.ErrInvalidOrder)
		}
		if o.DisplaySize > o.Quantity {
			return fmt.Errorf("%w: iceberg display size exceeds quantity", domain.ErrInvalidOrder)
		}
	}
	return nil
}

// submit runs one submission to completion under the engine lock.
// Triggered stop orders re-enter through this function, keeping their
// original ID but receiving a fresh insertion sequence.
func (e *Engine) submit(o *domain.Order) []*domain.Trade {
	if o.ID == 0 {
		o.ID = e.seq.Next()
	}
	o.Seq = e.seq.Next()
	if o.Status == "" {
		o.Status = domain.OrderStatusNew
	}

	switch o.Type {
	case domain.OrderTypeStop, domain.OrderTypeStopLimit:
		e.stops.Park(o)
		e.orders[o.ID] = o
		return nil
	case domain.OrderTypeFOK:
		// Dry-run first: commit fills only if the whole quantity is
		// coverable at the current book state.
		if e.available(o) < o.Quantity {
			o.Status = domain.OrderStatusCancelled
			return nil
		}
	case domain.OrderTypeIceberg:
		o.Reserve = o.Quantity - o.DisplaySize
		o.Quantity = o.DisplaySize
	}

	trades := e.match(o)
	if o.Type == domain.OrderTypeIceberg {
		// An aggressing iceberg keeps matching through refills; only
		// the last, partially filled slice rests.
		for o.Remaining() == 0 && o.Reserve > 0 {
			e.refill(o)
			trades = append(trades, e.match(o)...)
		}
	}

	switch o.Type {
	case domain.OrderTypeMarket, domain.OrderTypeIOC:
		if o.Remaining() > 0 {
			o.Status = domain.OrderStatusCancelled
		}
		delete(e.orders, o.ID)
	default:
		if o.Remaining() > 0 {
			e.book.Insert(o)
			e.orders[o.ID] = o
		} else {
			delete(e.orders, o.ID)
		}
	}

	return append(trades, e.cascade(trades)...)
}

// match runs the price-time priority loop for an incoming order:
// consume the best opposing order while prices cross, filling the
// exact minimum of the two remaining quantities at the resting order's
// price.
func (e *Engine) match(incoming *domain.Order) []*domain.Trade {
	var trades []*domain.Trade
	for incoming.Remaining() > 0 {
		var resting *domain.Order
		var ok bool
		if incoming.Side == domain.SideBuy {
			resting, ok = e.book.BestAsk()
		} else {
			resting, ok = e.book.BestBid()
		}
		if !ok {
			break
		}
		if !crosses(incoming, resting.Price) {
			// Prices beyond the best non-crossing one cannot cross
			// either, given sorted order.
			break
		}

		qty := incoming.Remaining()
		if resting.Remaining() < qty {
			qty = resting.Remaining()
		}
		price := resting.Price

		incoming.Fill(qty)
		resting.Fill(qty)

		t := e.newTrade(incoming, resting, price, qty)
		trades = append(trades, t)
		e.log.Append(t)

		if resting.Remaining() == 0 {
			e.removeFilled(resting)
		}
	}
	return trades
}

// crosses applies the price compatibility test for an incoming order
// against a resting price. Market, IOC, and FOK orders accept any
// price.
func crosses(o *domain.Order, restingPrice int64) bool {
	switch o.Type {
	case domain.OrderTypeMarket, domain.OrderTypeIOC, domain.OrderTypeFOK:
		return true
	}
	if o.Side == domain.SideBuy {
		return restingPrice <= o.Price
	}
	return restingPrice >= o.Price
}

// removeFilled takes a fully filled resting order off the book. A
// resting iceberg with reserve left is refilled instead and re-enters
// the back of the time queue at its price.
func (e *Engine) removeFilled(o *domain.Order) {
	e.book.Remove(o.ID)
	if o.Type == domain.OrderTypeIceberg && o.Reserve > 0 {
		e.refill(o)
		e.book.Insert(o)
		return
	}
	delete(e.orders, o.ID)
}

// refill replenishes an iceberg's displayed slice from its reserve and
// assigns a fresh insertion sequence, so the new slice queues behind
// orders already resting at the price.
func (e *Engine) refill(o *domain.Order) {
	slice := o.DisplaySize
	if o.Reserve < slice {
		slice = o.Reserve
	}
	o.Reserve -= slice
	o.Quantity = slice
	o.Filled = 0
	o.Seq = e.seq.Next()
	o.Status = domain.OrderStatusPartiallyFilled
}

// available measures how much opposing quantity the order could fill
// at the current book state, walking price levels best-first and
// stopping at the first non-crossing price. Iceberg reserves count:
// refills at a crossing price would expose them to this same
// aggressor within one match pass.
func (e *Engine) available(o *domain.Order) int64 {
	var total int64
	walk := e.book.WalkAsks
	if o.Side == domain.SideSell {
		walk = e.book.WalkBids
	}
	walk(func(r *domain.Order) bool {
		if !crosses(o, r.Price) {
			return false
		}
		total += r.Remaining() + r.Reserve
		return total < o.Quantity
	})
	return total
}

// cascade feeds every trade price to the stop manager, in trade order,
// and re-submits each activated order. The recursive submit drains
// each activation's own cascades before the next trigger price is
// examined, keeping cascade ordering deterministic.
func (e *Engine) cascade(trades []*domain.Trade) []*domain.Trade {
	var out []*domain.Trade
	for _, t := range trades {
		for _, activated := range e.stops.Trigger(t.Price) {
			out = append(out, e.submit(activated)...)
		}
	}
	return out
}

func (e *Engine) newTrade(incoming, resting *domain.Order, price, qty int64) *domain.Trade {
	t := &domain.Trade{
		TradeID:  uuid.New().String(),
		Price:    price,
		Quantity: qty,
		Seq:      e.seq.Next(),
	}
	if incoming.Side == domain.SideBuy {
		t.BuyOrderID = incoming.ID
		t.SellOrderID = resting.ID
	} else {
		t.BuyOrderID = resting.ID
		t.SellOrderID = incoming.ID
	}
	return t
}

// Cancel removes a resting or parked order. It returns
// ErrOrderNotFound if the ID is unknown, already fully filled, or
// already cancelled. Modification is not a primitive: callers cancel
// and submit a fresh order instead.
func (e *Engine) Cancel(orderID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	o, ok := e.orders[orderID]
	if !ok {
		return fmt.Errorf("order %d: %w", orderID, domain.ErrOrderNotFound)
	}
	delete(e.orders, orderID)

	switch o.Type {
	case domain.OrderTypeStop, domain.OrderTypeStopLimit:
		e.stops.Remove(orderID)
	default:
		e.book.Remove(orderID)
	}
	o.Status = domain.OrderStatusCancelled
	return nil
}

// Snapshot returns up to depth aggregated price levels per side, best
// price first, reflecting only displayed remaining quantity. It does
// not mutate engine state.
func (e *Engine) Snapshot(depth int) (bids, asks []PriceLevel) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.book.TopBids(depth), e.book.TopAsks(depth)
}

// BestBid returns the highest resting bid price, or false if the bid
// side is empty.
func (e *Engine) BestBid() (int64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	o, ok := e.book.BestBid()
	if !ok {
		return 0, false
	}
	return o.Price, true
}

// BestAsk returns the lowest resting ask price, or false if the ask
// side is empty.
func (e *Engine) BestAsk() (int64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	o, ok := e.book.BestAsk()
	if !ok {
		return 0, false
	}
	return o.Price, true
}
