package engine

import "github.com/openclob/matchbook/internal/domain"

// StopManager parks stop and stop-limit orders until a trade at or
// through their trigger price activates them. Parked orders are not
// price-indexed: they are inert until triggered, and the parked set is
// expected to stay small relative to the book.
//
// Like Book, StopManager relies on the engine for serialization.
type StopManager struct {
	parked []*domain.Order
}

// NewStopManager creates an empty StopManager.
func NewStopManager() *StopManager {
	return &StopManager{}
}

// Park holds a stop or stop-limit order until triggered.
func (s *StopManager) Park(o *domain.Order) {
	s.parked = append(s.parked, o)
}

// Remove deletes a parked order by ID, reporting whether it was found.
func (s *StopManager) Remove(orderID uint64) bool {
	for i, o := range s.parked {
		if o.ID == orderID {
			s.parked = append(s.parked[:i], s.parked[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of parked orders.
func (s *StopManager) Len() int {
	return len(s.parked)
}

// Trigger returns the orders activated by a trade at lastPrice, in
// park order: a buy activates when lastPrice >= its stop price, a sell
// when lastPrice <= its stop price. Activated stop orders convert to
// market orders (limit price cleared); activated stop-limit orders
// convert to limit orders keeping their pre-set limit price. Activated
// orders are removed from the manager; the caller re-submits them.
func (s *StopManager) Trigger(lastPrice int64) []*domain.Order {
	var activated []*domain.Order
	remain := s.parked[:0]
	for _, o := range s.parked {
		triggered := (o.Side == domain.SideBuy && lastPrice >= o.StopPrice) ||
			(o.Side == domain.SideSell && lastPrice <= o.StopPrice)
		if !triggered {
			remain = append(remain, o)
			continue
		}
		switch o.Type {
		case domain.OrderTypeStop:
			o.Type = domain.OrderTypeMarket
			o.Price = 0
		case domain.OrderTypeStopLimit:
			o.Type = domain.OrderTypeLimit
		}
		activated = append(activated, o)
	}
	s.parked = remain
	return activated
}
