package store

import (
	"sync"

	"github.com/openclob/matchbook/internal/domain"
)

// TradeLog is a thread-safe, append-only, chronological log of trades.
// The engine appends; collaborators (exporters, metrics) read it in
// full. A failing reader can never corrupt the log or the engine.
type TradeLog struct {
	mu     sync.RWMutex
	trades []*domain.Trade
}

// NewTradeLog creates an empty TradeLog.
func NewTradeLog() *TradeLog {
	return &TradeLog{}
}

// Append adds a trade to the log.
func (l *TradeLog) Append(t *domain.Trade) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.trades = append(l.trades, t)
}

// All returns every trade in chronological order. The returned slice
// is a copy; callers cannot mutate the log through it.
func (l *TradeLog) All() []*domain.Trade {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*domain.Trade, len(l.trades))
	copy(out, l.trades)
	return out
}

// Len returns the number of logged trades.
func (l *TradeLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.trades)
}

// LastPrice returns the price of the most recent trade, or false if no
// trade has occurred.
func (l *TradeLog) LastPrice() (int64, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.trades) == 0 {
		return 0, false
	}
	return l.trades[len(l.trades)-1].Price, true
}

// VWAP computes the volume-weighted average price over the full log
// using integer arithmetic, as sum(price × quantity) / sum(quantity).
// Returns false if no trades have occurred.
func (l *TradeLog) VWAP() (int64, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var notional, volume int64
	for _, t := range l.trades {
		notional += t.Price * t.Quantity
		volume += t.Quantity
	}
	if volume == 0 {
		return 0, false
	}
	return notional / volume, true
}
