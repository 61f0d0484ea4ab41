package store

import (
	"testing"

	"github.com/openclob/matchbook/internal/domain"
)

func TestTradeLog_AppendAndAll(t *testing.T) {
	l := NewTradeLog()
	if l.Len() != 0 {
		t.Errorf("new log Len() = %d, want 0", l.Len())
	}

	l.Append(&domain.Trade{TradeID: "a", Price: 10000, Quantity: 2, Seq: 1})
	l.Append(&domain.Trade{TradeID: "b", Price: 10100, Quantity: 3, Seq: 2})

	all := l.All()
	if len(all) != 2 || all[0].TradeID != "a" || all[1].TradeID != "b" {
		t.Errorf("All() = %v, want chronological [a b]", all)
	}

	// Mutating the returned slice must not affect the log.
	all[0] = nil
	if l.All()[0] == nil {
		t.Error("caller mutated the log through All()")
	}
}

func TestTradeLog_LastPrice(t *testing.T) {
	l := NewTradeLog()
	if _, ok := l.LastPrice(); ok {
		t.Error("LastPrice on empty log reported ok")
	}

	l.Append(&domain.Trade{Price: 10000, Quantity: 1})
	l.Append(&domain.Trade{Price: 10200, Quantity: 1})

	price, ok := l.LastPrice()
	if !ok || price != 10200 {
		t.Errorf("LastPrice() = (%d, %v), want (10200, true)", price, ok)
	}
}

func TestTradeLog_VWAP(t *testing.T) {
	l := NewTradeLog()
	if _, ok := l.VWAP(); ok {
		t.Error("VWAP on empty log reported ok")
	}

	// (10000×1 + 10300×3) / 4 = 10225
	l.Append(&domain.Trade{Price: 10000, Quantity: 1})
	l.Append(&domain.Trade{Price: 10300, Quantity: 3})

	vwap, ok := l.VWAP()
	if !ok || vwap != 10225 {
		t.Errorf("VWAP() = (%d, %v), want (10225, true)", vwap, ok)
	}
}
