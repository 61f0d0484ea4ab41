package engine

import (
	"testing"

	"github.com/openclob/matchbook/internal/domain"
)

func restingOrder(id, seq uint64, side domain.Side, price, qty int64) *domain.Order {
	return &domain.Order{
		ID:       id,
		Side:     side,
		Type:     domain.OrderTypeLimit,
		Price:    price,
		Quantity: qty,
		Seq:      seq,
		Status:   domain.OrderStatusNew,
	}
}

func TestBook_BestBidIsHighestPrice(t *testing.T) {
	b := NewBook()
	b.Insert(restingOrder(1, 1, domain.SideBuy, 10000, 5))
	b.Insert(restingOrder(2, 2, domain.SideBuy, 10200, 5))
	b.Insert(restingOrder(3, 3, domain.SideBuy, 10100, 5))

	best, ok := b.BestBid()
	if !ok {
		t.Fatal("expected a best bid")
	}
	if best.ID != 2 {
		t.Errorf("best bid ID = %d, want 2", best.ID)
	}
	if best.Price != 10200 {
		t.Errorf("best bid price = %d, want 10200", best.Price)
	}
}

func TestBook_BestAskIsLowestPrice(t *testing.T) {
	b := NewBook()
	b.Insert(restingOrder(1, 1, domain.SideSell, 10300, 5))
	b.Insert(restingOrder(2, 2, domain.SideSell, 10100, 5))
	b.Insert(restingOrder(3, 3, domain.SideSell, 10200, 5))

	best, ok := b.BestAsk()
	if !ok {
		t.Fatal("expected a best ask")
	}
	if best.ID != 2 {
		t.Errorf("best ask ID = %d, want 2", best.ID)
	}
}

func TestBook_SamePriceOrderedBySequence(t *testing.T) {
	b := NewBook()
	b.Insert(restingOrder(7, 20, domain.SideSell, 10100, 5))
	b.Insert(restingOrder(3, 10, domain.SideSell, 10100, 5))

	best, _ := b.BestAsk()
	if best.ID != 3 {
		t.Errorf("best ask ID = %d, want 3 (earlier sequence)", best.ID)
	}

	var ids []uint64
	b.WalkAsks(func(o *domain.Order) bool {
		ids = append(ids, o.ID)
		return true
	})
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 7 {
		t.Errorf("ask walk order = %v, want [3 7]", ids)
	}
}

func TestBook_RemoveByID(t *testing.T) {
	b := NewBook()
	b.Insert(restingOrder(1, 1, domain.SideBuy, 10000, 5))
	b.Insert(restingOrder(2, 2, domain.SideSell, 10100, 5))

	if !b.Remove(1) {
		t.Error("Remove(1) = false, want true")
	}
	if b.Remove(1) {
		t.Error("second Remove(1) = true, want false")
	}
	if b.BidCount() != 0 {
		t.Errorf("bid count = %d, want 0", b.BidCount())
	}
	if b.AskCount() != 1 {
		t.Errorf("ask count = %d, want 1", b.AskCount())
	}
	if b.Contains(1) {
		t.Error("Contains(1) = true after removal")
	}
	if !b.Contains(2) {
		t.Error("Contains(2) = false, want true")
	}
}

func TestBook_EmptySides(t *testing.T) {
	b := NewBook()
	if _, ok := b.BestBid(); ok {
		t.Error("BestBid on empty book reported ok")
	}
	if _, ok := b.BestAsk(); ok {
		t.Error("BestAsk on empty book reported ok")
	}
	if levels := b.TopBids(5); len(levels) != 0 {
		t.Errorf("TopBids on empty book = %v, want empty", levels)
	}
}

func TestBook_TopLevelsAggregation(t *testing.T) {
	b := NewBook()
	b.Insert(restingOrder(1, 1, domain.SideSell, 10100, 10))
	b.Insert(restingOrder(2, 2, domain.SideSell, 10100, 5))
	b.Insert(restingOrder(3, 3, domain.SideSell, 10200, 7))
	b.Insert(restingOrder(4, 4, domain.SideSell, 10300, 2))

	levels := b.TopAsks(2)
	if len(levels) != 2 {
		t.Fatalf("len(TopAsks(2)) = %d, want 2", len(levels))
	}
	if levels[0].Price != 10100 || levels[0].Quantity != 15 || levels[0].Orders != 2 {
		t.Errorf("level 0 = %+v, want {10100 15 2}", levels[0])
	}
	if levels[1].Price != 10200 || levels[1].Quantity != 7 || levels[1].Orders != 1 {
		t.Errorf("level 1 = %+v, want {10200 7 1}", levels[1])
	}
}

func TestBook_TopLevelsCountOnlyRemaining(t *testing.T) {
	b := NewBook()
	o := restingOrder(1, 1, domain.SideBuy, 10000, 10)
	o.Fill(4)
	b.Insert(o)

	levels := b.TopBids(1)
	if len(levels) != 1 || levels[0].Quantity != 6 {
		t.Errorf("TopBids = %v, want one level with quantity 6", levels)
	}
}
