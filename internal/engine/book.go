package engine

import (
	"github.com/google/btree"

	"github.com/openclob/matchbook/internal/domain"
)

// bookEntry is a single resting order on one side of the book.
type bookEntry struct {
	price   int64
	seq     uint64
	orderID uint64
	order   *domain.Order
}

// PriceLevel is an aggregated view of one price on one side of the book.
type PriceLevel struct {
	Price    int64
	Quantity int64
	Orders   int
}

// bidLess orders the bid side: price descending, then insertion
// sequence ascending. Min() therefore returns the best bid (highest
// price, earliest arrival).
func bidLess(a, b bookEntry) bool {
	if a.price != b.price {
		return a.price > b.price
	}
	return a.seq < b.seq
}

// askLess orders the ask side: price ascending, then insertion
// sequence ascending. Min() returns the best ask (lowest price,
// earliest arrival).
func askLess(a, b bookEntry) bool {
	if a.price != b.price {
		return a.price < b.price
	}
	return a.seq < b.seq
}

// Book maintains the bid and ask sides of a single instrument as
// B-trees, with a secondary index for O(log n) removal by order ID.
// Every order on the book has Remaining() > 0; fully filled orders are
// removed by the engine as part of the match loop.
//
// Book performs no locking of its own. The engine serializes all
// access, including reads.
type Book struct {
	bids  *btree.BTreeG[bookEntry]
	asks  *btree.BTreeG[bookEntry]
	index map[uint64]bookEntry // order ID → entry
}

// NewBook creates an empty book.
func NewBook() *Book {
	const degree = 32
	return &Book{
		bids:  btree.NewG(degree, bidLess),
		asks:  btree.NewG(degree, askLess),
		index: make(map[uint64]bookEntry),
	}
}

// Insert rests an order on its side of the book. The order's Price and
// Seq at the time of the call determine its position; re-inserting
// after changing Seq requires a Remove first so the index stays
// consistent.
func (b *Book) Insert(o *domain.Order) {
	entry := bookEntry{
		price:   o.Price,
		seq:     o.Seq,
		orderID: o.ID,
		order:   o,
	}
	if o.Side == domain.SideBuy {
		b.bids.ReplaceOrInsert(entry)
	} else {
		b.asks.ReplaceOrInsert(entry)
	}
	b.index[o.ID] = entry
}

// Remove deletes an order from the book by ID. It reports whether the
// order was present.
func (b *Book) Remove(orderID uint64) bool {
	entry, ok := b.index[orderID]
	if !ok {
		return false
	}
	delete(b.index, orderID)
	if entry.order.Side == domain.SideBuy {
		b.bids.Delete(entry)
	} else {
		b.asks.Delete(entry)
	}
	return true
}

// Contains reports whether an order with the given ID rests on the book.
func (b *Book) Contains(orderID uint64) bool {
	_, ok := b.index[orderID]
	return ok
}

// BestBid returns the highest-priority bid order.
func (b *Book) BestBid() (*domain.Order, bool) {
	entry, ok := b.bids.Min()
	if !ok {
		return nil, false
	}
	return entry.order, true
}

// BestAsk returns the highest-priority ask order.
func (b *Book) BestAsk() (*domain.Order, bool) {
	entry, ok := b.asks.Min()
	if !ok {
		return nil, false
	}
	return entry.order, true
}

// WalkBids iterates bids in priority order (highest price first). The
// callback returns true to continue, false to stop.
func (b *Book) WalkBids(fn func(*domain.Order) bool) {
	b.bids.Ascend(func(entry bookEntry) bool {
		return fn(entry.order)
	})
}

// WalkAsks iterates asks in priority order (lowest price first). The
// callback returns true to continue, false to stop.
func (b *Book) WalkAsks(fn func(*domain.Order) bool) {
	b.asks.Ascend(func(entry bookEntry) bool {
		return fn(entry.order)
	})
}

// TopBids returns up to n aggregated price levels from the bid side,
// best (highest) price first.
func (b *Book) TopBids(n int) []PriceLevel {
	return topLevels(b.bids, n)
}

// TopAsks returns up to n aggregated price levels from the ask side,
// best (lowest) price first.
func (b *Book) TopAsks(n int) []PriceLevel {
	return topLevels(b.asks, n)
}

// topLevels iterates a side in order and aggregates entries into at
// most n price levels. Only displayed remaining quantity is counted;
// iceberg reserves stay hidden.
func topLevels(tree *btree.BTreeG[bookEntry], n int) []PriceLevel {
	if n <= 0 {
		return nil
	}
	levels := make([]PriceLevel, 0, n)
	tree.Ascend(func(entry bookEntry) bool {
		if len(levels) > 0 && levels[len(levels)-1].Price == entry.price {
			levels[len(levels)-1].Quantity += entry.order.Remaining()
			levels[len(levels)-1].Orders++
			return true
		}
		if len(levels) >= n {
			return false
		}
		levels = append(levels, PriceLevel{
			Price:    entry.price,
			Quantity: entry.order.Remaining(),
			Orders:   1,
		})
		return true
	})
	return levels
}

// BidCount returns the number of individual bid orders on the book.
func (b *Book) BidCount() int {
	return b.bids.Len()
}

// AskCount returns the number of individual ask orders on the book.
func (b *Book) AskCount() int {
	return b.asks.Len()
}
