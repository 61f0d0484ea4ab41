package domain

// Trade records a single match between a buy order and a sell order.
// The price is always the resting side's price. Trades are immutable
// once created.
type Trade struct {
	TradeID     string
	BuyOrderID  uint64
	SellOrderID uint64
	Price       int64 // cents
	Quantity    int64
	Seq         uint64
}
