// Package export serializes engine state for collaborators that want
// to persist it. The engine itself mandates no format; these writers
// produce plain CSV.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/openclob/matchbook/internal/domain"
	"github.com/openclob/matchbook/internal/engine"
)

// WriteTrades writes trades as CSV rows with a header. Prices are
// formatted in dollars with two decimal places.
func WriteTrades(w io.Writer, trades []*domain.Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"trade_id", "buy_order_id", "sell_order_id", "price", "quantity", "seq"}); err != nil {
		return err
	}
	for _, t := range trades {
		row := []string{
			t.TradeID,
			strconv.FormatUint(t.BuyOrderID, 10),
			strconv.FormatUint(t.SellOrderID, 10),
			formatPrice(t.Price),
			strconv.FormatInt(t.Quantity, 10),
			strconv.FormatUint(t.Seq, 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDepth writes a depth snapshot as CSV rows with a header, one
// row per price level, bids first. Levels arrive best price first and
// are written in that order.
func WriteDepth(w io.Writer, bids, asks []engine.PriceLevel) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"side", "level", "price", "quantity", "orders"}); err != nil {
		return err
	}
	write := func(side string, levels []engine.PriceLevel) error {
		for i, lvl := range levels {
			row := []string{
				side,
				strconv.Itoa(i + 1),
				formatPrice(lvl.Price),
				strconv.FormatInt(lvl.Quantity, 10),
				strconv.Itoa(lvl.Orders),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	}
	if err := write("bid", bids); err != nil {
		return err
	}
	if err := write("ask", asks); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func formatPrice(cents int64) string {
	return strconv.FormatFloat(domain.CentsToDollars(cents), 'f', 2, 64)
}
