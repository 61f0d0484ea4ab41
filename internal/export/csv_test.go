package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/openclob/matchbook/internal/domain"
	"github.com/openclob/matchbook/internal/engine"
)

func TestWriteTrades(t *testing.T) {
	trades := []*domain.Trade{
		{TradeID: "t1", BuyOrderID: 3, SellOrderID: 1, Price: 10100, Quantity: 10, Seq: 4},
		{TradeID: "t2", BuyOrderID: 3, SellOrderID: 2, Price: 10100, Quantity: 2, Seq: 5},
	}

	var buf bytes.Buffer
	if err := WriteTrades(&buf, trades); err != nil {
		t.Fatalf("WriteTrades failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows", len(lines))
	}
	if lines[0] != "trade_id,buy_order_id,sell_order_id,price,quantity,seq" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "t1,3,1,101.00,10,4" {
		t.Errorf("row 1 = %q, want %q", lines[1], "t1,3,1,101.00,10,4")
	}
}

func TestWriteTrades_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTrades(&buf, nil); err != nil {
		t.Fatalf("WriteTrades failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Errorf("got %d lines, want header only", len(lines))
	}
}

func TestWriteDepth(t *testing.T) {
	bids := []engine.PriceLevel{
		{Price: 10000, Quantity: 12, Orders: 2},
		{Price: 9900, Quantity: 5, Orders: 1},
	}
	asks := []engine.PriceLevel{
		{Price: 10100, Quantity: 3, Orders: 1},
	}

	var buf bytes.Buffer
	if err := WriteDepth(&buf, bids, asks); err != nil {
		t.Fatalf("WriteDepth failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{
		"side,level,price,quantity,orders",
		"bid,1,100.00,12,2",
		"bid,2,99.00,5,1",
		"ask,1,101.00,3,1",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
