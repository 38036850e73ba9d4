package ledger_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/smartserve-pos/api/internal/enum"
	"github.com/smartserve-pos/api/internal/inventory"
	"github.com/smartserve-pos/api/internal/ledger"
)

// --- Mock stock reserver ---

type mockStock struct {
	prices map[string]decimal.Decimal
	stock  map[string]int
}

func newMockStock() *mockStock {
	return &mockStock{
		prices: map[string]decimal.Decimal{
			"Burger": decimal.RequireFromString("8.00"),
			"Pizza":  decimal.RequireFromString("12.50"),
		},
		stock: map[string]int{"Burger": 2, "Pizza": 8},
	}
}

func (m *mockStock) ReserveStock(item string, qty int) (decimal.Decimal, error) {
	price, ok := m.prices[item]
	if !ok {
		return decimal.Zero, inventory.ErrUnknownItem
	}
	if m.stock[item] < qty {
		return decimal.Zero, inventory.ErrOutOfStock
	}
	m.stock[item] -= qty
	return price, nil
}

// --- Place ---

func TestPlace(t *testing.T) {
	stock := newMockStock()
	l := ledger.New(stock)

	order, index, err := l.Place("1", "Burger", 2)
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	if index != 0 {
		t.Errorf("index: got %d, want 0", index)
	}
	if order.TableID != "1" {
		t.Errorf("table: got %s, want 1", order.TableID)
	}
	if len(order.Items) != 1 || order.Items[0] != "Burger x2" {
		t.Errorf("items: got %v, want [Burger x2]", order.Items)
	}
	if !order.Total.Equal(decimal.RequireFromString("16.00")) {
		t.Errorf("total: got %s, want 16.00", order.Total)
	}
	if order.Status != enum.OrderStatusPending {
		t.Errorf("status: got %s, want PENDING", order.Status)
	}
	if order.PlacedAt.IsZero() {
		t.Error("missing placement time")
	}
	if stock.stock["Burger"] != 0 {
		t.Errorf("stock: got %d, want 0", stock.stock["Burger"])
	}
}

func TestPlaceOutOfStock(t *testing.T) {
	stock := newMockStock()
	l := ledger.New(stock)

	_, _, err := l.Place("1", "Burger", 3)
	if !errors.Is(err, inventory.ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}
	if stock.stock["Burger"] != 2 {
		t.Errorf("stock mutated on failed order: got %d, want 2", stock.stock["Burger"])
	}
	if len(l.All()) != 0 {
		t.Error("no order should be recorded on OutOfStock")
	}
}

func TestPlaceNeverMergesOrders(t *testing.T) {
	l := ledger.New(newMockStock())

	if _, _, err := l.Place("1", "Burger", 1); err != nil {
		t.Fatalf("place: %v", err)
	}
	if _, _, err := l.Place("1", "Burger", 1); err != nil {
		t.Fatalf("place: %v", err)
	}

	all := l.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 separate orders, got %d", len(all))
	}
	if all[0].Index != 0 || all[1].Index != 1 {
		t.Errorf("indices: got %d,%d, want 0,1", all[0].Index, all[1].Index)
	}
}

// --- State machine ---

func TestMarkReady(t *testing.T) {
	l := ledger.New(newMockStock())
	l.Place("2", "Pizza", 1)

	order, err := l.MarkReady("2", 0)
	if err != nil {
		t.Fatalf("mark ready: %v", err)
	}
	if order.Status != enum.OrderStatusReady {
		t.Errorf("status: got %s, want READY", order.Status)
	}
}

func TestMarkReadyInvalidReference(t *testing.T) {
	l := ledger.New(newMockStock())
	l.Place("2", "Pizza", 1)

	if _, err := l.MarkReady("2", 5); !errors.Is(err, ledger.ErrInvalidReference) {
		t.Errorf("out-of-range index: expected ErrInvalidReference, got %v", err)
	}
	if _, err := l.MarkReady("9", 0); !errors.Is(err, ledger.ErrInvalidReference) {
		t.Errorf("unknown table: expected ErrInvalidReference, got %v", err)
	}
}

func TestMarkReadyNeverRegressesDelivered(t *testing.T) {
	l := ledger.New(newMockStock())
	l.Place("2", "Pizza", 1)
	l.MarkDelivered("2", 0)

	order, err := l.MarkReady("2", 0)
	if err != nil {
		t.Fatalf("mark ready: %v", err)
	}
	if order.Status != enum.OrderStatusDelivered {
		t.Errorf("delivered order regressed to %s", order.Status)
	}
}

func TestMarkDeliveredFromPending(t *testing.T) {
	l := ledger.New(newMockStock())
	l.Place("2", "Pizza", 1)

	// Delivering straight from PENDING is allowed.
	order, err := l.MarkDelivered("2", 0)
	if err != nil {
		t.Fatalf("mark delivered: %v", err)
	}
	if order.Status != enum.OrderStatusDelivered {
		t.Errorf("status: got %s, want DELIVERED", order.Status)
	}
}

// --- Listings ---

func TestListingsFilterByStatus(t *testing.T) {
	l := ledger.New(newMockStock())
	l.Place("1", "Pizza", 1)
	l.Place("1", "Pizza", 1)
	l.Place("3", "Pizza", 1)

	l.MarkReady("1", 1)
	l.MarkReady("3", 0)
	l.MarkDelivered("3", 0)

	pending := l.Pending()
	if len(pending) != 1 || pending[0].TableID != "1" || pending[0].Index != 0 {
		t.Errorf("pending: got %+v", pending)
	}

	ready := l.ReadyUndelivered()
	if len(ready) != 1 || ready[0].TableID != "1" || ready[0].Index != 1 {
		t.Errorf("ready: got %+v", ready)
	}

	all := l.All()
	if len(all) != 3 {
		t.Fatalf("all: got %d entries, want 3", len(all))
	}
	// Tables in sorted order, entries in placement order.
	if all[0].TableID != "1" || all[1].TableID != "1" || all[2].TableID != "3" {
		t.Errorf("all ordering: got %+v", all)
	}
}

func TestIndicesStableAfterTransitions(t *testing.T) {
	l := ledger.New(newMockStock())
	l.Place("1", "Pizza", 1)
	l.Place("1", "Pizza", 1)
	l.Place("1", "Pizza", 1)

	l.MarkDelivered("1", 0)
	l.MarkReady("1", 1)

	pending := l.Pending()
	if len(pending) != 1 || pending[0].Index != 2 {
		t.Fatalf("pending entry should keep index 2, got %+v", pending)
	}
}
