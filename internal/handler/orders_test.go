package handler_test

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/smartserve-pos/api/internal/handler"
	"github.com/smartserve-pos/api/internal/inventory"
	"github.com/smartserve-pos/api/internal/ledger"
	"github.com/smartserve-pos/api/internal/ws"
)

// --- Mocks ---

// memStock backs the real ledger with in-memory stock.
type memStock struct {
	prices map[string]decimal.Decimal
	stock  map[string]int
}

func newMemStock() *memStock {
	return &memStock{
		prices: map[string]decimal.Decimal{"Burger": decimal.RequireFromString("8.00")},
		stock:  map[string]int{"Burger": 2},
	}
}

func (m *memStock) ReserveStock(item string, qty int) (decimal.Decimal, error) {
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

type mockBroadcaster struct {
	events []ws.Event
}

func (m *mockBroadcaster) Broadcast(event ws.Event) {
	m.events = append(m.events, event)
}

// --- Helpers ---

func setupOrderRouter(l *ledger.Ledger, hub *mockBroadcaster) *chi.Mux {
	h := handler.NewOrderHandler(l, hub)
	r := chi.NewRouter()
	r.Post("/orders", h.Place)
	r.Post("/orders/{table}/{idx}/ready", h.MarkReady)
	r.Post("/orders/{table}/{idx}/deliver", h.MarkDelivered)
	r.Get("/orders/pending", h.Pending)
	r.Get("/orders/ready", h.Ready)
	r.Get("/orders", h.All)
	return r
}

// --- Place tests ---

func TestPlaceOrder(t *testing.T) {
	stock := newMemStock()
	hub := &mockBroadcaster{}
	router := setupOrderRouter(ledger.New(stock), hub)

	rr := doRequest(t, router, "POST", "/orders", map[string]interface{}{
		"table_id": "1", "item_name": "Burger", "quantity": 2,
	})

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	resp := decodeResponse(t, rr)
	if resp["table_id"] != "1" {
		t.Errorf("table_id: got %v", resp["table_id"])
	}
	if resp["total"] != "16.00" {
		t.Errorf("total: got %v, want 16.00", resp["total"])
	}
	if resp["status"] != "PENDING" {
		t.Errorf("status: got %v, want PENDING", resp["status"])
	}
	items, _ := resp["items"].([]interface{})
	if len(items) != 1 || items[0] != "Burger x2" {
		t.Errorf("items: got %v", items)
	}
	if stock.stock["Burger"] != 0 {
		t.Errorf("stock: got %d, want 0", stock.stock["Burger"])
	}

	if len(hub.events) != 1 || hub.events[0].Type != "order.placed" {
		t.Errorf("events: got %+v", hub.events)
	}
}

func TestPlaceOrder_OutOfStock(t *testing.T) {
	stock := newMemStock()
	hub := &mockBroadcaster{}
	l := ledger.New(stock)
	router := setupOrderRouter(l, hub)

	rr := doRequest(t, router, "POST", "/orders", map[string]interface{}{
		"table_id": "1", "item_name": "Burger", "quantity": 3,
	})

	if rr.Code != http.StatusConflict {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusConflict)
	}
	if stock.stock["Burger"] != 2 {
		t.Errorf("stock mutated on rejected order: got %d, want 2", stock.stock["Burger"])
	}
	if len(l.All()) != 0 {
		t.Error("no order should be recorded")
	}
	if len(hub.events) != 0 {
		t.Error("no event should be broadcast for a rejected order")
	}
}

func TestPlaceOrder_UnknownItem(t *testing.T) {
	router := setupOrderRouter(ledger.New(newMemStock()), &mockBroadcaster{})

	rr := doRequest(t, router, "POST", "/orders", map[string]interface{}{
		"table_id": "1", "item_name": "Sushi", "quantity": 1,
	})

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestPlaceOrder_Invalid(t *testing.T) {
	router := setupOrderRouter(ledger.New(newMemStock()), &mockBroadcaster{})

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing table", map[string]interface{}{"item_name": "Burger", "quantity": 1}},
		{"missing item", map[string]interface{}{"table_id": "1", "quantity": 1}},
		{"zero quantity", map[string]interface{}{"table_id": "1", "item_name": "Burger", "quantity": 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := doRequest(t, router, "POST", "/orders", tc.body)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
			}
		})
	}
}

// --- Transition tests ---

func TestMarkReadyEndpoint(t *testing.T) {
	l := ledger.New(newMemStock())
	l.Place("1", "Burger", 1)
	hub := &mockBroadcaster{}
	router := setupOrderRouter(l, hub)

	rr := doRequest(t, router, "POST", "/orders/1/0/ready", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	if resp := decodeResponse(t, rr); resp["status"] != "READY" {
		t.Errorf("status field: got %v, want READY", resp["status"])
	}
	if len(hub.events) != 1 || hub.events[0].Type != "order.ready" {
		t.Errorf("events: got %+v", hub.events)
	}
}

func TestMarkDeliveredEndpoint_FromPending(t *testing.T) {
	l := ledger.New(newMemStock())
	l.Place("1", "Burger", 1)
	router := setupOrderRouter(l, &mockBroadcaster{})

	// Delivering a still-pending order is allowed.
	rr := doRequest(t, router, "POST", "/orders/1/0/deliver", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
	if resp := decodeResponse(t, rr); resp["status"] != "DELIVERED" {
		t.Errorf("status field: got %v, want DELIVERED", resp["status"])
	}
}

func TestTransition_InvalidReference(t *testing.T) {
	l := ledger.New(newMemStock())
	l.Place("1", "Burger", 1)
	router := setupOrderRouter(l, &mockBroadcaster{})

	rr := doRequest(t, router, "POST", "/orders/1/7/ready", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("out-of-range index: got %d, want %d", rr.Code, http.StatusNotFound)
	}

	rr = doRequest(t, router, "POST", "/orders/9/0/deliver", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown table: got %d, want %d", rr.Code, http.StatusNotFound)
	}

	rr = doRequest(t, router, "POST", "/orders/1/x/ready", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("non-numeric index: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

// --- Listing tests ---

func TestOrderListings(t *testing.T) {
	stock := newMemStock()
	stock.stock["Burger"] = 10
	l := ledger.New(stock)
	l.Place("1", "Burger", 1)
	l.Place("1", "Burger", 1)
	l.Place("2", "Burger", 1)
	l.MarkReady("1", 0)
	l.MarkDelivered("2", 0)
	router := setupOrderRouter(l, &mockBroadcaster{})

	rr := doRequest(t, router, "GET", "/orders/pending", nil)
	if resp := decodeListResponse(t, rr); len(resp) != 1 || resp[0]["table_id"] != "1" {
		t.Errorf("pending: got %v", resp)
	}

	rr = doRequest(t, router, "GET", "/orders/ready", nil)
	if resp := decodeListResponse(t, rr); len(resp) != 1 || resp[0]["index"] != float64(0) {
		t.Errorf("ready: got %v", resp)
	}

	rr = doRequest(t, router, "GET", "/orders", nil)
	if resp := decodeListResponse(t, rr); len(resp) != 3 {
		t.Errorf("all: got %d entries, want 3", len(resp))
	}
}
