package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/smartserve-pos/api/internal/inventory"
	"github.com/smartserve-pos/api/internal/ledger"
	"github.com/smartserve-pos/api/internal/ws"
)

// OrderStore defines the ledger operations needed by order handlers.
// Satisfied by *ledger.Ledger; narrow interface for testability.
type OrderStore interface {
	Place(tableID, item string, qty int) (*ledger.Order, int, error)
	MarkReady(tableID string, index int) (*ledger.Order, error)
	MarkDelivered(tableID string, index int) (*ledger.Order, error)
	Pending() []ledger.Entry
	ReadyUndelivered() []ledger.Entry
	All() []ledger.Entry
}

// EventBroadcaster pushes order lifecycle events to connected dashboards.
// Satisfied by *ws.Hub.
type EventBroadcaster interface {
	Broadcast(event ws.Event)
}

// OrderHandler handles order placement and fulfillment endpoints.
type OrderHandler struct {
	store OrderStore
	hub   EventBroadcaster
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(store OrderStore, hub EventBroadcaster) *OrderHandler {
	return &OrderHandler{store: store, hub: hub}
}

// --- Request / Response types ---

type placeOrderRequest struct {
	TableID  string `json:"table_id"`
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

type orderResponse struct {
	ID       uuid.UUID `json:"id"`
	TableID  string    `json:"table_id"`
	Index    int       `json:"index"`
	Items    []string  `json:"items"`
	Total    string    `json:"total"`
	PlacedAt time.Time `json:"placed_at"`
	Status   string    `json:"status"`
}

func toOrderResponse(tableID string, index int, o ledger.Order) orderResponse {
	return orderResponse{
		ID:       o.ID,
		TableID:  tableID,
		Index:    index,
		Items:    o.Items,
		Total:    o.Total.StringFixed(2),
		PlacedAt: o.PlacedAt,
		Status:   o.Status,
	}
}

// --- Handlers ---

// Place creates a new pending order, reserving stock first.
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.TableID) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "table_id is required"})
		return
	}
	if strings.TrimSpace(req.ItemName) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "item_name is required"})
		return
	}
	if req.Quantity < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "quantity must be at least 1"})
		return
	}

	order, index, err := h.store.Place(req.TableID, req.ItemName, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, inventory.ErrOutOfStock):
			writeJSON(w, http.StatusConflict, map[string]string{"error": "not enough " + req.ItemName + " in stock"})
		case errors.Is(err, inventory.ErrUnknownItem):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown menu item"})
		default:
			log.Printf("ERROR: place order: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	resp := toOrderResponse(order.TableID, index, *order)
	h.broadcast("order.placed", resp)
	writeJSON(w, http.StatusCreated, resp)
}

// MarkReady transitions a pending order to ready (kitchen action).
func (h *OrderHandler) MarkReady(w http.ResponseWriter, r *http.Request) {
	tableID, index, ok := h.orderRef(w, r)
	if !ok {
		return
	}

	order, err := h.store.MarkReady(tableID, index)
	if err != nil {
		h.writeLedgerError(w, err)
		return
	}

	resp := toOrderResponse(tableID, index, *order)
	h.broadcast("order.ready", resp)
	writeJSON(w, http.StatusOK, resp)
}

// MarkDelivered transitions an order to delivered (staff action). Delivering
// an order that was never marked ready is allowed.
func (h *OrderHandler) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	tableID, index, ok := h.orderRef(w, r)
	if !ok {
		return
	}

	order, err := h.store.MarkDelivered(tableID, index)
	if err != nil {
		h.writeLedgerError(w, err)
		return
	}

	resp := toOrderResponse(tableID, index, *order)
	h.broadcast("order.delivered", resp)
	writeJSON(w, http.StatusOK, resp)
}

// Pending lists pending orders for the kitchen view.
func (h *OrderHandler) Pending(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toOrderList(h.store.Pending()))
}

// Ready lists ready, undelivered orders for the delivery view.
func (h *OrderHandler) Ready(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toOrderList(h.store.ReadyUndelivered()))
}

// All lists every order for the manager view.
func (h *OrderHandler) All(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toOrderList(h.store.All()))
}

// --- Helpers ---

func toOrderList(entries []ledger.Entry) []orderResponse {
	resp := make([]orderResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, toOrderResponse(e.TableID, e.Index, e.Order))
	}
	return resp
}

func (h *OrderHandler) orderRef(w http.ResponseWriter, r *http.Request) (string, int, bool) {
	tableID := chi.URLParam(r, "table")
	index, err := strconv.Atoi(chi.URLParam(r, "idx"))
	if err != nil || index < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order index"})
		return "", 0, false
	}
	return tableID, index, true
}

func (h *OrderHandler) writeLedgerError(w http.ResponseWriter, err error) {
	if errors.Is(err, ledger.ErrInvalidReference) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no such order"})
		return
	}
	log.Printf("ERROR: order transition: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

func (h *OrderHandler) broadcast(eventType string, resp orderResponse) {
	payload, err := json.Marshal(resp)
	if err != nil {
		log.Printf("ERROR: marshal %s event: %v", eventType, err)
		return
	}
	h.hub.Broadcast(ws.Event{Type: eventType, Payload: payload})
}
