package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/smartserve-pos/api/internal/inventory"
)

// InventoryStore defines the catalog operations needed by menu and
// inventory handlers. Satisfied by *inventory.Store.
type InventoryStore interface {
	Load() (inventory.Catalog, error)
	ApplyBulkUpdate(prices, stocks map[string]string) error
}

// InventoryHandler handles the menu view and the manager's bulk inventory
// update.
type InventoryHandler struct {
	store InventoryStore
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(store InventoryStore) *InventoryHandler {
	return &InventoryHandler{store: store}
}

// --- Request / Response types ---

type menuItemResponse struct {
	Name  string `json:"name"`
	Price string `json:"price"`
	Stock int    `json:"stock"`
}

type inventoryItemUpdate struct {
	Price string `json:"price"`
	Stock string `json:"stock"`
}

type updateInventoryRequest struct {
	Items map[string]inventoryItemUpdate `json:"items"`
}

// --- Handlers ---

// Menu lists the catalog in name order.
func (h *InventoryHandler) Menu(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.store.Load()
	if err != nil {
		log.Printf("ERROR: load catalog: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "catalog unavailable"})
		return
	}

	resp := make([]menuItemResponse, 0, len(catalog))
	for _, name := range catalog.Names() {
		item := catalog[name]
		resp = append(resp, menuItemResponse{
			Name:  item.Name,
			Price: item.Price.StringFixed(2),
			Stock: item.Stock,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Update bulk-applies new prices and stock levels. Fields that fail to parse
// are skipped item by item; the batch as a whole still succeeds.
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateInventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Items) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "items are required"})
		return
	}

	prices := make(map[string]string, len(req.Items))
	stocks := make(map[string]string, len(req.Items))
	for name, upd := range req.Items {
		prices[name] = upd.Price
		stocks[name] = upd.Stock
	}

	if err := h.store.ApplyBulkUpdate(prices, stocks); err != nil {
		log.Printf("ERROR: bulk inventory update: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
