package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/smartserve-pos/api/internal/hall"
)

// TableStore defines the board operations needed by table handlers.
// Satisfied by *hall.Board; narrow interface for testability.
type TableStore interface {
	Reserve(customerName string, partySize int) (tableID string, waitlisted bool)
	ClearAll()
	ClearOne(tableID string) error
	RemoveFromWaitlist(customerName string) error
	Status() []hall.Table
	Waitlist() []hall.WaitingEntry
}

// TableHandler handles table and waiting list endpoints.
type TableHandler struct {
	board TableStore
}

// NewTableHandler creates a new TableHandler.
func NewTableHandler(board TableStore) *TableHandler {
	return &TableHandler{board: board}
}

// --- Request / Response types ---

type reserveRequest struct {
	CustomerName string `json:"customer_name"`
	PartySize    int    `json:"party_size"`
}

type reserveResponse struct {
	TableID    string `json:"table_id,omitempty"`
	Waitlisted bool   `json:"waitlisted"`
}

type tableResponse struct {
	ID           string     `json:"id"`
	Occupied     bool       `json:"occupied"`
	CustomerName string     `json:"customer_name,omitempty"`
	PartySize    int        `json:"party_size,omitempty"`
	SeatedAt     *time.Time `json:"seated_at,omitempty"`
}

type waitingEntryResponse struct {
	CustomerName string    `json:"customer_name"`
	JoinedAt     time.Time `json:"joined_at"`
}

type removeWaitingRequest struct {
	CustomerName string `json:"customer_name"`
}

// --- Handlers ---

// Status lists every table with its occupancy, in id order.
func (h *TableHandler) Status(w http.ResponseWriter, r *http.Request) {
	tables := h.board.Status()
	resp := make([]tableResponse, 0, len(tables))
	for _, t := range tables {
		tr := tableResponse{ID: t.ID}
		if t.Occupant != nil {
			tr.Occupied = true
			tr.CustomerName = t.Occupant.CustomerName
			tr.PartySize = t.Occupant.PartySize
			seatedAt := t.Occupant.SeatedAt
			tr.SeatedAt = &seatedAt
		}
		resp = append(resp, tr)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Reserve seats the customer or queues them on the waiting list.
func (h *TableHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	var req reserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "customer_name is required"})
		return
	}
	if req.PartySize < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "party_size must be at least 1"})
		return
	}

	tableID, waitlisted := h.board.Reserve(req.CustomerName, req.PartySize)
	if waitlisted {
		writeJSON(w, http.StatusAccepted, reserveResponse{Waitlisted: true})
		return
	}
	writeJSON(w, http.StatusCreated, reserveResponse{TableID: tableID})
}

// ClearAll vacates every table.
func (h *TableHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	h.board.ClearAll()
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// ClearOne vacates a single table.
func (h *TableHandler) ClearOne(w http.ResponseWriter, r *http.Request) {
	tableID := chi.URLParam(r, "id")
	if err := h.board.ClearOne(tableID); err != nil {
		if errors.Is(err, hall.ErrInvalidTable) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "invalid table number"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// Waitlist lists waiting customers in arrival order.
func (h *TableHandler) Waitlist(w http.ResponseWriter, r *http.Request) {
	entries := h.board.Waitlist()
	resp := make([]waitingEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, waitingEntryResponse{CustomerName: e.CustomerName, JoinedAt: e.JoinedAt})
	}
	writeJSON(w, http.StatusOK, resp)
}

// RemoveWaiting removes the first waiting entry matching the name.
func (h *TableHandler) RemoveWaiting(w http.ResponseWriter, r *http.Request) {
	var req removeWaitingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "customer_name is required"})
		return
	}

	if err := h.board.RemoveFromWaitlist(req.CustomerName); err != nil {
		if errors.Is(err, hall.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "name is not on the waiting list"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
