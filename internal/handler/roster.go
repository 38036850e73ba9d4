package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/smartserve-pos/api/internal/enum"
	"github.com/smartserve-pos/api/internal/shift"
)

// ShiftStore defines the registry reads needed by roster handlers.
// Satisfied by *shift.Registry.
type ShiftStore interface {
	ActiveRoster(role string) []shift.Record
}

// RosterHandler reports who is currently checked in, for the manager view.
type RosterHandler struct {
	shifts ShiftStore
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(shifts ShiftStore) *RosterHandler {
	return &RosterHandler{shifts: shifts}
}

type rosterEntryResponse struct {
	Name      string    `json:"name"`
	CheckedIn time.Time `json:"checked_in_at"`
}

// Active lists every open shift for the role in the URL ("staff" or
// "cooks"). Shifts are never checked out, so the list only ever grows.
func (h *RosterHandler) Active(w http.ResponseWriter, r *http.Request) {
	var role string
	switch chi.URLParam(r, "role") {
	case "staff":
		role = enum.RoleStaff
	case "cooks":
		role = enum.RoleCook
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown roster"})
		return
	}

	records := h.shifts.ActiveRoster(role)
	resp := make([]rosterEntryResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, rosterEntryResponse{Name: rec.PersonName, CheckedIn: rec.CheckIn})
	}
	writeJSON(w, http.StatusOK, resp)
}
