package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/smartserve-pos/api/internal/auth"
	"github.com/smartserve-pos/api/internal/enum"
)

// RosterStore answers whether a name may log in under a role.
// Satisfied by *roster.Roster; narrow interface for testability.
type RosterStore interface {
	Allowed(role, name string) bool
}

// ShiftRecorder records shift check-ins on login.
// Satisfied by *shift.Registry.
type ShiftRecorder interface {
	CheckIn(personName, role string)
}

// AuthHandler handles login and logout. There are no credentials: picking a
// name listed on the role's roster is the whole authentication step.
type AuthHandler struct {
	roster    RosterStore
	shifts    ShiftRecorder
	jwtSecret string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(roster RosterStore, shifts ShiftRecorder, jwtSecret string) *AuthHandler {
	return &AuthHandler{roster: roster, shifts: shifts, jwtSecret: jwtSecret}
}

// RegisterRoutes registers the public auth endpoints.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.Login)
}

// --- Request / Response types ---

type loginRequest struct {
	Role string `json:"role"`
	Name string `json:"name"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	User        userResponse `json:"user"`
}

type userResponse struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// --- Handlers ---

// Login starts a session for the given role and name. Staff and cook logins
// also record a shift check-in; there is no matching checkout.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	role := strings.ToUpper(strings.TrimSpace(req.Role))
	name := strings.TrimSpace(req.Name)
	if !enum.ValidRole(role) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown role"})
		return
	}
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	if !h.roster.Allowed(role, name) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "name is not on the roster for this role"})
		return
	}

	token, err := auth.GenerateToken(h.jwtSecret, name, role)
	if err != nil {
		log.Printf("ERROR: failed to generate token: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if role == enum.RoleStaff || role == enum.RoleCook {
		h.shifts.CheckIn(name, role)
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		User:        userResponse{Name: name, Role: role},
	})
}

// Logout acknowledges the end of a session. Tokens are stateless, so the
// client simply discards its copy.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}
