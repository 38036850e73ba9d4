package router

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/smartserve-pos/api/internal/config"
	"github.com/smartserve-pos/api/internal/enum"
	"github.com/smartserve-pos/api/internal/hall"
	"github.com/smartserve-pos/api/internal/handler"
	"github.com/smartserve-pos/api/internal/inventory"
	"github.com/smartserve-pos/api/internal/ledger"
	mw "github.com/smartserve-pos/api/internal/middleware"
	"github.com/smartserve-pos/api/internal/roster"
	"github.com/smartserve-pos/api/internal/shift"
	"github.com/smartserve-pos/api/internal/ws"
)

// New creates a Chi router with all application routes wired up. Every
// mutating core operation sits behind Authenticate plus the role gate the
// action requires.
func New(cfg *config.Config, store *inventory.Store, board *hall.Board, orders *ledger.Ledger, shifts *shift.Registry, users *roster.Roster, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"}, // dashboard dev server
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(users, shifts, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	tableHandler := handler.NewTableHandler(board)
	orderHandler := handler.NewOrderHandler(orders, hub)
	inventoryHandler := handler.NewInventoryHandler(store)
	rosterHandler := handler.NewRosterHandler(shifts)

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		r.Post("/auth/logout", authHandler.Logout)

		// Read-only views shared by every role
		r.Get("/tables", tableHandler.Status)
		r.Get("/waitlist", tableHandler.Waitlist)
		r.Get("/menu", inventoryHandler.Menu)

		// Front-of-house actions
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.RoleStaff))
			r.Post("/tables/reserve", tableHandler.Reserve)
			r.Post("/tables/clear", tableHandler.ClearAll)
			r.Post("/tables/{id}/clear", tableHandler.ClearOne)
			r.Post("/waitlist/remove", tableHandler.RemoveWaiting)
			r.Post("/orders", orderHandler.Place)
			r.Post("/orders/{table}/{idx}/deliver", orderHandler.MarkDelivered)
			r.Get("/orders/ready", orderHandler.Ready)
		})

		// Kitchen actions
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.RoleCook))
			r.Post("/orders/{table}/{idx}/ready", orderHandler.MarkReady)
			r.Get("/orders/pending", orderHandler.Pending)
		})

		// Manager actions
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.RoleManager))
			r.Get("/orders", orderHandler.All)
			r.Put("/inventory", inventoryHandler.Update)
			r.Get("/roster/{role}", rosterHandler.Active)
		})
	})

	log.Println("Router initialized with all handlers")
	return r
}
