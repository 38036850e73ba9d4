package main

import (
	"log"
	"net/http"

	"github.com/smartserve-pos/api/internal/config"
	"github.com/smartserve-pos/api/internal/hall"
	"github.com/smartserve-pos/api/internal/inventory"
	"github.com/smartserve-pos/api/internal/ledger"
	"github.com/smartserve-pos/api/internal/roster"
	"github.com/smartserve-pos/api/internal/router"
	"github.com/smartserve-pos/api/internal/shift"
	"github.com/smartserve-pos/api/internal/ws"
)

func main() {
	cfg := config.Load()

	users, err := roster.LoadFile(cfg.UsersPath)
	if err != nil {
		log.Fatalf("load users: %v", err)
	}

	store := inventory.NewStore(cfg.InventoryPath)
	// There is no valid empty-catalog fallback; a broken inventory file
	// halts startup.
	if _, err := store.Load(); err != nil {
		log.Fatalf("load inventory: %v", err)
	}

	board := hall.NewBoard(cfg.TableCount)
	orders := ledger.New(store)
	shifts := shift.NewRegistry()

	hub := ws.NewHub()
	go hub.Run()

	r := router.New(cfg, store, board, orders, shifts, users, hub)

	log.Printf("Starting server on :%s (%d tables)", cfg.Port, cfg.TableCount)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
