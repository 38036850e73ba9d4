package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"github.com/smartserve-pos/api/internal/inventory"
	"github.com/smartserve-pos/api/internal/roster"
)

func main() {
	inventoryPath := flag.String("inventory", "inventory.json", "Path to write the starter catalog")
	usersPath := flag.String("users", "users.json", "Path to write the starter rosters")
	force := flag.Bool("force", false, "Overwrite existing files")
	flag.Parse()

	if err := seedInventory(*inventoryPath, *force); err != nil {
		log.Fatalf("Failed to seed inventory: %v", err)
	}
	if err := seedUsers(*usersPath, *force); err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}
	log.Println("Seed complete")
}

func seedInventory(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			log.Printf("%s already exists, skipping (use -force to overwrite)", path)
			return nil
		}
	}

	catalog := inventory.Catalog{
		"Burger": {Name: "Burger", Price: decimal.RequireFromString("8.00"), Stock: 20},
		"Pizza":  {Name: "Pizza", Price: decimal.RequireFromString("12.50"), Stock: 15},
		"Salad":  {Name: "Salad", Price: decimal.RequireFromString("6.25"), Stock: 25},
		"Pasta":  {Name: "Pasta", Price: decimal.RequireFromString("10.00"), Stock: 18},
		"Coffee": {Name: "Coffee", Price: decimal.RequireFromString("2.50"), Stock: 60},
	}

	if err := inventory.NewStore(path).Save(catalog); err != nil {
		return err
	}
	log.Printf("Wrote %d items to %s", len(catalog), path)
	return nil
}

func seedUsers(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			log.Printf("%s already exists, skipping (use -force to overwrite)", path)
			return nil
		}
	}

	users := roster.Roster{
		Staff:    []string{"Alice", "Bob"},
		Cooks:    []string{"Carl", "Dana"},
		Managers: []string{"Erin"},
	}

	b, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return err
	}
	log.Printf("Wrote rosters to %s", path)
	return nil
}
