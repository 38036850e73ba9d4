package inventory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"
)

// Errors returned by the inventory store.
var (
	ErrStorage     = errors.New("catalog storage")
	ErrUnknownItem = errors.New("unknown menu item")
	ErrOutOfStock  = errors.New("insufficient stock")
)

// MenuItem is one catalog entry. Items are never deleted; only price and
// stock change.
type MenuItem struct {
	Name  string
	Price decimal.Decimal
	Stock int
}

// Catalog maps item name to its current price and stock.
type Catalog map[string]MenuItem

// Names returns the item names in sorted order, for stable listings.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// fileItem is the on-disk shape: {"Burger": {"price": "8.00", "stock": 2}}.
type fileItem struct {
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// Store is the file-backed catalog. Every mutation rewrites the whole file;
// the file is the single source of truth and is re-read on every operation.
// The mutex serializes load-check-decrement-save sequences, which would
// otherwise race under concurrent requests.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a Store backed by the JSON file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the full catalog from disk.
func (s *Store) Load() (Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save writes the full catalog to disk, replacing the previous contents.
func (s *Store) Save(c Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(c)
}

// ReserveStock decrements the stock of item by qty and persists the catalog,
// returning the item's unit price for total computation. On ErrOutOfStock or
// ErrUnknownItem nothing is mutated.
func (s *Store) ReserveStock(item string, qty int) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalog, err := s.load()
	if err != nil {
		return decimal.Zero, err
	}

	entry, ok := catalog[item]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownItem, item)
	}
	if entry.Stock < qty {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrOutOfStock, item)
	}

	entry.Stock -= qty
	catalog[item] = entry
	if err := s.save(catalog); err != nil {
		return decimal.Zero, err
	}
	return entry.Price, nil
}

// ApplyBulkUpdate sets new prices and stock levels per item. Each field is
// parsed independently; an unparseable or negative value leaves that field
// unchanged without aborting the rest of the batch. Unknown item names are
// ignored.
func (s *Store) ApplyBulkUpdate(prices, stocks map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalog, err := s.load()
	if err != nil {
		return err
	}

	for name, entry := range catalog {
		if raw, ok := prices[name]; ok {
			if p, err := decimal.NewFromString(raw); err == nil && !p.IsNegative() {
				entry.Price = p
			}
		}
		if raw, ok := stocks[name]; ok {
			if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
				entry.Stock = n
			}
		}
		catalog[name] = entry
	}

	return s.save(catalog)
}

func (s *Store) load() (Catalog, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrStorage, s.path, err)
	}

	var raw map[string]fileItem
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrStorage, s.path, err)
	}

	catalog := make(Catalog, len(raw))
	for name, it := range raw {
		if it.Price.IsNegative() || it.Stock < 0 {
			return nil, fmt.Errorf("%w: item %q has negative price or stock", ErrStorage, name)
		}
		catalog[name] = MenuItem{Name: name, Price: it.Price, Stock: it.Stock}
	}
	return catalog, nil
}

// save writes via a temp file and rename so a crashed write never leaves a
// half-written catalog behind.
func (s *Store) save(c Catalog) error {
	raw := make(map[string]fileItem, len(c))
	for name, it := range c {
		raw[name] = fileItem{Price: it.Price, Stock: it.Stock}
	}

	b, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrStorage, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".inventory-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: write: %v", ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: close: %v", ErrStorage, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: rename: %v", ErrStorage, err)
	}
	return nil
}
