package ledger

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartserve-pos/api/internal/enum"
)

// ErrInvalidReference means the table has no order at the given index.
var ErrInvalidReference = errors.New("no such order")

// StockReserver checks and decrements inventory for an order.
// Satisfied by *inventory.Store; narrow interface for testability.
type StockReserver interface {
	ReserveStock(item string, qty int) (decimal.Decimal, error)
}

// Order is one placed request for a quantity of a single menu item. Orders
// accumulate per table for the process lifetime and are never deleted, so
// the position in a table's list is a stable reference. The uuid exists for
// event payloads only.
type Order struct {
	ID       uuid.UUID
	TableID  string
	Items    []string
	Total    decimal.Decimal
	PlacedAt time.Time
	Status   string
}

// Entry is an order with its positional reference, for listings.
type Entry struct {
	TableID string
	Index   int
	Order   Order
}

// Ledger owns the per-table order queues.
type Ledger struct {
	mu     sync.Mutex
	stock  StockReserver
	orders map[string][]*Order
}

// New creates a Ledger that reserves stock through the given reserver.
func New(stock StockReserver) *Ledger {
	return &Ledger{stock: stock, orders: make(map[string][]*Order)}
}

// Place reserves qty units of item and appends a new PENDING order to the
// table's queue, returning the order and its position in that queue. Every
// call creates a fresh order, even for a table/item pair that already has
// one pending. Stock errors pass through untouched and nothing is recorded.
//
// The table id is not checked against the hall board; an order can target
// any table string, exactly as placed.
func (l *Ledger) Place(tableID, item string, qty int) (*Order, int, error) {
	unitPrice, err := l.stock.ReserveStock(item, qty)
	if err != nil {
		return nil, 0, err
	}

	order := &Order{
		ID:       uuid.New(),
		TableID:  tableID,
		Items:    []string{fmt.Sprintf("%s x%d", item, qty)},
		Total:    unitPrice.Mul(decimal.NewFromInt(int64(qty))),
		PlacedAt: time.Now(),
		Status:   enum.OrderStatusPending,
	}

	l.mu.Lock()
	l.orders[tableID] = append(l.orders[tableID], order)
	index := len(l.orders[tableID]) - 1
	l.mu.Unlock()
	return order, index, nil
}

// MarkReady moves the order at (tableID, index) from PENDING to READY. An
// order already past PENDING is left as it is; the state machine never moves
// backwards.
func (l *Ledger) MarkReady(tableID string, index int) (*Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	order, err := l.at(tableID, index)
	if err != nil {
		return nil, err
	}
	if order.Status == enum.OrderStatusPending {
		order.Status = enum.OrderStatusReady
	}
	return order, nil
}

// MarkDelivered moves the order at (tableID, index) to DELIVERED. A still
// PENDING order may be delivered directly, skipping READY.
func (l *Ledger) MarkDelivered(tableID string, index int) (*Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	order, err := l.at(tableID, index)
	if err != nil {
		return nil, err
	}
	order.Status = enum.OrderStatusDelivered
	return order, nil
}

func (l *Ledger) at(tableID string, index int) (*Order, error) {
	list, ok := l.orders[tableID]
	if !ok || index < 0 || index >= len(list) {
		return nil, fmt.Errorf("%w: table %s index %d", ErrInvalidReference, tableID, index)
	}
	return list[index], nil
}

// Pending returns every PENDING order, for the kitchen view.
func (l *Ledger) Pending() []Entry {
	return l.filtered(func(o *Order) bool { return o.Status == enum.OrderStatusPending })
}

// ReadyUndelivered returns every READY order, for the delivery view.
func (l *Ledger) ReadyUndelivered() []Entry {
	return l.filtered(func(o *Order) bool { return o.Status == enum.OrderStatusReady })
}

// All returns every order regardless of state, for the manager view.
func (l *Ledger) All() []Entry {
	return l.filtered(func(*Order) bool { return true })
}

// filtered walks tables in sorted id order so listings are stable across
// calls.
func (l *Ledger) filtered(keep func(*Order) bool) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	tableIDs := make([]string, 0, len(l.orders))
	for id := range l.orders {
		tableIDs = append(tableIDs, id)
	}
	sort.Strings(tableIDs)

	var out []Entry
	for _, id := range tableIDs {
		for i, order := range l.orders[id] {
			if keep(order) {
				out = append(out, Entry{TableID: id, Index: i, Order: *order})
			}
		}
	}
	return out
}
