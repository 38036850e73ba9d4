package hall

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Errors returned by the table board.
var (
	ErrInvalidTable = errors.New("invalid table number")
	ErrNotFound     = errors.New("name not on waiting list")
)

// Occupant is an active reservation on a table.
type Occupant struct {
	CustomerName string
	PartySize    int
	SeatedAt     time.Time
}

// Table is one fixed seating unit. Occupant is nil while vacant.
type Table struct {
	ID       string
	Occupant *Occupant
}

// WaitingEntry is one customer queued for a table.
type WaitingEntry struct {
	CustomerName string
	JoinedAt     time.Time
}

// Board owns the fixed set of tables and the FIFO waiting list. Tables are
// created once and never destroyed; only their occupant changes.
type Board struct {
	mu       sync.Mutex
	tables   []Table
	waitlist []WaitingEntry
}

// NewBoard creates a board with tables "1" through strconv.Itoa(count).
func NewBoard(count int) *Board {
	tables := make([]Table, count)
	for i := range tables {
		tables[i].ID = strconv.Itoa(i + 1)
	}
	return &Board{tables: tables}
}

// Reserve seats the customer at the first vacant table in ascending id
// order. When every table is occupied the customer is appended to the
// waiting list instead and waitlisted is true.
func (b *Board) Reserve(customerName string, partySize int) (tableID string, waitlisted bool) {
	name := NormalizeName(customerName)

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.tables {
		if b.tables[i].Occupant == nil {
			b.tables[i].Occupant = &Occupant{
				CustomerName: name,
				PartySize:    partySize,
				SeatedAt:     time.Now(),
			}
			return b.tables[i].ID, false
		}
	}

	b.waitlist = append(b.waitlist, WaitingEntry{CustomerName: name, JoinedAt: time.Now()})
	return "", true
}

// ClearAll vacates every table. The waiting list is left alone; freed tables
// are never handed to waiting customers automatically.
func (b *Board) ClearAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.tables {
		b.tables[i].Occupant = nil
	}
}

// ClearOne vacates a single table.
func (b *Board) ClearOne(tableID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.tables {
		if b.tables[i].ID == tableID {
			b.tables[i].Occupant = nil
			return nil
		}
	}
	return ErrInvalidTable
}

// RemoveFromWaitlist removes the first entry matching the normalized name.
func (b *Board) RemoveFromWaitlist(customerName string) error {
	name := NormalizeName(customerName)

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, entry := range b.waitlist {
		if entry.CustomerName == name {
			b.waitlist = append(b.waitlist[:i], b.waitlist[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Status returns a snapshot of every table in id order.
func (b *Board) Status() []Table {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Table, len(b.tables))
	for i, t := range b.tables {
		out[i] = t
		if t.Occupant != nil {
			occ := *t.Occupant
			out[i].Occupant = &occ
		}
	}
	return out
}

// Waitlist returns a snapshot of the waiting list in arrival order.
func (b *Board) Waitlist() []WaitingEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]WaitingEntry, len(b.waitlist))
	copy(out, b.waitlist)
	return out
}

// NormalizeName trims and title-cases a customer name so that storage and
// waitlist lookups agree on one spelling.
func NormalizeName(name string) string {
	return cases.Title(language.English).String(strings.ToLower(strings.TrimSpace(name)))
}
