package repository

import (
	"errors"
	"sync"

	"stockflow-api/internal/model"
)

// ErrRecordNotFound is returned by lookups that match nothing.
var ErrRecordNotFound = errors.New("record not found")

// Dataset is the whole in-memory state of the workspace. Slices that are
// shown newest-first (transactions, logs) are kept in that order.
type Dataset struct {
	Products      []model.Product
	Transactions  []model.Transaction
	Logs          []model.LogEntry
	Users         []model.User
	RoleTemplates []model.RoleTemplate
	Designations  []string
}

// Clone returns a deep enough copy: every slice is reallocated and elements
// are plain values.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return &Dataset{}
	}
	return &Dataset{
		Products:      append([]model.Product(nil), d.Products...),
		Transactions:  append([]model.Transaction(nil), d.Transactions...),
		Logs:          append([]model.LogEntry(nil), d.Logs...),
		Users:         append([]model.User(nil), d.Users...),
		RoleTemplates: append([]model.RoleTemplate(nil), d.RoleTemplates...),
		Designations:  append([]string(nil), d.Designations...),
	}
}

// MemDB is the single-writer state container. Every mutation runs through
// Transaction, which works on a copy and swaps it in only on success.
type MemDB struct {
	mu   sync.RWMutex
	data *Dataset
}

// NewMemDB creates a container seeded with the given dataset.
func NewMemDB(seed *Dataset) *MemDB {
	return &MemDB{data: seed.Clone()}
}

// Transaction runs fn against a working copy of the dataset. The copy is
// committed when fn returns nil and discarded otherwise.
func (db *MemDB) Transaction(fn func(tx *Dataset) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	working := db.data.Clone()
	if err := fn(working); err != nil {
		return err
	}
	db.data = working
	return nil
}

// View runs fn with read access to the committed dataset. fn must not retain
// or modify the slices it sees.
func (db *MemDB) View(fn func(d *Dataset)) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	fn(db.data)
}

// Snapshot returns a copy of the committed dataset.
func (db *MemDB) Snapshot() *Dataset {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.data.Clone()
}
