// Package store defines the port every expense backend implements and the
// errors it surfaces.
package store

import (
	"context"
	"errors"
	"time"

	"outlay/internal/core"
)

// ErrNotFound is returned by Get and Update when no expense matches the id.
// Delete deliberately does not return it: deleting a missing id is a no-op.
var ErrNotFound = errors.New("expense not found")

// ExpenseStore is the single source of truth for persisted expenses. Every
// other component works on transient copies.
type ExpenseStore interface {
	// Create persists a new expense, assigning ID and CreatedAt.
	Create(ctx context.Context, e core.Expense) (core.Expense, error)

	// ListMonth returns the expenses whose date falls inside the calendar
	// month, inclusive on both ends, ordered by date descending.
	ListMonth(ctx context.Context, year int, month time.Month) ([]core.Expense, error)

	// Get returns the expense with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (core.Expense, error)

	// Update replaces amount, category, description and date of the expense
	// matching e.ID, leaving ID and CreatedAt untouched. Returns the record
	// as persisted, or ErrNotFound.
	Update(ctx context.Context, e core.Expense) (core.Expense, error)

	// Delete removes the expense with the given id. Unknown ids succeed.
	Delete(ctx context.Context, id string) error

	Close() error
}
