// Package memory holds an in-process expense store used as the zero-config
// default backend and as the test double for the service and HTTP layers.
package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"outlay/internal/calendar"
	"outlay/internal/core"
	"outlay/internal/store"
)

type Store struct {
	mu     sync.Mutex
	items  []core.Expense
	nextID int64
}

var _ store.ExpenseStore = (*Store)(nil)

func New() *Store {
	return &Store{nextID: 1}
}

func (s *Store) Create(_ context.Context, e core.Expense) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = strconv.FormatInt(s.nextID, 10)
	e.CreatedAt = time.Now().UTC()
	s.nextID++
	s.items = append(s.items, e)
	return e, nil
}

func (s *Store) ListMonth(_ context.Context, year int, month time.Month) ([]core.Expense, error) {
	start, end := calendar.MonthRange(year, month)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Expense
	for _, e := range s.items {
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		out = append(out, e)
	}
	// Date descending; insertion order within a date.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (s *Store) Get(_ context.Context, id string) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.items {
		if e.ID == id {
			return e, nil
		}
	}
	return core.Expense{}, store.ErrNotFound
}

func (s *Store) Update(_ context.Context, e core.Expense) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, old := range s.items {
		if old.ID == e.ID {
			e.CreatedAt = old.CreatedAt
			s.items[i] = e
			return e, nil
		}
	}
	return core.Expense{}, store.ErrNotFound
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.items {
		if e.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	// Idempotent: unknown ids are already gone.
	return nil
}

func (s *Store) Close() error {
	return nil
}
