package services

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"outlay/internal/core"
)

// ErrStale marks a month fetch that was superseded by a newer one before it
// finished. Callers drop the result instead of rendering it.
var ErrStale = errors.New("month load superseded")

type monthLister interface {
	ListMonth(ctx context.Context, year int, month time.Month) ([]core.Expense, error)
}

// MonthLoader serializes month fetches from a navigation UI. Every Load
// takes a fresh generation token; when a slow fetch comes back after a
// newer one started, it returns ErrStale so only the latest month wins.
type MonthLoader struct {
	lister monthLister
	gen    atomic.Uint64
}

func NewMonthLoader(lister monthLister) *MonthLoader {
	return &MonthLoader{lister: lister}
}

// Load fetches the expenses for a month. If another Load starts before this
// one returns, the result is discarded and ErrStale is returned.
func (l *MonthLoader) Load(ctx context.Context, year int, month time.Month) ([]core.Expense, error) {
	gen := l.gen.Add(1)

	expenses, err := l.lister.ListMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}
	if l.gen.Load() != gen {
		return nil, ErrStale
	}
	return expenses, nil
}
