// Package services orchestrates the expense store, validation and the
// event pipeline behind the HTTP handlers.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"outlay/internal/amqp"
	"outlay/internal/core"
	"outlay/internal/store"
)

// EventPublisher publishes expense change events for the export worker.
// *amqp.Client implements it; tests substitute fakes.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, id, action string) error
	Close() error
}

// ExpenseService is the mutation boundary: validation happens here, before
// any store call, and change events are published after successful writes.
// The store is injected so nothing in the process holds global state.
type ExpenseService struct {
	store  store.ExpenseStore
	events EventPublisher
}

func NewExpenseService(st store.ExpenseStore, events EventPublisher) *ExpenseService {
	return &ExpenseService{store: st, events: events}
}

// Create validates and persists a new expense. The returned record carries
// the store-assigned ID and CreatedAt.
func (s *ExpenseService) Create(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	created, err := s.store.Create(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}
	s.publish(ctx, created.ID, amqp.ActionCreated)
	return created, nil
}

// Update validates and fully replaces the client-settable fields of the
// expense matching e.ID. store.ErrNotFound propagates for unknown ids.
func (s *ExpenseService) Update(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	updated, err := s.store.Update(ctx, e)
	if err != nil {
		return core.Expense{}, err
	}
	s.publish(ctx, updated.ID, amqp.ActionUpdated)
	return updated, nil
}

// Delete removes the expense with the given id; unknown ids are a no-op.
func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, id, amqp.ActionDeleted)
	return nil
}

func (s *ExpenseService) Get(ctx context.Context, id string) (core.Expense, error) {
	return s.store.Get(ctx, id)
}

func (s *ExpenseService) ListMonth(ctx context.Context, year int, month time.Month) ([]core.Expense, error) {
	return s.store.ListMonth(ctx, year, month)
}

// publish is best-effort: the write already succeeded, so a publish failure
// is logged and never fails the request.
func (s *ExpenseService) publish(ctx context.Context, id, action string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishExpenseEvent(ctx, id, action); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"id", id, "action", action, "error", err)
	}
}

// Close closes the store and the event publisher.
func (s *ExpenseService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	if s.events != nil {
		if err := s.events.Close(); err != nil {
			errs = append(errs, fmt.Errorf("events: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close expense service: %v", errs)
	}
	return nil
}
