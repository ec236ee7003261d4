// Package worker consumes expense change events and exports them to an
// external spreadsheet.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"outlay/internal/amqp"
	"outlay/internal/core"
	"outlay/internal/store"
)

// ExpenseAppender writes one expense change row to the export target.
// *google.Exporter implements it.
type ExpenseAppender interface {
	AppendExpense(ctx context.Context, action string, expense core.Expense) error
}

// ExportWorker resolves expense events against the store and appends the
// result to the export target.
type ExportWorker struct {
	store    store.ExpenseStore
	appender ExpenseAppender
}

func NewExportWorker(st store.ExpenseStore, appender ExpenseAppender) *ExportWorker {
	return &ExportWorker{store: st, appender: appender}
}

// HandleEvent processes a single expense event. Created and updated events
// fetch the current record from the store; deleted events export a tombstone
// row carrying only the id, since the record is already gone.
func (w *ExportWorker) HandleEvent(ctx context.Context, msg *amqp.ExpenseEventMessage) error {
	slog.InfoContext(ctx, "Processing expense event",
		"id", msg.ID,
		"action", msg.Action)

	switch msg.Action {
	case amqp.ActionCreated, amqp.ActionUpdated:
		expense, err := w.store.Get(ctx, msg.ID)
		if errors.Is(err, store.ErrNotFound) {
			// Deleted between the event and now. The delete event will
			// follow; nothing to export here.
			slog.WarnContext(ctx, "Expense vanished before export", "id", msg.ID)
			return nil
		}
		if err != nil {
			return fmt.Errorf("get expense %s: %w", msg.ID, err)
		}
		if err := w.appender.AppendExpense(ctx, msg.Action, expense); err != nil {
			return fmt.Errorf("export expense %s: %w", msg.ID, err)
		}
		return nil

	case amqp.ActionDeleted:
		tombstone := core.Expense{ID: msg.ID}
		if err := w.appender.AppendExpense(ctx, msg.Action, tombstone); err != nil {
			return fmt.Errorf("export deletion of %s: %w", msg.ID, err)
		}
		return nil

	default:
		return fmt.Errorf("unknown expense event action %q", msg.Action)
	}
}
