package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"outlay/internal/amqp"
	"outlay/internal/core"
	"outlay/internal/store/memory"
)

type appendedRow struct {
	action  string
	expense core.Expense
}

type fakeAppender struct {
	rows []appendedRow
	err  error
}

func (f *fakeAppender) AppendExpense(ctx context.Context, action string, expense core.Expense) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, appendedRow{action: action, expense: expense})
	return nil
}

func seedExpense(t *testing.T, st *memory.Store) core.Expense {
	t.Helper()

	created, err := st.Create(context.Background(), core.Expense{
		Amount:      core.Money{Cents: 2249},
		Category:    core.CategoryDining,
		Description: "lunch",
		Date:        core.NewDate(2024, time.March, 15),
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return created
}

func TestHandleCreatedExportsStoredExpense(t *testing.T) {
	st := memory.New()
	expense := seedExpense(t, st)
	appender := &fakeAppender{}
	w := NewExportWorker(st, appender)

	msg := &amqp.ExpenseEventMessage{ID: expense.ID, Action: amqp.ActionCreated}
	if err := w.HandleEvent(context.Background(), msg); err != nil {
		t.Fatalf("handle created: %v", err)
	}

	if len(appender.rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(appender.rows))
	}
	row := appender.rows[0]
	if row.action != amqp.ActionCreated || row.expense.ID != expense.ID || row.expense.Amount.Cents != 2249 {
		t.Fatalf("unexpected row: %+v", row)
	}
}

func TestHandleCreatedForVanishedExpense(t *testing.T) {
	appender := &fakeAppender{}
	w := NewExportWorker(memory.New(), appender)

	msg := &amqp.ExpenseEventMessage{ID: "404", Action: amqp.ActionUpdated}
	if err := w.HandleEvent(context.Background(), msg); err != nil {
		t.Fatalf("vanished expense should be skipped, not retried: %v", err)
	}
	if len(appender.rows) != 0 {
		t.Fatalf("no rows expected, got %+v", appender.rows)
	}
}

func TestHandleDeletedExportsTombstone(t *testing.T) {
	appender := &fakeAppender{}
	w := NewExportWorker(memory.New(), appender)

	msg := &amqp.ExpenseEventMessage{ID: "17", Action: amqp.ActionDeleted}
	if err := w.HandleEvent(context.Background(), msg); err != nil {
		t.Fatalf("handle deleted: %v", err)
	}

	if len(appender.rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(appender.rows))
	}
	row := appender.rows[0]
	if row.action != amqp.ActionDeleted || row.expense.ID != "17" {
		t.Fatalf("unexpected tombstone row: %+v", row)
	}
}

func TestHandleEventPropagatesAppendFailure(t *testing.T) {
	st := memory.New()
	expense := seedExpense(t, st)
	appender := &fakeAppender{err: errors.New("quota exceeded")}
	w := NewExportWorker(st, appender)

	msg := &amqp.ExpenseEventMessage{ID: expense.ID, Action: amqp.ActionCreated}
	if err := w.HandleEvent(context.Background(), msg); err == nil {
		t.Fatal("append failure should propagate for requeue")
	}
}

func TestHandleEventRejectsUnknownAction(t *testing.T) {
	w := NewExportWorker(memory.New(), &fakeAppender{})

	msg := &amqp.ExpenseEventMessage{ID: "1", Action: "exploded"}
	if err := w.HandleEvent(context.Background(), msg); err == nil {
		t.Fatal("unknown action should be an error")
	}
}
