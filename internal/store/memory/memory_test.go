package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"outlay/internal/core"
	"outlay/internal/store"
)

func TestCreateAssignsIDAndCreatedAt(t *testing.T) {
	s := New()
	e, err := s.Create(context.Background(), core.Expense{
		Amount:   core.Money{Cents: 1250},
		Category: core.CategoryDining,
		Date:     core.NewDate(2024, time.March, 1),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.ID == "" || e.CreatedAt.IsZero() {
		t.Fatalf("expected store-assigned id and created_at, got %+v", e)
	}
}

func TestCreateThenListMonthRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()
	want := core.Expense{
		Amount:      core.Money{Cents: 999},
		Category:    core.CategoryGroceries,
		Description: "weekly shop",
		Date:        core.NewDate(2024, time.February, 29),
	}
	if _, err := s.Create(ctx, want); err != nil {
		t.Fatalf("create: %v", err)
	}
	// Outside the month.
	if _, err := s.Create(ctx, core.Expense{
		Amount:   core.Money{Cents: 100},
		Category: core.CategoryOther,
		Date:     core.NewDate(2024, time.March, 1),
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.ListMonth(ctx, 2024, time.February)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 expense, got %d", len(got))
	}
	if !got[0].Equal(want) {
		t.Fatalf("round trip mismatch: %+v", got[0])
	}
}

func TestListMonthOrder(t *testing.T) {
	s := New()
	ctx := context.Background()
	days := []int{3, 15, 3, 28}
	for i, d := range days {
		if _, err := s.Create(ctx, core.Expense{
			Amount:      core.Money{Cents: int64(100 + i)},
			Category:    core.CategoryOther,
			Description: string(rune('a' + i)),
			Date:        core.NewDate(2024, time.March, d),
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	got, err := s.ListMonth(ctx, 2024, time.March)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var order []int
	for _, e := range got {
		order = append(order, e.Date.Day())
	}
	wantOrder := []int{28, 15, 3, 3}
	for i := range wantOrder {
		if order[i] != wantOrder[i] {
			t.Fatalf("order = %v, want %v", order, wantOrder)
		}
	}
	// Insertion order within the same day.
	if got[2].Description != "a" || got[3].Description != "c" {
		t.Fatalf("same-day order not preserved: %q, %q", got[2].Description, got[3].Description)
	}
}

func TestUpdate(t *testing.T) {
	s := New()
	ctx := context.Background()
	e, _ := s.Create(ctx, core.Expense{
		Amount:   core.Money{Cents: 500},
		Category: core.CategoryDining,
		Date:     core.NewDate(2024, time.March, 1),
	})

	e.Amount = core.Money{Cents: 700}
	e.Category = core.CategoryShopping
	updated, err := s.Update(ctx, e)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Amount.Cents != 700 || updated.Category != core.CategoryShopping {
		t.Fatalf("update not applied: %+v", updated)
	}
	if !updated.CreatedAt.Equal(e.CreatedAt) {
		t.Fatalf("created_at must be immutable")
	}

	_, err = s.Update(ctx, core.Expense{ID: "does-not-exist", Amount: core.Money{Cents: 1}})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("update missing: got %v, want ErrNotFound", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := New()
	ctx := context.Background()
	e, _ := s.Create(ctx, core.Expense{
		Amount:   core.Money{Cents: 500},
		Category: core.CategoryDining,
		Date:     core.NewDate(2024, time.March, 1),
	})

	if err := s.Delete(ctx, e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, e.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("get after delete: got %v", err)
	}
	// Deleting again, or deleting an unknown id, succeeds.
	if err := s.Delete(ctx, e.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if err := s.Delete(ctx, "never-existed"); err != nil {
		t.Fatalf("delete unknown: %v", err)
	}
}
