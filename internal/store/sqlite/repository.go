// Package sqlite implements the expense store on an embedded SQLite
// database. It is the default persistent backend.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"outlay/internal/calendar"
	"outlay/internal/core"
	"outlay/internal/store"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

var _ store.ExpenseStore = (*Repository)(nil)

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Repository) Create(ctx context.Context, e core.Expense) (core.Expense, error) {
	createdAt := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (amount_cents, category, description, date, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.Amount.Cents, string(e.Category), e.Description, e.Date.String(),
		createdAt.Format(time.RFC3339Nano))
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Expense{}, fmt.Errorf("last insert id: %w", err)
	}
	e.ID = strconv.FormatInt(id, 10)
	e.CreatedAt = createdAt
	return e, nil
}

func (r *Repository) ListMonth(ctx context.Context, year int, month time.Month) ([]core.Expense, error) {
	start, end := calendar.MonthRange(year, month)
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount_cents, category, description, date, created_at
		 FROM expenses
		 WHERE date >= ? AND date <= ?
		 ORDER BY date DESC, id ASC`,
		start.String(), end.String())
	if err != nil {
		return nil, fmt.Errorf("query month expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate month expenses: %w", err)
	}
	return out, nil
}

func (r *Repository) Get(ctx context.Context, id string) (core.Expense, error) {
	numID, err := parseID(id)
	if err != nil {
		return core.Expense{}, store.ErrNotFound
	}
	row := r.db.QueryRowContext(ctx,
		`SELECT id, amount_cents, category, description, date, created_at
		 FROM expenses WHERE id = ?`, numID)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, store.ErrNotFound
	}
	if err != nil {
		return core.Expense{}, err
	}
	return e, nil
}

func (r *Repository) Update(ctx context.Context, e core.Expense) (core.Expense, error) {
	numID, err := parseID(e.ID)
	if err != nil {
		return core.Expense{}, store.ErrNotFound
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses
		 SET amount_cents = ?, category = ?, description = ?, date = ?
		 WHERE id = ?`,
		e.Amount.Cents, string(e.Category), e.Description, e.Date.String(), numID)
	if err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return core.Expense{}, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return core.Expense{}, store.ErrNotFound
	}
	return r.Get(ctx, e.ID)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	numID, err := parseID(id)
	if err != nil {
		// Malformed ids cannot match a row; deleting them is a no-op.
		return nil
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, numID); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

func parseID(id string) (int64, error) {
	return strconv.ParseInt(id, 10, 64)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var (
		id        int64
		cents     int64
		category  string
		desc      string
		date      string
		createdAt string
	)
	if err := row.Scan(&id, &cents, &category, &desc, &date, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Expense{}, err
		}
		return core.Expense{}, fmt.Errorf("scan expense: %w", err)
	}
	d, err := core.ParseDate(date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse stored date %q: %w", date, err)
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse stored created_at %q: %w", createdAt, err)
	}
	return core.Expense{
		ID:          strconv.FormatInt(id, 10),
		Amount:      core.Money{Cents: cents},
		Category:    core.Category(category),
		Description: desc,
		Date:        d,
		CreatedAt:   ts,
	}, nil
}
