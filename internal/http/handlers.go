package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"outlay/internal/calendar"
	"outlay/internal/core"
	"outlay/internal/store"
)

// expensePayload is the client-settable part of an expense.
type expensePayload struct {
	Amount      core.Money `json:"amount"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Date        core.Date  `json:"date"`
}

func (p expensePayload) toExpense() core.Expense {
	return core.Expense{
		Amount:      p.Amount,
		Category:    core.ParseCategory(sanitizeInput(p.Category)),
		Description: sanitizeInput(p.Description),
		Date:        p.Date,
	}
}

func decodeExpense(r *http.Request) (core.Expense, error) {
	var payload expensePayload
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return core.Expense{}, err
	}
	return payload.toExpense(), nil
}

type monthExpensesResponse struct {
	Year     int            `json:"year"`
	Month    int            `json:"month"`
	Expenses []core.Expense `json:"expenses"`
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := s.listMonth(r.Context(), year, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "List expenses error", "error", err, "year", year, "month", int(month))
		writeError(w, http.StatusInternalServerError, "failed to list expenses")
		return
	}
	if items == nil {
		items = []core.Expense{}
	}

	writeJSON(w, http.StatusOK, monthExpensesResponse{
		Year:     year,
		Month:    int(month),
		Expenses: items,
	})
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := decodeExpense(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	created, err := s.service.Create(r.Context(), expense)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Create expense error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save expense")
		return
	}

	s.invalidateMonth(created.Date.Year(), created.Date.Month())
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := decodeExpense(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	expense.ID = r.PathValue("id")

	updated, err := s.service.Update(r.Context(), expense)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "expense not found")
		case isValidationError(err):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			slog.ErrorContext(r.Context(), "Update expense error", "error", err, "id", expense.ID)
			writeError(w, http.StatusInternalServerError, "failed to update expense")
		}
		return
	}

	// The date may have moved the expense to another month, and the old
	// month is not known here.
	s.invalidateAll()
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.service.Delete(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Delete expense error", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to delete expense")
		return
	}

	s.invalidateAll()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := s.monthSummary(r.Context(), year, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Month summary error", "error", err, "year", year, "month", int(month))
		writeError(w, http.StatusInternalServerError, "failed to compute summary")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

type monthRef struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type calendarResponse struct {
	Year             int            `json:"year"`
	Month            int            `json:"month"`
	Label            calendar.Label `json:"label"`
	Start            core.Date      `json:"start"`
	End              core.Date      `json:"end"`
	Previous         monthRef       `json:"previous"`
	Next             monthRef       `json:"next"`
	DefaultEntryDate core.Date      `json:"default_entry_date"`
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	start, end := calendar.MonthRange(year, month)
	prevYear, prevMonth := calendar.Previous(year, month)
	nextYear, nextMonth := calendar.Next(year, month)

	writeJSON(w, http.StatusOK, calendarResponse{
		Year:             year,
		Month:            int(month),
		Label:            calendar.MonthLabel(year, month),
		Start:            start,
		End:              end,
		Previous:         monthRef{Year: prevYear, Month: int(prevMonth)},
		Next:             monthRef{Year: nextYear, Month: int(nextMonth)},
		DefaultEntryDate: calendar.DefaultEntryDate(year, month),
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]core.Category{
		"categories": core.Categories(),
	})
}

func isValidationError(err error) bool {
	return errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrMissingCategory) ||
		errors.Is(err, core.ErrDescriptionTooLong) ||
		errors.Is(err, core.ErrInvalidDate)
}
