package core

import (
	"errors"
	"strings"
	"time"
)

// Expense is a single dated, categorized monetary outflow. ID and CreatedAt
// are assigned by the store on creation and never change afterwards.
type Expense struct {
	ID          string    `json:"id"`
	Amount      Money     `json:"amount"`
	Category    Category  `json:"category"`
	Description string    `json:"description"`
	Date        Date      `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

var (
	ErrMissingCategory    = errors.New("missing category")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
)

// Validate checks the client-settable fields. It runs at the mutation
// boundary, before any store call.
func (e Expense) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(string(e.Category)) == "" {
		return ErrMissingCategory
	}
	if len(e.Description) > 200 {
		return ErrDescriptionTooLong
	}
	return e.Date.Validate()
}

// Equal reports field equality ignoring the store-assigned ID and
// CreatedAt, which is the notion of equality a create/read round trip
// preserves.
func (e Expense) Equal(other Expense) bool {
	return e.Amount == other.Amount &&
		e.Category == other.Category &&
		e.Description == other.Description &&
		e.Date.Equal(other.Date)
}
