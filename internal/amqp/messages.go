package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Actions carried by expense event messages.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ExpenseEventMessage tells the export worker that an expense changed.
// It carries only the id and action; the worker fetches the full record
// from the store.
type ExpenseEventMessage struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

func NewExpenseEventMessage(id, action string) *ExpenseEventMessage {
	return &ExpenseEventMessage{
		ID:        id,
		Action:    action,
		Timestamp: time.Now(),
	}
}

func (m *ExpenseEventMessage) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("expense event without id")
	}
	switch m.Action {
	case ActionCreated, ActionUpdated, ActionDeleted:
		return nil
	default:
		return fmt.Errorf("unknown expense event action %q", m.Action)
	}
}

func (m *ExpenseEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ExpenseEventMessageFromJSON(data []byte) (*ExpenseEventMessage, error) {
	var msg ExpenseEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}
