package amqp

import (
	"testing"
	"time"
)

func TestNewExpenseEventMessage(t *testing.T) {
	msg := NewExpenseEventMessage("42", ActionCreated)
	if msg.ID != "42" || msg.Action != ActionCreated {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if msg.Timestamp.IsZero() || time.Since(msg.Timestamp) > time.Second {
		t.Fatalf("timestamp should be recent: %v", msg.Timestamp)
	}
}

func TestExpenseEventMessageRoundTrip(t *testing.T) {
	msg := &ExpenseEventMessage{
		ID:        "17",
		Action:    ActionDeleted,
		Timestamp: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	parsed, err := ExpenseEventMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parsed.ID != msg.ID || parsed.Action != msg.Action || !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Fatalf("round trip mismatch: %+v", parsed)
	}
}

func TestExpenseEventMessageRejectsInvalid(t *testing.T) {
	cases := []string{
		`not json`,
		`{"id":"","action":"created"}`,
		`{"id":"1","action":"exploded"}`,
	}
	for _, body := range cases {
		if _, err := ExpenseEventMessageFromJSON([]byte(body)); err == nil {
			t.Fatalf("expected error for %s", body)
		}
	}
}
