package conversion

import (
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type EventType string

const (
	EventType_Click EventType = "click"
	EventType_Lead  EventType = "lead"
	EventType_Sale  EventType = "sale"
)

// Event is the conversion event emitted by the tracking collaborator.
// ExternalID is the idempotency key; Value is the sale value in cents;
// RecurringMonth is set (1-based) on recurring sale renewals.
type Event struct {
	ExternalID     string    `json:"external_id"`
	EnrollmentID   uint64    `json:"enrollment_id"`
	Type           EventType `json:"type"`
	Value          int64     `json:"value"`
	OccurredAt     time.Time `json:"occurred_at"`
	RecurringMonth *int      `json:"recurring_month,omitempty"`
}

// FromBinary loads an event from a byte array
func (event *Event) FromBinary(msg []byte) error {
	return json.Unmarshal(msg, event)
}

// ToBinary converts an event to a byte string
func (event *Event) ToBinary() ([]byte, error) {
	return json.Marshal(event)
}

// Reversal is the dispute/refund hook, keyed by the original event id
type Reversal struct {
	ExternalID string    `json:"external_id"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}

// FromBinary loads a reversal from a byte array
func (r *Reversal) FromBinary(msg []byte) error {
	return json.Unmarshal(msg, r)
}

// ToBinary converts a reversal to a byte string
func (r *Reversal) ToBinary() ([]byte, error) {
	return json.Marshal(r)
}
