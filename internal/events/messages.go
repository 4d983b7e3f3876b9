package events

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"moneta/internal/domain/ledger"
)

// Envelope is the wire form of a ledger mutation event. Consumers fetch the
// full transaction from the database when they need more than the ids.
type Envelope struct {
	EventID string       `json:"eventId"`
	Event   ledger.Event `json:"event"`
}

func encodeEvent(event ledger.Event) ([]byte, error) {
	return json.Marshal(Envelope{
		EventID: uuid.New().String(),
		Event:   event,
	})
}

// DecodeEvent parses an envelope from a consumed message body.
func DecodeEvent(body []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	return &env, nil
}
