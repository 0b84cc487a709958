package realtime

import (
	"encoding/json"
	"fmt"
)

// Message is the frame written to subscribers.
type Message struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// EncodeMessage renders the wire frame for one event.
func EncodeMessage(event string, payload json.RawMessage) ([]byte, error) {
	if event == "" {
		return nil, fmt.Errorf("encode message: event is empty")
	}
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}

	b, err := json.Marshal(Message{Event: event, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("encode message %s: %w", event, err)
	}
	return b, nil
}
