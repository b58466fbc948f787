// Package events is the notification sink: handlers publish result
// envelopes, the SSE endpoint fans them out to connected shells. No core
// logic depends on anything coming back.
package events

import (
	"encoding/json"
	"time"
)

// Event types published by the engine.
const (
	TypePing               = "ping"
	TypeApplicationCreated = "application_created"
	TypeApplicationUpdated = "application_updated"
	TypeApplicationDeleted = "application_deleted"
	TypeApplicationMoved   = "application_moved"
	TypeImportFinished     = "import_finished"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
