// Package sse carries generation output over server-sent events: the
// relay writes one record per event, the consumer reads them back.
package sse

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type EventType string

const (
	EventChunk EventType = "chunk"
	EventEnd   EventType = "end"
	EventError EventType = "error"
)

// Event is one relay emission. Only the field matching Type is meaningful.
type Event struct {
	Type  EventType `json:"type"`
	Chunk string    `json:"chunk,omitempty"`
	Error string    `json:"error,omitempty"`
}

func ChunkEvent(fragment string) Event { return Event{Type: EventChunk, Chunk: fragment} }
func EndEvent() Event                  { return Event{Type: EventEnd} }
func ErrorEvent(msg string) Event      { return Event{Type: EventError, Error: msg} }

// Terminal reports whether no event may follow e.
func (e Event) Terminal() bool {
	return e.Type == EventEnd || e.Type == EventError
}

// Encode renders e as a single SSE record:
//
//	data: {"chunk": "...", "type": "chunk"}\n\n
//	data: {"type": "end"}\n\n
//	data: {"type": "error", "error": "..."}\n\n
func (e Event) Encode() ([]byte, error) {
	var payload string
	switch e.Type {
	case EventChunk:
		chunk, err := quote(e.Chunk)
		if err != nil {
			return nil, err
		}
		payload = fmt.Sprintf(`{"chunk": %s, "type": "chunk"}`, chunk)
	case EventEnd:
		payload = `{"type": "end"}`
	case EventError:
		msg, err := quote(e.Error)
		if err != nil {
			return nil, err
		}
		payload = fmt.Sprintf(`{"type": "error", "error": %s}`, msg)
	default:
		return nil, fmt.Errorf("sse: unknown event type %q", e.Type)
	}
	return []byte("data: " + payload + "\n\n"), nil
}

// quote JSON-encodes s without HTML escaping.
func quote(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
