package sse

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"prompt-lab/internal/logger"
)

const dataPrefix = "data: "

// ErrIncomplete is returned when the body ends before a terminal event.
var ErrIncomplete = errors.New("sse: stream ended without a terminal event")

// StreamError carries the message of an in-band error event.
type StreamError struct {
	Message string
}

func (e *StreamError) Error() string { return e.Message }

// Consumer reads a relay body back into text.
type Consumer struct {
	// OnUpdate receives the accumulated content after every chunk.
	OnUpdate func(content string)

	log *logger.Logger
}

func NewConsumer(log *logger.Logger, onUpdate func(content string)) *Consumer {
	if log == nil {
		log = logger.Nop()
	}
	return &Consumer{OnUpdate: onUpdate, log: log.With("component", "sse.Consumer")}
}

// Consume reads r until a terminal event. It returns the accumulated chunk
// text and nil on end, a *StreamError on an error event, or ErrIncomplete
// if r is exhausted first. Lines that are not valid JSON are skipped.
func (c *Consumer) Consume(r io.Reader) (string, error) {
	var (
		buffer  []byte
		content strings.Builder
	)
	readBuf := make([]byte, 4096)

	for {
		n, readErr := r.Read(readBuf)
		if n > 0 {
			buffer = append(buffer, readBuf[:n]...)

			// 保留最后一行, 可能不完整
			lines := bytes.Split(buffer, []byte("\n"))
			buffer = append([]byte(nil), lines[len(lines)-1]...)

			for _, line := range lines[:len(lines)-1] {
				event, ok := c.parseLine(line)
				if !ok {
					continue
				}

				switch event.Type {
				case EventChunk:
					content.WriteString(event.Chunk)
					if c.OnUpdate != nil {
						c.OnUpdate(content.String())
					}
				case EventEnd:
					return content.String(), nil
				case EventError:
					return content.String(), &StreamError{Message: event.Error}
				}
			}
		}

		if errors.Is(readErr, io.EOF) {
			return content.String(), ErrIncomplete
		}
		if readErr != nil {
			return content.String(), readErr
		}
	}
}

func (c *Consumer) parseLine(raw []byte) (Event, bool) {
	line := strings.TrimSuffix(string(raw), "\r")
	if !strings.HasPrefix(line, dataPrefix) {
		return Event{}, false
	}

	var event Event
	if err := json.Unmarshal([]byte(line[len(dataPrefix):]), &event); err != nil {
		c.log.Warn("Failed to parse SSE data", "line", line, "error", err)
		return Event{}, false
	}
	return event, true
}
