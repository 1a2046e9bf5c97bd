package sse

import (
	"errors"
	"io"
	"net/http"
)

// ErrClosed is returned by writes after the terminal record.
var ErrClosed = errors.New("sse: stream already terminated")

// SetHeaders declares a non-cached, kept-alive event stream. CORS is open
// because the stream is consumed directly by browsers on other origins.
func SetHeaders(h http.Header) {
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "POST")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
}

// Relay writes generation events to one response body. It guarantees a
// single terminal record and refuses writes after it. A Relay belongs to
// one request goroutine.
type Relay struct {
	w       io.Writer
	flusher http.Flusher
	closed  bool
}

// NewRelay wraps w; if w is an http.Flusher each record is flushed.
func NewRelay(w io.Writer) *Relay {
	r := &Relay{w: w}
	if f, ok := w.(http.Flusher); ok {
		r.flusher = f
	}
	return r
}

// Chunk emits one fragment. It matches provider.ChunkFunc.
func (r *Relay) Chunk(fragment string) error {
	return r.emit(ChunkEvent(fragment))
}

// End emits the success terminal record.
func (r *Relay) End() error {
	return r.emit(EndEvent())
}

// Fail emits the failure terminal record carrying msg.
func (r *Relay) Fail(msg string) error {
	return r.emit(ErrorEvent(msg))
}

// Finish closes the stream according to err: End on nil, Fail otherwise.
func (r *Relay) Finish(err error) error {
	if err != nil {
		return r.Fail(err.Error())
	}
	return r.End()
}

// Closed reports whether a terminal record was written.
func (r *Relay) Closed() bool {
	return r.closed
}

func (r *Relay) emit(e Event) error {
	if r.closed {
		return ErrClosed
	}
	if e.Terminal() {
		r.closed = true
	}

	record, err := e.Encode()
	if err != nil {
		return err
	}
	if _, err := r.w.Write(record); err != nil {
		return err
	}
	if r.flusher != nil {
		r.flusher.Flush()
	}
	return nil
}
