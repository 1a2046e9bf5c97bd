package provider

import (
	"context"
	"strings"
	"time"
)

// SimulateStream replays a complete text as a word-by-word stream for
// providers without native incremental delivery. Every word after the first
// keeps its leading space so the fragments concatenate back to text. The
// delay is applied between words.
func SimulateStream(ctx context.Context, text string, delay time.Duration, onChunk ChunkFunc) (string, error) {
	var full strings.Builder

	words := strings.Split(text, " ")
	for i, word := range words {
		chunk := word
		if i > 0 {
			chunk = " " + word

			if delay > 0 {
				timer := time.NewTimer(delay)
				select {
				case <-ctx.Done():
					timer.Stop()
					return full.String(), ctx.Err()
				case <-timer.C:
				}
			}
		}

		if err := ctx.Err(); err != nil {
			return full.String(), err
		}

		full.WriteString(chunk)
		if err := onChunk(chunk); err != nil {
			return full.String(), err
		}
	}

	return full.String(), nil
}
