package llm

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/Tom1779/NASAHackathon2025/internal/metrics"
)

const (
	dataPrefix   = "data:"
	doneSentinel = "data: [DONE]"
)

// Reassembler converts arbitrarily chunked upstream bytes back into complete
// SSE data records and extracts the content delta from each one. Fragments
// may split a record anywhere, including mid-JSON; the trailing portion with
// no terminating newline is carried over to the next Feed call. Memory is
// bounded by the longest single upstream line.
//
// One Reassembler serves exactly one streaming call and is not safe for
// concurrent use.
type Reassembler struct {
	carry string
	done  bool
}

func NewReassembler() *Reassembler {
	return &Reassembler{}
}

// Feed appends one raw fragment and returns the events completed by it, in
// arrival order. After the terminal sentinel has been seen, Feed returns nil
// for any further input.
func (r *Reassembler) Feed(fragment []byte) []Event {
	if r.done {
		return nil
	}

	lines := strings.Split(r.carry+string(fragment), "\n")
	r.carry = lines[len(lines)-1]

	var events []Event
	for _, line := range lines[:len(lines)-1] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if trimmed == doneSentinel {
			r.done = true
			r.carry = ""
			return append(events, Event{Done: true})
		}
		if !strings.HasPrefix(line, dataPrefix) {
			// Other SSE fields (event:, id:) carry no content.
			continue
		}

		raw := strings.TrimSpace(line[len(dataPrefix):])
		if raw == "" {
			continue
		}

		var chunk chunkRecord
		if err := json.Unmarshal([]byte(raw), &chunk); err != nil {
			slog.Warn("dropping malformed stream record", "line", line, "error", err)
			metrics.StreamRecordsDropped.Inc()
			continue
		}
		if content := chunk.content(); content != "" {
			events = append(events, Event{Content: content})
		}
	}
	return events
}

// Finish returns the terminal event for streams that end without an explicit
// sentinel. It returns nil when the sentinel was already seen, so every call
// terminates with exactly one terminal event.
func (r *Reassembler) Finish() []Event {
	if r.done {
		return nil
	}
	r.done = true
	return []Event{{Done: true}}
}

// Done reports whether the terminal event has been emitted.
func (r *Reassembler) Done() bool {
	return r.done
}

// chunkRecord mirrors the subset of the upstream streaming record we read:
// choices[0].delta.content.
type chunkRecord struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

func (c chunkRecord) content() string {
	if len(c.Choices) == 0 {
		return ""
	}
	return c.Choices[0].Delta.Content
}
