package llm

import (
	"encoding/json"
	"fmt"
)

// Message is one entry in the conversation sent upstream.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Payload is the outbound OpenRouter chat-completion request body. Models
// lists the primary model followed by the automatic fallback.
type Payload struct {
	Model       string    `json:"model"`
	Models      []string  `json:"models"`
	Messages    []Message `json:"messages"`
	MaxTokens   int64     `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Stream      bool      `json:"stream"`
}

// Completion is the result of a buffered chat-completion call.
type Completion struct {
	Content string
	Model   string
}

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("OpenRouter API error (%d): %s", e.Code, e.Body)
}

// Event is one element of the normalized outbound stream: a content delta,
// an error notice, or the terminal marker. Exactly one field is set.
type Event struct {
	Content string
	Err     string
	Done    bool
}

// Frame renders the event in text/event-stream framing.
func (e Event) Frame() string {
	if e.Done {
		return "data: [DONE]\n\n"
	}
	var body []byte
	if e.Err != "" {
		body, _ = json.Marshal(map[string]string{"error": e.Err})
	} else {
		body, _ = json.Marshal(map[string]string{"content": e.Content})
	}
	return fmt.Sprintf("data: %s\n\n", body)
}
