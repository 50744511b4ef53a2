package mail

import "context"

// Message is one outbound email
type Message struct {
	From     string   `json:"from"`
	To       []string `json:"to"`
	CC       []string `json:"cc,omitempty"`
	Subject  string   `json:"subject"`
	Body     string   `json:"body"`
	HTML     bool     `json:"html"`
	Priority string   `json:"priority,omitempty"`
}

// Message priorities
const (
	PriorityHigh   = "high"
	PriorityNormal = "normal"
)

// SendResult reports the outcome of one send
type SendResult struct {
	MessageID  string   `json:"message_id,omitempty"`
	Recipients []string `json:"recipients"`
}

// Mailer delivers messages to an outbound transport. Every call must be
// individually fault-isolated by the caller; implementations apply their
// own timeouts and never block indefinitely.
type Mailer interface {
	Send(ctx context.Context, msg *Message) (*SendResult, error)
}
