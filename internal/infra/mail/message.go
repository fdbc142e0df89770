package mail

import "context"

type Recipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type Attachment struct {
	Name    string
	Content []byte
}

// Message is built per send and never persisted.
type Message struct {
	To          []Recipient
	Subject     string
	HTML        string
	ReplyTo     *Recipient
	Attachments []Attachment
}

// Sender dispatches one message through a transactional provider.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
