package notify

import (
	"context"
	"fmt"
	"net/mail"
)

// Address is a mailbox with an optional display name.
type Address struct {
	Name  string
	Email string
}

// String formats the address as "Name <email>", or just the email when no
// name is set.
func (a Address) String() string {
	if a.Name == "" {
		return a.Email
	}
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// ParseAddress accepts either a bare address or "Name <address>". Input that
// does not parse is kept verbatim as the email part.
func ParseAddress(s string) Address {
	a, err := mail.ParseAddress(s)
	if err != nil {
		return Address{Email: s}
	}
	return Address{Name: a.Name, Email: a.Address}
}

// Attachment is a file attached to an outgoing message.
type Attachment struct {
	Name    string
	Content []byte
}

// Message is an outgoing email. HTML is optional; when set the message is
// sent as multipart/alternative with Text as the plain fallback.
type Message struct {
	From        Address
	To          []string
	Cc          []string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

// Transport hands a message to a mail server.
type Transport interface {
	Send(ctx context.Context, msg *Message) error
}
