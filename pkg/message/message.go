// Package message defines greeting messages and the collaborators that
// supply them.
//
// A [Lister] returns messages in display order. [Store] adds appending for
// the backends that persist messages: [MemoryStore] here, plus the SQLite
// and MongoDB stores in the sqlite and mongo subpackages. [HTTPClient]
// lists messages from a remote server's GET /messages endpoint.
//
// Callers that render pages should use [Fetch], which turns any listing
// failure into an empty list so that the tree still renders.
package message

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	yerrors "github.com/matzehuels/yuletree/pkg/errors"
)

// ErrNotFound is returned when a message id does not exist.
var ErrNotFound = errors.New("message not found")

// Message is an immutable greeting. IDs are unique and stable within a
// store.
type Message struct {
	ID   int    `json:"id" bson:"_id"`
	Text string `json:"text" bson:"text"`
}

// Lister returns messages in display order.
type Lister interface {
	List(ctx context.Context) ([]Message, error)
}

// Store is a Lister that can also append messages. Messages are never
// updated or deleted.
type Store interface {
	Lister
	// Create appends a message with the next free id.
	Create(ctx context.Context, text string) (Message, error)
	Close() error
}

// Fetch lists messages from l. Failures are logged as warnings and
// reported as an empty list, never as an error. A nil logger discards the
// warning.
func Fetch(ctx context.Context, l Lister, logger *log.Logger) []Message {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if l == nil {
		logger.Warn("no message source configured")
		return []Message{}
	}
	msgs, err := l.List(ctx)
	if err != nil {
		logger.Warn("fetch messages failed, showing none", "err", err)
		return []Message{}
	}
	if msgs == nil {
		msgs = []Message{}
	}
	return msgs
}

// Validate normalises and checks text for Create. Surrounding whitespace
// is trimmed.
func Validate(text string) (string, error) {
	text = strings.TrimSpace(text)
	if err := yerrors.ValidateMessageText(text); err != nil {
		return "", err
	}
	return text, nil
}
