package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned by stores when an update or delete targets an
// item that does not exist. Callers treat it as a normal outcome.
var ErrNotFound = errors.New("not found")

// ValidationError marks input rejected at the store boundary. It is never
// retried automatically.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn represents one message in a conversation, either from the user or
// from the assistant. Turns are immutable once appended.
type Turn struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ItemKind string

const (
	ItemNote      ItemKind = "note"
	ItemReminder  ItemKind = "reminder"
	ItemConfirmed ItemKind = "confirmed"
	ItemArchived  ItemKind = "archived"
)

func (k ItemKind) Validate() error {
	switch k {
	case ItemNote, ItemReminder, ItemConfirmed, ItemArchived:
		return nil
	}
	return validationErrorf("invalid item kind: %q", string(k))
}

// SavedItem is a user-curated artifact derived from a Turn. Content is
// copied from the source turn at save time, not referenced.
type SavedItem struct {
	ID           string    `json:"id"`
	Kind         ItemKind  `json:"kind"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	SourceTurnID string    `json:"source_turn_id,omitempty"`
	Completed    *bool     `json:"completed,omitempty"`
}

// ItemPatch is a partial update over the mutable fields of a SavedItem.
// ID, CreatedAt and SourceTurnID are immutable and have no patch fields.
type ItemPatch struct {
	Kind      *ItemKind `json:"kind,omitempty"`
	Content   *string   `json:"content,omitempty"`
	Completed *bool     `json:"completed,omitempty"`
}

func (p ItemPatch) Validate() error {
	if p.Kind != nil {
		if err := p.Kind.Validate(); err != nil {
			return err
		}
	}
	if p.Content != nil && *p.Content == "" {
		return validationErrorf("content must not be empty")
	}
	return nil
}

// Progress is the derived completion score: min(100, 10 x confirmed items).
type Progress struct {
	Score          int `json:"score"`
	ConfirmedCount int `json:"confirmed_count"`
}

// User represents an account created on first login.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
