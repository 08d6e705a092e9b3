package storage

import (
	"context"

	"github.com/xaenox/vivaha-bot/internal/models"
)

type Storage interface {
	ConversationStorage
	ItemStorage
	QuizStorage
	UserStorage
	Close() error
}

type ConversationStorage interface {
	// AppendTurn inserts one turn at the end of the user's log.
	AppendTurn(ctx context.Context, userID string, turn *models.Turn) error
	// AppendExchange inserts a user turn followed by its assistant turn as
	// a single atomic operation: both land or neither does.
	AppendExchange(ctx context.Context, userID string, userTurn, assistantTurn *models.Turn) error
	// ListTurns returns the full ordered log, empty for an unknown user.
	ListTurns(ctx context.Context, userID string) ([]models.Turn, error)
}

type ItemStorage interface {
	CreateItem(ctx context.Context, userID string, item *models.SavedItem) error
	// ListItems returns all items when kind is nil, archived included.
	ListItems(ctx context.Context, userID string, kind *models.ItemKind) ([]models.SavedItem, error)
	// UpdateItem merges the patch over the item's mutable fields and
	// returns the result. Returns models.ErrNotFound for a missing item.
	UpdateItem(ctx context.Context, userID, itemID string, patch models.ItemPatch) (*models.SavedItem, error)
	// DeleteItem returns models.ErrNotFound for a missing item.
	DeleteItem(ctx context.Context, userID, itemID string) error
}

type QuizStorage interface {
	// SaveQuiz replaces any prior profile wholesale.
	SaveQuiz(ctx context.Context, userID string, quiz models.QuizProfile) error
	// GetQuiz returns nil when the user has no profile.
	GetQuiz(ctx context.Context, userID string) (*models.QuizProfile, error)
}

type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByEmail returns nil when no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
