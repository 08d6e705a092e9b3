package storage

import (
	"context"
	"sync"

	"github.com/xaenox/vivaha-bot/internal/models"
)

// MemoryStorage keeps all per-user collections in maps guarded by a single
// RWMutex. Each method is atomic with respect to the others, which gives
// the last-write-wins semantics the stores promise.
type MemoryStorage struct {
	mu       sync.RWMutex
	turns    map[string][]models.Turn
	items    map[string][]models.SavedItem
	profiles map[string]models.QuizProfile
	users    map[string]models.User // keyed by email
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		turns:    make(map[string][]models.Turn),
		items:    make(map[string][]models.SavedItem),
		profiles: make(map[string]models.QuizProfile),
		users:    make(map[string]models.User),
	}
}

func (s *MemoryStorage) AppendTurn(ctx context.Context, userID string, turn *models.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns[userID] = append(s.turns[userID], *turn)
	return nil
}

func (s *MemoryStorage) AppendExchange(ctx context.Context, userID string, userTurn, assistantTurn *models.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns[userID] = append(s.turns[userID], *userTurn, *assistantTurn)
	return nil
}

func (s *MemoryStorage) ListTurns(ctx context.Context, userID string) ([]models.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log := s.turns[userID]
	out := make([]models.Turn, len(log))
	copy(out, log)
	return out, nil
}

func (s *MemoryStorage) CreateItem(ctx context.Context, userID string, item *models.SavedItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[userID] = append(s.items[userID], *item)
	return nil
}

func (s *MemoryStorage) ListItems(ctx context.Context, userID string, kind *models.ItemKind) ([]models.SavedItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.SavedItem, 0, len(s.items[userID]))
	for _, item := range s.items[userID] {
		if kind != nil && item.Kind != *kind {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *MemoryStorage) UpdateItem(ctx context.Context, userID, itemID string, patch models.ItemPatch) (*models.SavedItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.items[userID]
	for i := range items {
		if items[i].ID != itemID {
			continue
		}
		applyPatch(&items[i], patch)
		updated := items[i]
		return &updated, nil
	}
	return nil, models.ErrNotFound
}

func (s *MemoryStorage) DeleteItem(ctx context.Context, userID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.items[userID]
	for i := range items {
		if items[i].ID == itemID {
			s.items[userID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func (s *MemoryStorage) SaveQuiz(ctx context.Context, userID string, quiz models.QuizProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[userID] = quiz
	return nil
}

func (s *MemoryStorage) GetQuiz(ctx context.Context, userID string) (*models.QuizProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if quiz, exists := s.profiles[userID]; exists {
		return &quiz, nil
	}
	return nil, nil
}

func (s *MemoryStorage) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.Email] = *user
	return nil
}

func (s *MemoryStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if user, exists := s.users[email]; exists {
		return &user, nil
	}
	return nil, nil
}

func (s *MemoryStorage) Close() error {
	// Nothing to close for in-memory storage
	return nil
}

// applyPatch merges the mutable fields only; id, createdAt and
// sourceTurnId stay as created.
func applyPatch(item *models.SavedItem, patch models.ItemPatch) {
	if patch.Kind != nil {
		item.Kind = *patch.Kind
	}
	if patch.Content != nil {
		item.Content = *patch.Content
	}
	if patch.Completed != nil {
		completed := *patch.Completed
		item.Completed = &completed
	}
}
