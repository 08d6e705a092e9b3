package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xaenox/vivaha-bot/internal/models"
	"github.com/xaenox/vivaha-bot/internal/responder"
	"github.com/xaenox/vivaha-bot/internal/storage"
)

var (
	ErrEmptyMessage       = errors.New("message must not be empty")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service orchestrates the response generator and the per-user stores. All
// boundary operations of the planner pass through here.
type Service struct {
	storage   storage.Storage
	generator *responder.Generator
	logger    *zap.Logger

	mu          sync.Mutex
	subscribers map[string][]*subscriber
}

func New(store storage.Storage, generator *responder.Generator, logger *zap.Logger) *Service {
	return &Service{
		storage:     store,
		generator:   generator,
		logger:      logger,
		subscribers: make(map[string][]*subscriber),
	}
}

// Login returns the user for the given credentials, creating the account on
// first login. A wrong password for an existing account fails with
// ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &models.User{
			ID:        uuid.New().String(),
			Email:     email,
			Password:  password,
			CreatedAt: time.Now(),
		}
		if err := s.storage.CreateUser(ctx, user); err != nil {
			return nil, err
		}
		s.logger.Info("Created user on first login", zap.String("user_id", user.ID))
		return user, nil
	}

	if user.Password != password {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// SubmitUtterance appends the user turn and its generated assistant reply as
// one atomic pair and returns the assistant turn. When quiz is nil the stored
// profile is used for personalization.
func (s *Service) SubmitUtterance(ctx context.Context, userID, text string, quiz *models.QuizProfile) (*models.Turn, error) {
	if text == "" {
		return nil, ErrEmptyMessage
	}

	if quiz == nil {
		stored, err := s.storage.GetQuiz(ctx, userID)
		if err != nil {
			return nil, err
		}
		quiz = stored
	}

	now := time.Now()
	userTurn := &models.Turn{
		ID:        uuid.New().String(),
		Role:      models.RoleUser,
		Content:   text,
		CreatedAt: now,
	}
	assistantTurn := &models.Turn{
		ID:        uuid.New().String(),
		Role:      models.RoleAssistant,
		Content:   s.generator.Generate(text, quiz),
		CreatedAt: now.Add(time.Millisecond),
	}

	if err := s.storage.AppendExchange(ctx, userID, userTurn, assistantTurn); err != nil {
		s.logger.Error("Failed to append exchange",
			zap.Error(err),
			zap.String("user_id", userID))
		return nil, err
	}

	s.publish(userID, *userTurn, *assistantTurn)
	return assistantTurn, nil
}

// ListConversation returns the user's full ordered log, seeding a single
// welcome turn when the log is still empty.
func (s *Service) ListConversation(ctx context.Context, userID string) ([]models.Turn, error) {
	turns, err := s.storage.ListTurns(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(turns) > 0 {
		return turns, nil
	}

	quiz, err := s.storage.GetQuiz(ctx, userID)
	if err != nil {
		return nil, err
	}

	welcome := &models.Turn{
		ID:        uuid.New().String(),
		Role:      models.RoleAssistant,
		Content:   s.generator.Welcome(quiz),
		CreatedAt: time.Now(),
	}
	if err := s.storage.AppendTurn(ctx, userID, welcome); err != nil {
		return nil, err
	}

	s.publish(userID, *welcome)
	return []models.Turn{*welcome}, nil
}

// SaveTurnAsItem copies the turn's content into a new saved item. The copy is
// independent of the source turn from this point on.
func (s *Service) SaveTurnAsItem(ctx context.Context, userID, turnID string, kind models.ItemKind) (*models.SavedItem, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	turns, err := s.storage.ListTurns(ctx, userID)
	if err != nil {
		return nil, err
	}

	var source *models.Turn
	for i := range turns {
		if turns[i].ID == turnID {
			source = &turns[i]
			break
		}
	}
	if source == nil {
		return nil, models.ErrNotFound
	}

	item := &models.SavedItem{
		ID:           uuid.New().String(),
		Kind:         kind,
		Content:      source.Content,
		CreatedAt:    time.Now(),
		SourceTurnID: source.ID,
	}
	if err := s.storage.CreateItem(ctx, userID, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) ListItems(ctx context.Context, userID string, kind *models.ItemKind) ([]models.SavedItem, error) {
	if kind != nil {
		if err := kind.Validate(); err != nil {
			return nil, err
		}
	}
	return s.storage.ListItems(ctx, userID, kind)
}

func (s *Service) UpdateItem(ctx context.Context, userID, itemID string, patch models.ItemPatch) (*models.SavedItem, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	return s.storage.UpdateItem(ctx, userID, itemID, patch)
}

func (s *Service) DeleteItem(ctx context.Context, userID, itemID string) error {
	return s.storage.DeleteItem(ctx, userID, itemID)
}

// Progress recomputes the completion score from the confirmed items on every
// call.
func (s *Service) Progress(ctx context.Context, userID string) (models.Progress, error) {
	kind := models.ItemConfirmed
	items, err := s.storage.ListItems(ctx, userID, &kind)
	if err != nil {
		return models.Progress{}, err
	}

	count := len(items)
	score := count * 10
	if score > 100 {
		score = 100
	}
	return models.Progress{Score: score, ConfirmedCount: count}, nil
}

func (s *Service) SaveQuiz(ctx context.Context, userID string, quiz models.QuizProfile) error {
	if err := quiz.Validate(); err != nil {
		return err
	}
	return s.storage.SaveQuiz(ctx, userID, quiz)
}

func (s *Service) GetQuiz(ctx context.Context, userID string) (*models.QuizProfile, error) {
	return s.storage.GetQuiz(ctx, userID)
}
