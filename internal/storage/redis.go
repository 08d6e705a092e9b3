package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xaenox/vivaha-bot/internal/models"
)

// RedisStorage keeps each per-user collection as one JSON document under a
// namespaced key. Collections are rewritten wholesale on mutation, which
// matches the last-write-wins contract of the stores.
type RedisStorage struct {
	rdb *redis.Client
}

func NewRedisStorage(addr, password string, db int) (*RedisStorage, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisStorage{rdb: rdb}, nil
}

func turnsKey(userID string) string { return "chat:" + userID }
func itemsKey(userID string) string { return "items:" + userID }
func quizKey(userID string) string { return "quiz:" + userID }
func userKey(email string) string { return "user:email:" + email }

// userInternal exists because models.User never serializes its password,
// while the store has to persist it.
type userInternal struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *RedisStorage) AppendTurn(ctx context.Context, userID string, turn *models.Turn) error {
	return s.appendTurns(ctx, userID, *turn)
}

func (s *RedisStorage) AppendExchange(ctx context.Context, userID string, userTurn, assistantTurn *models.Turn) error {
	return s.appendTurns(ctx, userID, *userTurn, *assistantTurn)
}

func (s *RedisStorage) appendTurns(ctx context.Context, userID string, turns ...models.Turn) error {
	log, err := s.loadTurns(ctx, userID)
	if err != nil {
		return err
	}
	log = append(log, turns...)
	return s.setJSON(ctx, turnsKey(userID), log)
}

func (s *RedisStorage) ListTurns(ctx context.Context, userID string) ([]models.Turn, error) {
	return s.loadTurns(ctx, userID)
}

func (s *RedisStorage) loadTurns(ctx context.Context, userID string) ([]models.Turn, error) {
	turns := make([]models.Turn, 0)
	if err := s.getJSON(ctx, turnsKey(userID), &turns); err != nil {
		return nil, fmt.Errorf("failed to load turns: %w", err)
	}
	return turns, nil
}

func (s *RedisStorage) CreateItem(ctx context.Context, userID string, item *models.SavedItem) error {
	items, err := s.loadItems(ctx, userID)
	if err != nil {
		return err
	}
	items = append(items, *item)
	return s.setJSON(ctx, itemsKey(userID), items)
}

func (s *RedisStorage) ListItems(ctx context.Context, userID string, kind *models.ItemKind) ([]models.SavedItem, error) {
	items, err := s.loadItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if kind == nil {
		return items, nil
	}
	filtered := make([]models.SavedItem, 0, len(items))
	for _, item := range items {
		if item.Kind == *kind {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

func (s *RedisStorage) UpdateItem(ctx context.Context, userID, itemID string, patch models.ItemPatch) (*models.SavedItem, error) {
	items, err := s.loadItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID != itemID {
			continue
		}
		applyPatch(&items[i], patch)
		if err := s.setJSON(ctx, itemsKey(userID), items); err != nil {
			return nil, err
		}
		updated := items[i]
		return &updated, nil
	}
	return nil, models.ErrNotFound
}

func (s *RedisStorage) DeleteItem(ctx context.Context, userID, itemID string) error {
	items, err := s.loadItems(ctx, userID)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == itemID {
			items = append(items[:i], items[i+1:]...)
			return s.setJSON(ctx, itemsKey(userID), items)
		}
	}
	return models.ErrNotFound
}

func (s *RedisStorage) loadItems(ctx context.Context, userID string) ([]models.SavedItem, error) {
	items := make([]models.SavedItem, 0)
	if err := s.getJSON(ctx, itemsKey(userID), &items); err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}
	return items, nil
}

func (s *RedisStorage) SaveQuiz(ctx context.Context, userID string, quiz models.QuizProfile) error {
	return s.setJSON(ctx, quizKey(userID), quiz)
}

func (s *RedisStorage) GetQuiz(ctx context.Context, userID string) (*models.QuizProfile, error) {
	raw, err := s.rdb.Get(ctx, quizKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz profile: %w", err)
	}
	var quiz models.QuizProfile
	if err := json.Unmarshal([]byte(raw), &quiz); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quiz profile: %w", err)
	}
	return &quiz, nil
}

func (s *RedisStorage) CreateUser(ctx context.Context, user *models.User) error {
	return s.setJSON(ctx, userKey(user.Email), userInternal{
		ID:        user.ID,
		Email:     user.Email,
		Password:  user.Password,
		CreatedAt: user.CreatedAt,
	})
}

func (s *RedisStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	raw, err := s.rdb.Get(ctx, userKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	var userInt userInternal
	if err := json.Unmarshal([]byte(raw), &userInt); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &models.User{
		ID:        userInt.ID,
		Email:     userInt.Email,
		Password:  userInt.Password,
		CreatedAt: userInt.CreatedAt,
	}, nil
}

func (s *RedisStorage) Close() error {
	return s.rdb.Close()
}

// getJSON leaves dest untouched when the key is absent.
func (s *RedisStorage) getJSON(ctx context.Context, key string, dest interface{}) error {
	raw, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), dest)
}

func (s *RedisStorage) setJSON(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for %s: %w", key, err)
	}
	if err := s.rdb.Set(ctx, key, raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
