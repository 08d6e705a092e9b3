package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/xaenox/vivaha-bot/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(config DatabaseConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %v", err)
	}

	storage := &PostgresStorage{db: db}

	// Initialize database schema
	if err := storage.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %v", err)
	}

	return storage, nil
}

func (s *PostgresStorage) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %v", err)
	}

	_, err = s.db.Exec(string(migrationSQL))
	if err != nil {
		return fmt.Errorf("error executing migrations: %v", err)
	}

	return nil
}

func (s *PostgresStorage) AppendTurn(ctx context.Context, userID string, turn *models.Turn) error {
	query := `
		INSERT INTO turns (id, user_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := s.db.ExecContext(ctx, query, turn.ID, userID, turn.Role, turn.Content, turn.CreatedAt); err != nil {
		return fmt.Errorf("error appending turn: %v", err)
	}
	return nil
}

func (s *PostgresStorage) AppendExchange(ctx context.Context, userID string, userTurn, assistantTurn *models.Turn) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %v", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO turns (id, user_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	for _, turn := range []*models.Turn{userTurn, assistantTurn} {
		if _, err := tx.ExecContext(ctx, query, turn.ID, userID, turn.Role, turn.Content, turn.CreatedAt); err != nil {
			return fmt.Errorf("error appending turn: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing exchange: %v", err)
	}
	return nil
}

func (s *PostgresStorage) ListTurns(ctx context.Context, userID string) ([]models.Turn, error) {
	query := `
		SELECT id, role, content, created_at
		FROM turns
		WHERE user_id = $1
		ORDER BY seq`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying turns: %v", err)
	}
	defer rows.Close()

	turns := make([]models.Turn, 0)
	for rows.Next() {
		var turn models.Turn
		if err := rows.Scan(&turn.ID, &turn.Role, &turn.Content, &turn.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning turn: %v", err)
		}
		turns = append(turns, turn)
	}

	return turns, rows.Err()
}

func (s *PostgresStorage) CreateItem(ctx context.Context, userID string, item *models.SavedItem) error {
	query := `
		INSERT INTO saved_items (id, user_id, kind, content, created_at, source_turn_id, completed)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)`

	if _, err := s.db.ExecContext(ctx, query,
		item.ID, userID, item.Kind, item.Content, item.CreatedAt, item.SourceTurnID, item.Completed); err != nil {
		return fmt.Errorf("error creating item: %v", err)
	}
	return nil
}

func (s *PostgresStorage) ListItems(ctx context.Context, userID string, kind *models.ItemKind) ([]models.SavedItem, error) {
	query := `
		SELECT id, kind, content, created_at, COALESCE(source_turn_id, ''), completed
		FROM saved_items
		WHERE user_id = $1 AND ($2::text IS NULL OR kind = $2)
		ORDER BY created_at`

	var kindArg interface{}
	if kind != nil {
		kindArg = string(*kind)
	}

	rows, err := s.db.QueryContext(ctx, query, userID, kindArg)
	if err != nil {
		return nil, fmt.Errorf("error querying items: %v", err)
	}
	defer rows.Close()

	items := make([]models.SavedItem, 0)
	for rows.Next() {
		var item models.SavedItem
		if err := rows.Scan(&item.ID, &item.Kind, &item.Content, &item.CreatedAt,
			&item.SourceTurnID, &item.Completed); err != nil {
			return nil, fmt.Errorf("error scanning item: %v", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (s *PostgresStorage) UpdateItem(ctx context.Context, userID, itemID string, patch models.ItemPatch) (*models.SavedItem, error) {
	query := `
		UPDATE saved_items
		SET kind      = COALESCE($1, kind),
		    content   = COALESCE($2, content),
		    completed = COALESCE($3, completed)
		WHERE user_id = $4 AND id = $5
		RETURNING id, kind, content, created_at, COALESCE(source_turn_id, ''), completed`

	var kindArg *string
	if patch.Kind != nil {
		k := string(*patch.Kind)
		kindArg = &k
	}

	var item models.SavedItem
	err := s.db.QueryRowContext(ctx, query, kindArg, patch.Content, patch.Completed, userID, itemID).
		Scan(&item.ID, &item.Kind, &item.Content, &item.CreatedAt, &item.SourceTurnID, &item.Completed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error updating item: %v", err)
	}
	return &item, nil
}

func (s *PostgresStorage) DeleteItem(ctx context.Context, userID, itemID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM saved_items WHERE user_id = $1 AND id = $2`, userID, itemID)
	if err != nil {
		return fmt.Errorf("error deleting item: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *PostgresStorage) SaveQuiz(ctx context.Context, userID string, quiz models.QuizProfile) error {
	query := `
		INSERT INTO quiz_profiles (user_id, style, budget, guest_count)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET style = $2, budget = $3, guest_count = $4`

	if _, err := s.db.ExecContext(ctx, query, userID, quiz.Style, quiz.Budget, quiz.GuestCount); err != nil {
		return fmt.Errorf("error saving quiz profile: %v", err)
	}
	return nil
}

func (s *PostgresStorage) GetQuiz(ctx context.Context, userID string) (*models.QuizProfile, error) {
	var quiz models.QuizProfile
	err := s.db.QueryRowContext(ctx,
		`SELECT style, budget, guest_count FROM quiz_profiles WHERE user_id = $1`, userID).
		Scan(&quiz.Style, &quiz.Budget, &quiz.GuestCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying quiz profile: %v", err)
	}
	return &quiz, nil
}

func (s *PostgresStorage) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, password, created_at)
		VALUES ($1, $2, $3, $4)`

	if _, err := s.db.ExecContext(ctx, query, user.ID, user.Email, user.Password, user.CreatedAt); err != nil {
		return fmt.Errorf("error creating user: %v", err)
	}
	return nil
}

func (s *PostgresStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, password, created_at FROM users WHERE email = $1`, email).
		Scan(&user.ID, &user.Email, &user.Password, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying user: %v", err)
	}
	return &user, nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
