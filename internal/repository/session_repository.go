package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/learn-sphere/analytics-api/internal/models"
)

// SessionRepository manages persistence for live sessions.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository constructs a new live-session repository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// List returns every live session ordered by id.
func (r *SessionRepository) List(ctx context.Context) ([]models.LiveSession, error) {
	var sessions []models.LiveSession
	query := "SELECT id, title, course_id, start_time FROM live_sessions ORDER BY id"
	if err := r.db.SelectContext(ctx, &sessions, query); err != nil {
		return nil, fmt.Errorf("list live sessions: %w", err)
	}
	return sessions, nil
}

// FindByID fetches one live session by id.
func (r *SessionRepository) FindByID(ctx context.Context, id string) (*models.LiveSession, error) {
	var session models.LiveSession
	query := "SELECT id, title, course_id, start_time FROM live_sessions WHERE id = $1"
	if err := r.db.GetContext(ctx, &session, query, id); err != nil {
		return nil, fmt.Errorf("find live session %s: %w", id, err)
	}
	return &session, nil
}
