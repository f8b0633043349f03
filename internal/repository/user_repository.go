package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/learn-sphere/analytics-api/internal/models"
)

// UserRepository manages persistence for accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository constructs a new user repository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// List returns every account.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	query := "SELECT id, name, email, role, password_hash, created_at FROM users ORDER BY id"
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// FindByID fetches one account by id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	query := "SELECT id, name, email, role, password_hash, created_at FROM users WHERE id = $1"
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, fmt.Errorf("find user %s: %w", id, err)
	}
	return &user, nil
}

// FindByEmail fetches one account by email, case-insensitively.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	query := "SELECT id, name, email, role, password_hash, created_at FROM users WHERE LOWER(email) = $1"
	if err := r.db.GetContext(ctx, &user, query, strings.ToLower(email)); err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// Create inserts a new account.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (id, name, email, role, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.Role, user.PasswordHash, user.CreatedAt); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}
