package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/learn-sphere/analytics-api/internal/models"
	appErrors "github.com/learn-sphere/analytics-api/pkg/errors"
)

type fakeAuthUserStore struct {
	users map[string]*models.User
}

func newFakeAuthUserStore() *fakeAuthUserStore {
	return &fakeAuthUserStore{users: make(map[string]*models.User)}
}

func (f *fakeAuthUserStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (f *fakeAuthUserStore) CreateUser(ctx context.Context, user *models.User) error {
	f.users[user.Email] = user
	return nil
}

func newTestAuthService(store authUserStore) *AuthService {
	return NewAuthService(store, nil, zap.NewNop(), AuthConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		Issuer:     "analytics-api-test",
	})
}

func TestAuthRegister(t *testing.T) {
	store := newFakeAuthUserStore()
	svc := newTestAuthService(store)

	info, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Jane Doe",
		Email:    "Jane.Doe@Example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "jane.doe@example.com", info.ID, "lowercased email is the identity key")
	assert.Equal(t, "jane.doe@example.com", info.Email)
	assert.Equal(t, models.RoleStudent, info.Role)

	stored := store.users["jane.doe@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash, "password must be stored hashed")
}

func TestAuthRegisterDuplicateEmail(t *testing.T) {
	store := newFakeAuthUserStore()
	svc := newTestAuthService(store)

	req := models.RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "s3cret-pass"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	// Same address with different casing still collides.
	req.Email = "JANE@example.com"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, appErrors.ErrEmailTaken)
}

func TestAuthRegisterValidation(t *testing.T) {
	svc := newTestAuthService(newFakeAuthUserStore())

	_, err := svc.Register(context.Background(), models.RegisterRequest{Name: "x", Email: "not-an-email", Password: "short"})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestAuthLoginAndValidateToken(t *testing.T) {
	store := newFakeAuthUserStore()
	svc := newTestAuthService(store)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "s3cret-pass",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "Jane@Example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "analytics-api-test", claims.Issuer)
}

func TestAuthLoginWrongPassword(t *testing.T) {
	store := newFakeAuthUserStore()
	svc := newTestAuthService(store)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "jane@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "nobody@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestAuthValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(newFakeAuthUserStore())

	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}
