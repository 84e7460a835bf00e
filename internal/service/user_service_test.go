package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"blog-api/internal/auth"
)

func newUserService(t *testing.T) (UserService, *fakeUserRepo, *auth.TokenService) {
	t.Helper()
	repo := newFakeUserRepo()
	tokens := auth.NewTokenService([]byte("test-secret"), time.Hour)
	return NewUserService(repo, auth.NewBcryptHasher(bcrypt.MinCost), tokens), repo, tokens
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newUserService(t)

	user, err := svc.Register(context.Background(), "Test User", "test@example.com", "password123")
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "Test User", user.Name)
	assert.Equal(t, "test@example.com", user.Email)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Empty(t, user.PasswordHash, "returned user must never carry the hash")

	stored, err := repo.GetByEmail(context.Background(), "test@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "password123", stored.PasswordHash)
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	svc, _, _ := newUserService(t)

	_, err := svc.Register(context.Background(), "", "not-an-email", "short")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 3)

	fields := map[string]string{}
	for _, f := range verr.Fields {
		fields[f.Field] = f.Message
	}
	assert.Equal(t, "Name is required", fields["name"])
	assert.Equal(t, "Invalid email", fields["email"])
	assert.Equal(t, "Password must be at least 6 characters", fields["password"])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _, _ := newUserService(t)

	_, err := svc.Register(context.Background(), "First", "dup@example.com", "password123")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = svc.Register(context.Background(), "Second", "dup@example.com", "password456")
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	}
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	svc, _, tokens := newUserService(t)

	registered, err := svc.Register(context.Background(), "Test User", "test@example.com", "password123")
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "test@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.PasswordHash)

	identity, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, auth.Identity{UserID: registered.ID, Email: "test@example.com"}, identity)
}

func TestLogin_UniformFailure(t *testing.T) {
	t.Parallel()

	svc, _, _ := newUserService(t)

	_, err := svc.Register(context.Background(), "Test User", "test@example.com", "password123")
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login(context.Background(), "test@example.com", "wrong-password")
	_, _, unknownEmail := svc.Login(context.Background(), "nobody@example.com", "password123")

	// identical failures keep registered emails unguessable
	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLogin_Validation(t *testing.T) {
	t.Parallel()

	svc, _, _ := newUserService(t)

	_, _, err := svc.Login(context.Background(), "bad-email", "short")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
}
