package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/epicbeats/internal/domain"
	"github.com/Skotchmaster/epicbeats/internal/events"
	"github.com/Skotchmaster/epicbeats/internal/hash"
	"github.com/Skotchmaster/epicbeats/internal/repo"
	"github.com/Skotchmaster/epicbeats/internal/tokens"
	"github.com/Skotchmaster/epicbeats/internal/transport"
)

var testSecret = []byte("test-secret")

func newAuthService(t *testing.T) (*AuthService, *repo.UserRepo, *recordingPublisher) {
	t.Helper()
	users := repo.NewUserRepo(newTestDB(t))
	pub := &recordingPublisher{}
	return &AuthService{
		Repo:      users,
		Tokens:    tokens.NewService(testSecret),
		Publisher: pub,
		Topic:     "user_events",
	}, users, pub
}

func TestAuthService_RegisterLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, pub := newAuthService(t)

	user, err := svc.Register(ctx, transport.RegisterRequest{UserName: "neo", Email: " Neo@Matrix.io", Password: "red-pill-42"})
	require.NoError(t, err)
	assert.Positive(t, user.ID)
	assert.Equal(t, "neo@matrix.io", user.Email)
	assert.Equal(t, domain.RoleUser, user.RoleName)
	assert.Equal(t, []string{events.UserRegistered}, pub.types())

	res, err := svc.Login(ctx, transport.LoginRequest{Email: "neo@matrix.io", Password: "red-pill-42"})
	require.NoError(t, err)
	assert.Equal(t, *user, res.User)
	assert.Len(t, res.CSRFToken, 64)

	claims, err := tokens.NewService(testSecret).VerifyToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "neo", claims.UserName)
	assert.Equal(t, domain.RoleUser, claims.RoleName)
	assert.Equal(t, res.CSRFToken, claims.CSRFToken)
}

func TestAuthService_Register_Errors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, _ := newAuthService(t)

	_, err := svc.Register(ctx, transport.RegisterRequest{UserName: "a", Email: "a@x.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(ctx, transport.RegisterRequest{UserName: "alice", Email: "not-an-email", Password: "password1"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(ctx, transport.RegisterRequest{UserName: "alice", Email: "a@x.com", Password: "short"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(ctx, transport.RegisterRequest{UserName: "alice", Email: "a@x.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, transport.RegisterRequest{UserName: "alice2", Email: "A@X.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, _ := newAuthService(t)

	_, err := svc.Register(ctx, transport.RegisterRequest{UserName: "alice", Email: "a@x.com", Password: "password1"})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  transport.LoginRequest
	}{
		{name: "wrong password", req: transport.LoginRequest{Email: "a@x.com", Password: "password2"}},
		{name: "unknown email", req: transport.LoginRequest{Email: "b@x.com", Password: "password1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.req)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestAuthService_Login_NoSecret(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, _ := newAuthService(t)
	svc.Tokens = tokens.NewService(nil)

	_, err := svc.Register(ctx, transport.RegisterRequest{UserName: "alice", Email: "a@x.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, transport.LoginRequest{Email: "a@x.com", Password: "password1"})
	assert.ErrorIs(t, err, tokens.ErrConfiguration)
}

func TestAuthService_MeAndChangeEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, _ := newAuthService(t)

	alice, err := svc.Register(ctx, transport.RegisterRequest{UserName: "alice", Email: "a@x.com", Password: "password1"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, transport.RegisterRequest{UserName: "bob", Email: "b@x.com", Password: "password1"})
	require.NoError(t, err)

	me, err := svc.Me(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, *alice, *me)

	_, err = svc.Me(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.ChangeEmail(ctx, alice.ID, transport.ChangeEmailRequest{Email: "b@x.com"})
	assert.ErrorIs(t, err, ErrConflict)

	same, err := svc.ChangeEmail(ctx, alice.ID, transport.ChangeEmailRequest{Email: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", same.Email)

	moved, err := svc.ChangeEmail(ctx, alice.ID, transport.ChangeEmailRequest{Email: "Alice@Y.com"})
	require.NoError(t, err)
	assert.Equal(t, "alice@y.com", moved.Email)

	_, err = svc.ChangeEmail(ctx, 999, transport.ChangeEmailRequest{Email: "z@x.com"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuthService_ResetPassword(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, users, pub := newAuthService(t)

	_, err := svc.Register(ctx, transport.RegisterRequest{UserName: "alice", Email: "a@x.com", Password: "password1"})
	require.NoError(t, err)

	before, err := users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(ctx, transport.ResetPasswordRequest{Email: "a@x.com"}))

	after, err := users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, before.PasswordHash, after.PasswordHash)
	assert.False(t, hash.CheckPassword(after.PasswordHash, "password1"))

	require.Equal(t, []string{events.UserRegistered, events.PasswordReset}, pub.types())
	payload := pub.sent[1].Event.Payload.(map[string]any)
	temp := payload["temporaryPassword"].(string)
	assert.Len(t, temp, tokens.TemporaryPasswordLength)
	assert.True(t, hash.CheckPassword(after.PasswordHash, temp))

	_, err = svc.Login(ctx, transport.LoginRequest{Email: "a@x.com", Password: temp})
	assert.NoError(t, err)

	assert.NoError(t, svc.ResetPassword(ctx, transport.ResetPasswordRequest{Email: "ghost@x.com"}))
	assert.Len(t, pub.types(), 2)

	assert.ErrorIs(t, svc.ResetPassword(ctx, transport.ResetPasswordRequest{Email: "nope"}), ErrValidation)
}

func TestAuthService_ResetPassword_KeepsHashWhenUndelivered(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, users, pub := newAuthService(t)

	_, err := svc.Register(ctx, transport.RegisterRequest{UserName: "alice", Email: "a@x.com", Password: "password1"})
	require.NoError(t, err)
	before, err := users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	pub.err = errBroker
	err = svc.ResetPassword(ctx, transport.ResetPasswordRequest{Email: "a@x.com"})
	require.ErrorIs(t, err, ErrResetUnavailable)

	after, err := users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)

	for _, p := range []events.Publisher{nil, events.Noop{}} {
		svc.Publisher = p
		assert.ErrorIs(t, svc.ResetPassword(ctx, transport.ResetPasswordRequest{Email: "a@x.com"}), ErrResetUnavailable)
	}

	_, err = svc.Login(ctx, transport.LoginRequest{Email: "a@x.com", Password: "password1"})
	assert.NoError(t, err)
}

func TestAuthService_NormalizesEmailOnLoginAndReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, pub := newAuthService(t)

	_, err := svc.Register(ctx, transport.RegisterRequest{UserName: "alice", Email: " Alice@X.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, transport.LoginRequest{Email: "  ALICE@x.com ", Password: "password1"})
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(ctx, transport.ResetPasswordRequest{Email: " alice@X.COM"}))
	assert.Equal(t, []string{events.UserRegistered, events.PasswordReset}, pub.types())
}
