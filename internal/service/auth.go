package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Skotchmaster/epicbeats/internal/domain"
	"github.com/Skotchmaster/epicbeats/internal/events"
	"github.com/Skotchmaster/epicbeats/internal/hash"
	"github.com/Skotchmaster/epicbeats/internal/logging"
	"github.com/Skotchmaster/epicbeats/internal/tokens"
	"github.com/Skotchmaster/epicbeats/internal/transport"
)

var errRoleNotSeeded = errors.New("default role is missing")

type UserStore interface {
	Exists(ctx context.Context, id uint) (bool, error)
	FindByID(ctx context.Context, id uint) (*domain.UserSummary, error)
	FindByEmail(ctx context.Context, email string) (*domain.UserWithCredentials, error)
	EmailInUse(ctx context.Context, email string, excludingUserID uint) (bool, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) (bool, error)
	UpdateEmail(ctx context.Context, id uint, email string) (bool, error)
	Create(ctx context.Context, u domain.NewUser) (uint, error)
	RoleIDByName(ctx context.Context, name string) (uint, bool, error)
}

type TokenIssuer interface {
	IssueToken(sub tokens.Subject) (tokens.TokenBundle, error)
}

type AuthService struct {
	Repo      UserStore
	Tokens    TokenIssuer
	Publisher events.Publisher
	Topic     string
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*domain.UserSummary, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	req.UserName = strings.TrimSpace(req.UserName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateStruct(&req); err != nil {
		return nil, err
	}

	inUse, err := s.Repo.EmailInUse(ctx, req.Email, 0)
	if err != nil {
		return nil, err
	}
	if inUse {
		l.Warn("register_failed", "status", 409, "reason", "email already in use")
		return nil, ErrConflict
	}

	roleID, ok, err := s.Repo.RoleIDByName(ctx, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	if !ok {
		l.Error("register_failed", "status", 500, "reason", "role not seeded", "role", domain.RoleUser)
		return nil, errRoleNotSeeded
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_failed", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	id, err := s.Repo.Create(ctx, domain.NewUser{
		UserName:     req.UserName,
		Email:        req.Email,
		PasswordHash: pwHash,
		RoleID:       roleID,
	})
	if err != nil {
		return nil, err
	}

	user := &domain.UserSummary{ID: id, UserName: req.UserName, Email: req.Email, RoleID: roleID, RoleName: domain.RoleUser}
	s.publish(ctx, events.UserRegistered, id, user)
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*transport.LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateStruct(&req); err != nil {
		return nil, err
	}

	user, err := s.Repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login_failed", "status", 401, "reason", "invalid email or password")
		return nil, ErrInvalidCredentials
	}

	bundle, err := s.Tokens.IssueToken(tokens.Subject{
		ID:       user.ID,
		UserName: user.UserName,
		RoleName: user.RoleName,
	})
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot issue token", "error", err)
		return nil, err
	}

	return &transport.LoginResult{
		Token:     bundle.Token,
		CSRFToken: bundle.CSRFToken,
		ExpiresAt: bundle.ExpiresAt,
		User:      user.UserSummary,
	}, nil
}

func (s *AuthService) Me(ctx context.Context, userID uint) (*domain.UserSummary, error) {
	user, err := s.Repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *AuthService) ChangeEmail(ctx context.Context, userID uint, req transport.ChangeEmailRequest) (*domain.UserSummary, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateStruct(&req); err != nil {
		return nil, err
	}

	exists, err := s.Repo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	inUse, err := s.Repo.EmailInUse(ctx, req.Email, userID)
	if err != nil {
		return nil, err
	}
	if inUse {
		logging.FromContext(ctx).Warn("change_email_failed", "status", 409, "reason", "email already in use")
		return nil, ErrConflict
	}

	ok, err := s.Repo.UpdateEmail(ctx, userID, req.Email)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return s.Me(ctx, userID)
}

// ResetPassword replaces the password with a generated one and hands it to
// the mailer through a password_reset event. The stored hash changes only
// after the event is accepted by the broker. Unknown emails succeed silently.
func (s *AuthService) ResetPassword(ctx context.Context, req transport.ResetPasswordRequest) error {
	l := logging.FromContext(ctx).With("svc", "auth.reset_password")

	if !s.canDeliver() {
		return ErrResetUnavailable
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateStruct(&req); err != nil {
		return err
	}

	user, err := s.Repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if user == nil {
		l.Info("reset_password_skipped", "reason", "unknown email")
		return nil
	}

	temp, err := tokens.GenerateTemporaryPassword()
	if err != nil {
		l.Error("reset_password_failed", "status", 500, "reason", "cannot generate password", "error", err)
		return err
	}
	pwHash, err := hash.HashPassword(temp)
	if err != nil {
		l.Error("reset_password_failed", "status", 500, "reason", "cannot hash the password", "error", err)
		return err
	}

	key := strconv.FormatUint(uint64(user.ID), 10)
	event := events.New(events.PasswordReset, map[string]any{
		"id":                user.ID,
		"userName":          user.UserName,
		"email":             user.Email,
		"temporaryPassword": temp,
	})
	if err := s.Publisher.Publish(ctx, s.Topic, key, event); err != nil {
		l.Error("reset_password_failed", "status", 503, "reason", "cannot deliver the password", "error", err)
		return fmt.Errorf("%w: %v", ErrResetUnavailable, err)
	}

	if _, err := s.Repo.UpdatePassword(ctx, user.Email, pwHash); err != nil {
		return err
	}
	return nil
}

// canDeliver reports whether a reset event would reach a consumer.
func (s *AuthService) canDeliver() bool {
	if s.Publisher == nil {
		return false
	}
	_, noop := s.Publisher.(events.Noop)
	return !noop
}

func (s *AuthService) publish(ctx context.Context, typ string, id uint, payload any) {
	if s.Publisher == nil {
		return
	}
	key := strconv.FormatUint(uint64(id), 10)
	if err := s.Publisher.Publish(ctx, s.Topic, key, events.New(typ, payload)); err != nil {
		logging.FromContext(ctx).Warn("publish_event_failed", "topic", s.Topic, "type", typ, "error", err)
	}
}
