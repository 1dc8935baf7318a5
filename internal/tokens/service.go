package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL is the lifetime of a session token.
const DefaultTTL = 7200 * time.Second

var (
	ErrConfiguration  = errors.New("token secret is not configured")
	ErrMissingToken   = errors.New("missing token")
	ErrExpiredToken   = errors.New("token expired")
	ErrMalformedToken = errors.New("malformed token")
)

type Subject struct {
	ID       uint
	UserName string
	RoleName string
}

type TokenBundle struct {
	Token     string
	CSRFToken string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type SessionClaims struct {
	UserID    uint   `json:"id"`
	UserName  string `json:"userName"`
	RoleName  string `json:"roleName"`
	CSRFToken string `json:"csrfToken"`
	jwt.RegisteredClaims
}

type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Service)

func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(secret []byte, opts ...Option) *Service {
	s := &Service{
		secret: secret,
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) TTL() time.Duration { return s.ttl }

func (s *Service) IssueToken(sub Subject) (TokenBundle, error) {
	if len(s.secret) == 0 {
		return TokenBundle{}, ErrConfiguration
	}

	csrf, err := GenerateSecureToken()
	if err != nil {
		return TokenBundle{}, err
	}

	// jwt NumericDate has second precision
	iat := s.now().UTC().Truncate(time.Second)
	exp := iat.Add(s.ttl)

	claims := SessionClaims{
		UserID:    sub.ID,
		UserName:  sub.UserName,
		RoleName:  sub.RoleName,
		CSRFToken: csrf,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return TokenBundle{}, err
	}

	return TokenBundle{
		Token:     signed,
		CSRFToken: csrf,
		IssuedAt:  iat,
		ExpiresAt: exp,
	}, nil
}

func (s *Service) VerifyToken(raw string) (*SessionClaims, error) {
	if len(s.secret) == 0 {
		return nil, ErrConfiguration
	}
	if raw == "" {
		return nil, ErrMissingToken
	}

	var claims SessionClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrMalformedToken
	}
	if !tkn.Valid {
		return nil, ErrMalformedToken
	}

	if claims.UserID == 0 || claims.UserName == "" || claims.RoleName == "" || claims.CSRFToken == "" {
		return nil, ErrMalformedToken
	}

	return &claims, nil
}
