package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Claims are the claims of an owner session token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Session is an authorized owner session.
type Session struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Config holds the single owner credential and token settings.
type Config struct {
	Email        string
	PasswordHash string
	Secret       string
	TTL          time.Duration
}

// Service signs the site owner in and out and checks session tokens.
type Service struct {
	email        string
	passwordHash string
	secret       []byte
	ttl          time.Duration
	revocations  Revocations
	now          func() time.Time

	mu        sync.Mutex
	listeners map[int]func(authorized bool)
	nextID    int

	logger zerolog.Logger
}

func NewService(cfg Config, revocations Revocations) *Service {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Service{
		email:        strings.ToLower(strings.TrimSpace(cfg.Email)),
		passwordHash: cfg.PasswordHash,
		secret:       []byte(cfg.Secret),
		ttl:          ttl,
		revocations:  revocations,
		now:          time.Now,
		listeners:    make(map[int]func(bool)),
		logger:       log.With().Str("component", "auth").Logger(),
	}
}

// SignIn checks the owner credential and issues a session token.
func (s *Service) SignIn(ctx context.Context, email, password string) (Session, error) {
	if s.email == "" || s.passwordHash == "" || len(s.secret) == 0 {
		return Session{}, ErrNotConfigured
	}
	if strings.ToLower(strings.TrimSpace(email)) != s.email || !verifyPassword(password, s.passwordHash) {
		s.logger.Warn().Str("email", email).Msg("rejected sign-in")
		return Session{}, ErrInvalidCredentials
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		Email: s.email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.email,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}

	s.notify(true)
	return Session{Token: token, Email: s.email, ExpiresAt: expiresAt}, nil
}

// SignOut revokes the token. Invalid tokens are already signed out.
func (s *Service) SignOut(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return nil
	}
	if err := s.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.notify(false)
	return nil
}

// GetSession returns the session for token, or nil when it is not a live
// owner session.
func (s *Service) GetSession(ctx context.Context, token string) (*Session, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, nil
	}
	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, nil
	}
	return &Session{Token: token, Email: claims.Email, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// OnSessionChange registers fn to be told when the owner signs in or out.
// The returned func unregisters it.
func (s *Service) OnSessionChange(fn func(authorized bool)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Service) notify(authorized bool) {
	s.mu.Lock()
	fns := make([]func(bool), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(authorized)
	}
}

func (s *Service) parse(tokenString string) (*Claims, error) {
	if tokenString == "" || len(s.secret) == 0 {
		return nil, ErrInvalidToken
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Email != s.email {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
