package portfolio

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Guard remembers which client sessions already liked a project.
type Guard interface {
	// Claim records the like and reports whether it is the session's first.
	Claim(ctx context.Context, projectID uuid.UUID, session string) (bool, error)
	// Release forgets a claim whose increment failed.
	Release(ctx context.Context, projectID uuid.UUID, session string) error
}

// LikeService counts at most one like per client session and project.
type LikeService struct {
	repo    Repository
	catalog *Catalog
	guard   Guard
	logger  zerolog.Logger
}

func NewLikeService(repo Repository, catalog *Catalog, guard Guard) *LikeService {
	return &LikeService{
		repo:    repo,
		catalog: catalog,
		guard:   guard,
		logger:  log.With().Str("component", "likes").Logger(),
	}
}

// Like increments the project's count once per session. Later calls from
// the same session return the current count and counted=false.
func (s *LikeService) Like(ctx context.Context, projectID uuid.UUID, session string) (likes int, counted bool, err error) {
	session = strings.TrimSpace(session)
	if session == "" {
		return 0, false, ErrNoSession
	}

	first, err := s.guard.Claim(ctx, projectID, session)
	if err != nil {
		return 0, false, fmt.Errorf("claim like: %w", err)
	}
	if !first {
		likes, err := s.current(ctx, projectID)
		return likes, false, err
	}

	likes, err = s.repo.IncrementLikes(ctx, projectID)
	if err != nil {
		s.logger.Error().Err(err).Str("projectID", projectID.String()).Msg("like failed")
		if relErr := s.guard.Release(ctx, projectID, session); relErr != nil {
			s.logger.Warn().Err(relErr).Msg("release like claim")
		}
		return 0, false, err
	}

	s.catalog.SetLikes(projectID, likes)
	return likes, true, nil
}

func (s *LikeService) current(ctx context.Context, projectID uuid.UUID) (int, error) {
	if p, ok := s.catalog.Get(projectID); ok {
		return p.Likes, nil
	}
	p, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return 0, err
	}
	return p.Likes, nil
}

// DefaultLikeTTL is how long a session's like is remembered.
const DefaultLikeTTL = 30 * 24 * time.Hour

// RedisGuard keeps claims in Redis so they survive restarts and are shared
// between instances.
type RedisGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGuard(client *redis.Client, ttl time.Duration) *RedisGuard {
	if ttl <= 0 {
		ttl = DefaultLikeTTL
	}
	return &RedisGuard{client: client, ttl: ttl}
}

func likeKey(projectID uuid.UUID, session string) string {
	return fmt.Sprintf("like:%s:%s", projectID, session)
}

func (g *RedisGuard) Claim(ctx context.Context, projectID uuid.UUID, session string) (bool, error) {
	return g.client.SetNX(ctx, likeKey(projectID, session), 1, g.ttl).Result()
}

func (g *RedisGuard) Release(ctx context.Context, projectID uuid.UUID, session string) error {
	return g.client.Del(ctx, likeKey(projectID, session)).Err()
}

// MemoryGuard keeps claims in process memory.
type MemoryGuard struct {
	mu     sync.Mutex
	claims map[string]struct{}
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{claims: make(map[string]struct{})}
}

func (g *MemoryGuard) Claim(_ context.Context, projectID uuid.UUID, session string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := likeKey(projectID, session)
	if _, ok := g.claims[key]; ok {
		return false, nil
	}
	g.claims[key] = struct{}{}
	return true, nil
}

func (g *MemoryGuard) Release(_ context.Context, projectID uuid.UUID, session string) error {
	g.mu.Lock()
	delete(g.claims, likeKey(projectID, session))
	g.mu.Unlock()
	return nil
}

// NewGuard returns a Redis guard when a client is configured, else a memory guard.
func NewGuard(client *redis.Client) Guard {
	if client == nil {
		return NewMemoryGuard()
	}
	return NewRedisGuard(client, DefaultLikeTTL)
}
