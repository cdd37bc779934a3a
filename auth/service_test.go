package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) (*Service, *time.Time) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := NewService(Config{
		Email:        "Owner@Example.com",
		PasswordHash: string(hash),
		Secret:       "test-secret",
		TTL:          time.Hour,
	}, NewMemoryRevocations())
	svc.now = func() time.Time { return now }
	svc.revocations.(*MemoryRevocations).now = func() time.Time { return now }
	return svc, &now
}

func TestSignIn(t *testing.T) {
	ctx := context.Background()
	svc, now := newTestService(t)

	_, err := svc.SignIn(ctx, "owner@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn(ctx, "someone@example.com", "s3cret")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	session, err := svc.SignIn(ctx, " OWNER@example.com ", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	require.Equal(t, "owner@example.com", session.Email)
	require.Equal(t, now.Add(time.Hour), session.ExpiresAt)
}

func TestSignIn_NotConfigured(t *testing.T) {
	svc := NewService(Config{}, NewMemoryRevocations())
	_, err := svc.SignIn(context.Background(), "a@b.c", "x")
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestGetSession(t *testing.T) {
	ctx := context.Background()
	svc, now := newTestService(t)

	session, err := svc.SignIn(ctx, "owner@example.com", "s3cret")
	require.NoError(t, err)

	got, err := svc.GetSession(ctx, session.Token)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "owner@example.com", got.Email)

	got, err = svc.GetSession(ctx, "not-a-token")
	require.NoError(t, err)
	require.Nil(t, got)

	*now = now.Add(2 * time.Hour)
	got, err = svc.GetSession(ctx, session.Token)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSignOutRevokes(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	session, err := svc.SignIn(ctx, "owner@example.com", "s3cret")
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx, session.Token))
	got, err := svc.GetSession(ctx, session.Token)
	require.NoError(t, err)
	require.Nil(t, got)

	require.NoError(t, svc.SignOut(ctx, "garbage"))
}

func TestForeignSecretRejected(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	session, err := svc.SignIn(ctx, "owner@example.com", "s3cret")
	require.NoError(t, err)

	other, _ := newTestService(t)
	other.secret = []byte("different")
	got, err := other.GetSession(ctx, session.Token)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestOnSessionChange(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	var events []bool
	unsubscribe := svc.OnSessionChange(func(authorized bool) { events = append(events, authorized) })

	session, err := svc.SignIn(ctx, "owner@example.com", "s3cret")
	require.NoError(t, err)
	require.NoError(t, svc.SignOut(ctx, session.Token))
	_, _ = svc.SignIn(ctx, "owner@example.com", "bad")

	require.Equal(t, []bool{true, false}, events)

	unsubscribe()
	_, err = svc.SignIn(ctx, "owner@example.com", "s3cret")
	require.NoError(t, err)
	require.Len(t, events, 2)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)
	require.True(t, verifyPassword("pw", hash))
	require.False(t, verifyPassword("other", hash))
}
