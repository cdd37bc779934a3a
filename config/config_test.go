package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedAccessors(t *testing.T) {
	cfg := map[string]string{
		"PORT":            "9090",
		"AUTO_MIGRATE":    "true",
		"BROKEN_INT":      "abc",
		"TIMEOUT_SECONDS": "15",
		"ORIGINS":         "http://a.test, ,http://b.test",
	}

	assert.Equal(t, 9090, GetInt(cfg, "PORT", 8080))
	assert.Equal(t, 7, GetInt(cfg, "BROKEN_INT", 7))
	assert.True(t, GetBool(cfg, "AUTO_MIGRATE", false))
	assert.True(t, GetBool(cfg, "MISSING", true))
	assert.Equal(t, 15*time.Second, GetDuration(cfg, "TIMEOUT_SECONDS", time.Second, 10))
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, GetList(cfg, "ORIGINS"))
	assert.Nil(t, GetList(cfg, "MISSING"))
	assert.Equal(t, "fallback", GetString(nil, "PORT", "fallback"))
}

func TestSplit(t *testing.T) {
	key, value := split("A=b=c")
	assert.Equal(t, "A", key)
	assert.Equal(t, "b=c", value)

	key, value = split("LONELY")
	assert.Equal(t, "LONELY", key)
	assert.Empty(t, value)
}

type pagedStore struct {
	pages [][]types.Parameter
	calls int
	err   error
}

func (s *pagedStore) GetParametersByPath(_ context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	if s.err != nil {
		return nil, s.err
	}
	page := s.pages[s.calls]
	s.calls++
	out := &ssm.GetParametersByPathOutput{Parameters: page}
	if s.calls < len(s.pages) {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func TestLoadSSMOverlaysAllPages(t *testing.T) {
	store := &pagedStore{pages: [][]types.Parameter{
		{{Name: aws.String("/studio/prod/jwt_secret"), Value: aws.String("s3cret")}},
		{{Name: aws.String("/studio/prod/redis-url"), Value: aws.String("redis://cache:6379")}},
	}}
	cfg := map[string]string{"JWT_SECRET": "local"}

	n, err := LoadSSM(context.Background(), store, "/studio/prod", cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, store.calls)
	assert.Equal(t, "s3cret", cfg["JWT_SECRET"])
	assert.Equal(t, "redis://cache:6379", cfg["REDIS_URL"])
}

func TestLoadSSMWithoutPrefixIsNoop(t *testing.T) {
	store := &pagedStore{err: errors.New("should not be called")}
	n, err := LoadSSM(context.Background(), store, "", map[string]string{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLoadSSMError(t *testing.T) {
	store := &pagedStore{err: errors.New("access denied")}
	_, err := LoadSSM(context.Background(), store, "/studio", map[string]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}
