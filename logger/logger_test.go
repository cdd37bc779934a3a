package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestInitLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	Init(Config{Level: "WARN", Environment: "production"})
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	Init(Config{Level: "nonsense", Environment: "production"})
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestIsDevelopment(t *testing.T) {
	assert.True(t, IsDevelopment("development"))
	assert.True(t, IsDevelopment(""))
	assert.False(t, IsDevelopment("production"))
}
