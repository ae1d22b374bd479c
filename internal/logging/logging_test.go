package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, zapcore.InfoLevel, cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.False(t, cfg.Caller.Enabled)
	assert.Equal(t, zapcore.ErrorLevel, cfg.Stacktrace.Level)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "valid default config",
			config:  NewDefaultConfig(),
			wantErr: false,
		},
		{
			name: "invalid format",
			config: &Config{
				Level:  zapcore.InfoLevel,
				Format: "xml",
			},
			wantErr: true,
		},
		{
			name: "negative caller skip",
			config: &Config{
				Level:  zapcore.InfoLevel,
				Format: "json",
				Caller: CallerConfig{Enabled: true, Skip: -1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(NewDefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.True(t, logger.Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Enabled(zapcore.DebugLevel))
}

func TestNewLogger_InvalidConfig(t *testing.T) {
	_, err := NewLogger(&Config{Format: "yaml"})
	assert.Error(t, err)
}

func TestLevelFromString(t *testing.T) {
	l, err := LevelFromString("warn")
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, l)

	_, err = LevelFromString("shout")
	assert.Error(t, err)
}

func TestContextThreading(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, FileFromContext(ctx))
	assert.Empty(t, RunIDFromContext(ctx))

	ctx = WithFile(ctx, "pages/events/concert.xml")
	ctx = WithRunID(ctx, "run-1")

	assert.Equal(t, "pages/events/concert.xml", FileFromContext(ctx))
	assert.Equal(t, "run-1", RunIDFromContext(ctx))

	fields := ContextFields(ctx)
	assert.Len(t, fields, 2)
}

func TestFromContext_Fallback(t *testing.T) {
	// Missing logger yields a usable nop, never nil.
	logger := FromContext(context.Background())
	require.NotNil(t, logger)
	logger.Info(context.Background(), "no-op")

	real := NewNop()
	ctx := WithLogger(context.Background(), real)
	assert.Same(t, real, FromContext(ctx))
}
