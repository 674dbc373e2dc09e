package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		t.Run(level, func(t *testing.T) {
			log, err := New(level)
			require.NoError(t, err)

			want, _ := zapcore.ParseLevel(level)
			assert.True(t, log.Core().Enabled(want))
			assert.False(t, log.Core().Enabled(want-1))
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("verbose")
	assert.Error(t, err)

	_, err = NewDevelopment("loud")
	assert.Error(t, err)
}

func TestNewDevelopment(t *testing.T) {
	log, err := NewDevelopment("warn")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
}
