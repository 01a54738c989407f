package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	cases := []struct {
		name   string
		level  string
		format string
		debug  bool
	}{
		{"json info", "info", "json", false},
		{"console debug", "debug", "console", true},
		{"unknown level falls back to info", "loud", "", false},
		{"empty level", "", "json", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logger, err := NewLogger(tc.level, tc.format, "winemap-test")
			require.NoError(t, err)
			assert.Equal(t, tc.debug, logger.Core().Enabled(zapcore.DebugLevel))
			assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
		})
	}
}
