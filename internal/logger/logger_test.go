package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Level(t *testing.T) {
	tests := []struct {
		name        string
		development bool
		level       string
		want        zapcore.Level
	}{
		{"production debug", false, "debug", zapcore.DebugLevel},
		{"development warn", true, "warn", zapcore.WarnLevel},
		{"unknown falls back to info", false, "chatty", zapcore.InfoLevel},
		{"empty falls back to info", true, "", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.development, tt.level)
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, log.Core().Enabled(tt.want-1))
			}
		})
	}
}
