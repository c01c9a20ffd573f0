package logging

import (
	"testing"

	"github.com/fungccc/HKMortgage2026/internal/calculation"
	"github.com/fungccc/HKMortgage2026/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"INFO", zapcore.InfoLevel, false},
		{"", zapcore.InfoLevel, false},
		{"warning", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{" Warn ", zapcore.WarnLevel, false},
		{"dpanic", zapcore.DPanicLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.ErrorContains(t, err, "unknown log level", tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestNew(t *testing.T) {
	logger, err := New("debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = New("nope")
	assert.Error(t, err)

	console, err := NewConsole(false)
	require.NoError(t, err)
	assert.False(t, console.Core().Enabled(zapcore.InfoLevel))
}

func TestSugaredLoggerDrivesSimulator(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sim := calculation.NewMortgageSimulator()

	var l calculation.Logger = zap.New(core).Sugar()
	sim.SetLogger(l)

	_, err := sim.Simulate(config.DefaultParameters())
	require.NoError(t, err)
	assert.NotZero(t, logs.FilterMessageSnippet("simulation complete").Len())
}
