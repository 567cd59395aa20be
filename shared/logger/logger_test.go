package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"venuebook/config"
	"venuebook/shared/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreLogger(t *testing.T) {
	t.Helper()

	originalLogger := log.Logger
	originalLevel := zerolog.GlobalLevel()
	originalTimeFormat := zerolog.TimeFieldFormat

	t.Cleanup(func() {
		log.Logger = originalLogger
		zerolog.SetGlobalLevel(originalLevel)
		zerolog.TimeFieldFormat = originalTimeFormat
	})
}

func TestNew(t *testing.T) {
	restoreLogger(t)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	tests := []struct {
		name        string
		env         string
		appName     string
		wantJSON    bool
		wantService string
	}{
		{name: "json outside development", env: "production", appName: "venue-api", wantJSON: true, wantService: "venue-api"},
		{name: "default service name", env: "staging", wantJSON: true, wantService: "venuebook"},
		{name: "console in development", env: "development", appName: "venue-api"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Server.Env = tt.env
			cfg.App.Name = tt.appName

			var buf bytes.Buffer

			l := logger.New(&buf, cfg)
			l.Info().Str("venue_id", "venue-1").Msg("venue approved")

			var line map[string]any

			err := json.Unmarshal(buf.Bytes(), &line)
			if !tt.wantJSON {
				assert.Error(t, err)
				assert.Contains(t, buf.String(), "venue approved")

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantService, line["service"])
			assert.Equal(t, "venue-1", line["venue_id"])
			assert.Equal(t, "venue approved", line["message"])
			assert.Contains(t, line, "time")
		})
	}
}

func TestInitLogger(t *testing.T) {
	restoreLogger(t)

	logger.InitLogger(&config.Config{})

	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	restoreLogger(t)

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(errors.New("booking insert failed"))

	assert.Contains(t, buf.String(), "booking insert failed")
}

func TestSetLogLevel(t *testing.T) {
	restoreLogger(t)

	tests := []struct {
		logLevel string
		want     zerolog.Level
	}{
		{logLevel: "trace", want: zerolog.TraceLevel},
		{logLevel: "debug", want: zerolog.DebugLevel},
		{logLevel: "warn", want: zerolog.WarnLevel},
		{logLevel: "error", want: zerolog.ErrorLevel},
		{logLevel: "disabled", want: zerolog.Disabled},
		{logLevel: "", want: zerolog.InfoLevel},
		{logLevel: "loud", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			log.Logger = zerolog.Nop()

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}
