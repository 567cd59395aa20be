package logger

import (
	"io"
	"os"
	"time"
	"venuebook/config"
	"venuebook/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultService = "venuebook"

// New builds a logger that writes JSON lines tagged with the service name.
// Development environments get the console writer instead.
func New(w io.Writer, cfg *config.Config) zerolog.Logger {
	if cfg.Server.Env == constant.ServerEnvDevelopment {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	service := cfg.App.Name
	if service == constant.Empty {
		service = defaultService
	}

	return zerolog.New(w).With().Timestamp().Str("service", service).Logger()
}

func InitLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = New(os.Stdout, cfg)
	log.Trace().Msg("Zerolog initialized.")
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel applies SERVER_LOG_LEVEL. Empty or unknown values fall back to info.
func SetLogLevel(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)

	switch {
	case err != nil:
		log.Warn().Str("loglevel", cfg.Server.LogLevel).Msg("Unknown log level, using info.")

		level = zerolog.InfoLevel
	case level == zerolog.NoLevel:
		level = zerolog.InfoLevel
	}

	log.Trace().Str("loglevel", level.String()).Msg("Log level set.")

	zerolog.SetGlobalLevel(level)
}
