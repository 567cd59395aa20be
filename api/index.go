package handler

import (
	"net/http"
	"sync"
	"venuebook/config"
	"venuebook/di"
	"venuebook/shared/logger"
	"venuebook/shared/timezone"

	"github.com/rs/zerolog/log"
)

var (
	app     http.Handler
	appOnce sync.Once
)

// Handler serves the API from a serverless function. The dependency graph is
// built on the first request and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	appOnce.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)
		logger.SetLogLevel(cfg)

		if err := timezone.Init(cfg.App.Timezone); err != nil {
			log.Warn().Err(err).Msg("Falling back to UTC")
		}

		app = di.InitializeService()
	})

	r.RequestURI = r.URL.String()

	app.ServeHTTP(w, r)
}
