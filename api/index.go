package handler

import (
	"net/http"
	"sync"

	"leonine/config"
	"leonine/di"
	"leonine/shared/logger"
	"leonine/shared/timezone"
	transport "leonine/transport/http"

	"github.com/rs/zerolog/log"
)

var (
	app  *transport.HTTP
	once sync.Once
)

// Handler is the serverless entrypoint; the app is built once per instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()
		logger.SetLogLevel(cfg)
		logger.SetComponent(cfg, "serverless")

		if err := timezone.Init(cfg.App.Timezone); err != nil {
			log.Warn().Err(err).Msg("Falling back to UTC")
		}

		app = di.InitializeService()
	})

	r.RequestURI = r.URL.String()

	app.ServeHTTP(w, r)
}
