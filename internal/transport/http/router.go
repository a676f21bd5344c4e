package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// RouterConfig lists what the router needs. Metrics and Observer may be nil;
// signature checking is enabled when TwilioAuthToken is set.
type RouterConfig struct {
	Chat            MessageHandler
	Logger          zerolog.Logger
	Metrics         http.Handler
	Observer        RequestObserver
	TwilioAuthToken string
	PublicBaseURL   string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(cfg.Logger, cfg.Observer))

	r.NotFound(NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(MethodNotAllowedHandler().ServeHTTP)

	r.Get("/health", HealthHandler)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Group(func(r chi.Router) {
		if cfg.TwilioAuthToken != "" {
			r.Use(RequireTwilioSignature(cfg.TwilioAuthToken, cfg.PublicBaseURL, cfg.Logger))
		}
		r.Method(http.MethodPost, "/webhook/twilio", HandleTwilioWebhook(cfg.Chat, cfg.Logger))
	})

	return r
}
