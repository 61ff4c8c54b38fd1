package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/vibhusapra/Narrate/internal/api/handlers"
	"github.com/vibhusapra/Narrate/internal/api/middleware"
	"github.com/vibhusapra/Narrate/internal/config"
	"github.com/vibhusapra/Narrate/internal/tts"
)

type Router struct {
	mux        *chi.Mux
	cfg        *config.Config
	dispatcher *tts.Dispatcher
}

func NewRouter(dispatcher *tts.Dispatcher, cfg *config.Config) *Router {
	return &Router{
		mux:        chi.NewRouter(),
		cfg:        cfg,
		dispatcher: dispatcher,
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(rt.cfg.CORS.AllowedOrigins))

	rl := middleware.NewRateLimiter(rt.cfg.RateLimit.RPS, rt.cfg.RateLimit.Burst)
	r.Use(rl.Limit)

	ttsH := handlers.NewTTSHandler(rt.dispatcher, rt.cfg.TTS)
	healthH := handlers.NewHealthHandler(rt.cfg)
	manuscriptH := handlers.NewManuscriptHandler()

	r.Route("/api", func(r chi.Router) {
		r.Post("/tts", ttsH.Synthesize)
		r.Get("/providers", ttsH.Providers)
		r.Get("/health", healthH.Health)
		r.Post("/extract", manuscriptH.Extract)
		r.Post("/segment", manuscriptH.Segment)
	})

	// Bundled UI
	r.Get("/", Index)
	r.Handle("/static/*", StaticHandler())

	return r
}
