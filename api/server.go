package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-studio-backend/auth"
	"github.com/rpupo63/portfolio-studio-backend/config"
	"github.com/rpupo63/portfolio-studio-backend/content"
	"github.com/rpupo63/portfolio-studio-backend/editor"
	"github.com/rpupo63/portfolio-studio-backend/portfolio"
	"github.com/rpupo63/portfolio-studio-backend/services"
	"github.com/rpupo63/portfolio-studio-backend/skills"
	"github.com/rs/zerolog/log"
)

// DefaultMaxUploadBytes caps multipart uploads when no limit is configured.
const DefaultMaxUploadBytes = 100 << 20

// Dependencies are the services the HTTP layer exposes.
type Dependencies struct {
	Auth           *auth.Service
	Projects       *portfolio.Service
	Likes          *portfolio.LikeService
	Editors        *editor.Registry
	Content        *content.Store
	Skills         *skills.Service
	Uploader       mediaUploader
	Importer       *services.Importer
	MaxUploadBytes int64
	// LocalMediaDir, when set, is served under /media/.
	LocalMediaDir string
}

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(c map[string]string, deps Dependencies) (Server, error) {
	if deps.Auth == nil || deps.Projects == nil || deps.Editors == nil {
		return Server{}, errors.New("api: missing required dependencies")
	}

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	router := newRouter(deps, withConfig(c), withStartupTime(startupTime))

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  config.GetDuration(c, "READ_TIMEOUT_SECONDS", time.Second, 180),
		WriteTimeout: config.GetDuration(c, "WRITE_TIMEOUT_SECONDS", time.Second, 180),
		IdleTimeout:  config.GetDuration(c, "IDLE_TIMEOUT_SECONDS", time.Second, 180),
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(deps Dependencies, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	if deps.MaxUploadBytes <= 0 {
		deps.MaxUploadBytes = DefaultMaxUploadBytes
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)

	acceptedOrigins := config.GetList(router.config, "ACCEPTED_ORIGINS")
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(corsMiddleware(acceptedOrigins))

	handlers := initializeHandlers(deps)
	setupRoutes(chiRouter, handlers, newAuthMiddleware(deps.Auth))

	if deps.LocalMediaDir != "" {
		chiRouter.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(deps.LocalMediaDir))))
	}

	chiRouter.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		NewResponder(log.Logger).WriteJSON(w, map[string]any{
			"status": "ok",
			"uptime": time.Since(router.startupTime).Round(time.Second).String(),
		})
	})

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
