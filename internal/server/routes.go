package server

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"days/internal/handlers"
	"days/internal/handlers/api"
	"days/internal/middleware"
	"days/internal/pins"
	"days/internal/workspace"
)

// Deps are the services the routes are wired to.
type Deps struct {
	Recorder api.Recorder
	Spaces   *workspace.Manager
	Gallery  api.Thumbnailer
	Scouter  *pins.Scouter
	Places   api.PlaceResolver
	Board    api.Board
	Probes   map[string]handlers.Pinger
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, d Deps) error {
	var tabs middleware.TabTracker
	if d.Spaces != nil {
		tabs = d.Spaces
	}
	visitors := middleware.NewVisitorMiddleware(s.Cfg.TLSEnabled || !s.Cfg.IsDev(), tabs)

	probeHandler := handlers.NewProbeHandler(d.Probes)
	interactionHandler := api.NewInteractionHandler(d.Recorder, d.Places)
	galleryHandler := api.NewGalleryHandler(d.Spaces, d.Gallery, d.Places)
	pinHandler := api.NewPinHandler(d.Spaces, d.Scouter, d.Places, d.Recorder)
	searchHandler := api.NewSearchHandler(d.Places)
	trendingHandler := api.NewTrendingHandler(d.Board)
	sessionHandler := api.NewSessionHandler(d.Spaces)
	s.waiters = append(s.waiters, pinHandler)

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Optional sign-in
	if s.Cfg.IsOIDCEnabled() {
		authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg)
		if err != nil {
			log.Printf("Warning: Failed to initialize OIDC auth: %v", err)
			log.Println("Sign-in is disabled; chats and saves are counted per device.")
		} else {
			s.App.Get("/auth/login", authHandler.Login)
			s.App.Get("/auth/callback", authHandler.Callback)
			s.App.Get("/auth/logout", authHandler.Logout)
		}
	} else {
		log.Println("OIDC sign-in is disabled. Set OIDC_ISSUER to enable.")
	}

	// JSON API; every route knows its visitor
	r := s.App.Group("/api", visitors.Identify)

	r.Post("/interactions", interactionHandler.Create)

	r.Get("/gallery", galleryHandler.Gallery)
	r.Get("/thumbnail", galleryHandler.Thumbnail)

	r.Get("/pins", pinHandler.List)
	r.Post("/pins/scout", pinHandler.Scout)
	r.Post("/pins/select", pinHandler.SelectPlace)
	r.Post("/pins/:id/select", pinHandler.Select)
	r.Post("/pins/:id/bookmark", pinHandler.Bookmark)
	r.Delete("/pins/:id", pinHandler.Delete)
	r.Delete("/pins", pinHandler.Clear)

	r.Get("/search", searchHandler.Search)
	r.Get("/trending", trendingHandler.List)

	r.Delete("/session", sessionHandler.End)

	return nil
}
