package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/sync/errgroup"

	"days/internal/cache"
	"days/internal/config"
	"days/internal/db"
	"days/internal/gallery"
	"days/internal/geocoding"
	"days/internal/handlers"
	"days/internal/imagesearch"
	"days/internal/jobs"
	"days/internal/kv"
	"days/internal/metrics"
	"days/internal/models"
	"days/internal/pins"
	"days/internal/receipts"
	"days/internal/recorder"
	"days/internal/search"
	"days/internal/server"
	"days/internal/trending"
	"days/internal/workspace"
)

// logAggregator stands in for Postgres when DATABASE_URL is unset.
type logAggregator struct{}

func (logAggregator) Increment(_ context.Context, place models.PlaceKey, kind models.InteractionKind) error {
	slog.Debug("interaction counted without aggregator", "place", place, "kind", kind)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	catalog, err := config.LoadCatalog(cfg.CatalogFile)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	log.Printf("Catalog loaded: %d spots, %d cities", len(catalog.Spots), len(catalog.Cities))

	// Key/value storage for receipts and the gallery cache
	var (
		store    kv.Store
		sessions fiber.Storage
	)
	probes := map[string]handlers.Pinger{}
	if cfg.RedisURL != "" {
		r := kv.NewRedis(cfg.RedisURL)
		defer r.Close()
		store, sessions = r, r.Storage()
		probes["redis"] = r
		log.Println("Using Redis for receipts, cache and sessions")
	} else {
		store = kv.NewMemory(cfg.MemoryBudget)
		log.Printf("REDIS_URL not set; using in-memory storage (%d bytes)", cfg.MemoryBudget)
	}

	// Postgres for scores and stored galleries
	var agg recorder.Aggregator = logAggregator{}
	var (
		database *db.DB
		places   gallery.Store
		ranking  trending.Source
	)
	if cfg.DatabaseURL != "" {
		database, err = db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close()

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Println("Migrations completed successfully")

		if cfg.IsDev() {
			if err := database.SeedDevPlaces(ctx); err != nil {
				log.Printf("Warning: Failed to seed dev places: %v", err)
			}
		}
		agg, places, ranking = database, database, database
		probes["database"] = database
	} else {
		log.Println("DATABASE_URL not set; scores are not persisted")
	}

	metrics.Init(database)

	// Interaction counting
	receiptStore := receipts.New(store, store, receipts.Config{Location: cfg.ReceiptLocation()})
	rec := recorder.New(receiptStore, agg)

	// Imagery
	var images gallery.Searcher
	if cfg.UnsplashAccessKey != "" {
		images = imagesearch.New(imagesearch.Config{
			BaseURL:   cfg.UnsplashURL,
			AccessKey: cfg.UnsplashAccessKey,
		})
	} else {
		log.Println("UNSPLASH_ACCESS_KEY not set; galleries use stored and fallback images only")
	}
	galleryCache := cache.New[[]models.Image](store, cache.Config{
		Version: cfg.CacheVersion,
		TTL:     cfg.CacheTTL,
	})
	chain := gallery.NewChain(galleryCache, places, images, catalog.FallbackImages())

	// Places
	geocoder := geocoding.New(geocoding.Config{
		BaseURL:   cfg.NominatimURL,
		UserAgent: cfg.NominatimUserAgent,
		Synonyms:  geocoding.Synonyms(catalog.SynonymTable()),
	})
	normalizer := search.NewNormalizer(catalog, geocoder)
	scouter := pins.NewScouter(geocoder, normalizer, rec)
	spaces := workspace.NewManager(chain, receiptStore, workspace.Config{
		PinCapacity: cfg.PinCapacity,
		IdleTTL:     cfg.SessionTTL,
	})

	board := trending.NewBoard(ranking, catalog, chain)

	srv := server.New(cfg, sessions)
	if err := srv.RegisterRoutes(ctx, server.Deps{
		Recorder: rec,
		Spaces:   spaces,
		Gallery:  chain,
		Scouter:  scouter,
		Places:   normalizer,
		Board:    board,
		Probes:   probes,
	}); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		jobs.NewTrendingRefresher(board, cfg.TrendingInterval).Start(gctx)
		return nil
	})
	g.Go(func() error {
		jobs.NewWorkspaceSweeper(spaces, time.Minute).Start(gctx)
		return nil
	})
	g.Go(func() error {
		log.Printf("Server starting on %s", cfg.ServerAddr)
		return srv.Start()
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down server...")
		if err := srv.Shutdown(); err != nil {
			return err
		}
		rec.Wait()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Printf("Server error: %v", err)
		os.Exit(1)
	}
	log.Println("Server exited")
}
