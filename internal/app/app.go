// Package app wires the application's components together and runs the HTTP
// server. The binaries in cmd/ construct an App from config and hand it the
// process lifetime.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"meal-planner/internal/auth"
	"meal-planner/internal/clipper"
	"meal-planner/internal/config"
	"meal-planner/internal/database"
	"meal-planner/internal/generator"
	"meal-planner/internal/llm"
	"meal-planner/internal/meal"
	"meal-planner/internal/metrics"
	"meal-planner/internal/ratelimit"
	"meal-planner/internal/server"
	"meal-planner/internal/shopping"
)

// App holds the application's dependencies.
type App struct {
	db      *database.DB
	textGen llm.TextGenerator
	limiter *ratelimit.MemoryLimiter
	cfg     *config.Config

	Meals   *meal.Repository
	Engine  *shopping.Engine
	Metrics *metrics.Store

	httpServer *http.Server
}

// New opens the database, runs migrations, and builds every component the
// HTTP server needs. The caller owns the returned App and must Close it.
func New(cfg *config.Config, textGen llm.TextGenerator) (*App, error) {
	db, err := database.NewDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	mealRepo := meal.NewRepository(db.SQL)
	listStore := shopping.NewRepository(db.SQL)
	engine := shopping.NewEngine(listStore, mealRepo)
	metricsStore := metrics.NewStore(db.SQL)
	limiter := ratelimit.NewMemoryLimiter(ratelimit.DefaultSweepInterval)
	verifier := auth.NewVerifier(cfg.JWTSecret)

	srv := server.New(
		verifier,
		engine,
		mealRepo,
		generator.New(textGen),
		clipper.NewClipper(textGen, mealRepo),
		limiter,
		metricsStore,
		cfg,
	)

	return &App{
		db:      db,
		textGen: textGen,
		limiter: limiter,
		cfg:     cfg,
		Meals:   mealRepo,
		Engine:  engine,
		Metrics: metricsStore,
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Listening on %s", a.httpServer.Addr)
		errCh <- a.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}

// Close releases the App's resources.
func (a *App) Close() {
	a.limiter.Close()
	if err := a.db.Close(); err != nil {
		log.Printf("failed to close database: %v", err)
	}
}
