// Package server exposes the application over HTTP. Handlers resolve the
// authenticated user, call the engines, and translate sentinel errors into
// status codes; all request and response bodies are JSON.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"meal-planner/internal/auth"
	"meal-planner/internal/clipper"
	"meal-planner/internal/config"
	"meal-planner/internal/generator"
	"meal-planner/internal/meal"
	"meal-planner/internal/ratelimit"
	"meal-planner/internal/shared"
	"meal-planner/internal/shopping"
)

// MealStore is the slice of the saved-meal repository the handlers use.
type MealStore interface {
	SaveAll(ctx context.Context, userID string, meals []meal.Meal) ([]meal.Meal, error)
	MealByID(ctx context.Context, userID, mealID string) (*meal.Meal, error)
	List(ctx context.Context, userID string) ([]meal.Meal, error)
	Delete(ctx context.Context, userID, mealID string) error
	SetFavourite(ctx context.Context, userID, mealID string, favourite bool) error
}

// UsageRecorder records LLM execution metadata. Recording failures are
// logged, never surfaced to the client.
type UsageRecorder interface {
	RecordMeta(meta shared.AgentMeta) error
}

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	verifier  *auth.Verifier
	engine    *shopping.Engine
	meals     MealStore
	generator *generator.Generator
	clipper   *clipper.Clipper
	limiter   ratelimit.Limiter
	metrics   UsageRecorder
	cfg       *config.Config
}

// New creates a Server over its collaborators.
func New(
	verifier *auth.Verifier,
	engine *shopping.Engine,
	meals MealStore,
	gen *generator.Generator,
	clip *clipper.Clipper,
	limiter ratelimit.Limiter,
	metricsStore UsageRecorder,
	cfg *config.Config,
) *Server {
	return &Server{
		verifier:  verifier,
		engine:    engine,
		meals:     meals,
		generator: gen,
		clipper:   clip,
		limiter:   limiter,
		metrics:   metricsStore,
		cfg:       cfg,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("POST /api/generate-meals", s.handleGenerateMeals)

	mux.HandleFunc("GET /api/shopping-list", s.handleGetShoppingList)
	mux.HandleFunc("DELETE /api/shopping-list", s.handleClearShoppingList)
	mux.HandleFunc("POST /api/shopping-list/meals", s.handleAddMealToList)
	mux.HandleFunc("DELETE /api/shopping-list/meals/{id}", s.handleRemoveMealFromList)
	mux.HandleFunc("PATCH /api/shopping-list/items/{index}", s.handleToggleItem)

	mux.HandleFunc("GET /api/meals", s.handleListMeals)
	mux.HandleFunc("POST /api/meals", s.handleSaveMeals)
	mux.HandleFunc("DELETE /api/meals/{id}", s.handleDeleteMeal)
	mux.HandleFunc("PATCH /api/meals/{id}/favourite", s.handleSetFavourite)

	mux.HandleFunc("POST /api/clip", s.handleClip)

	return mux
}

// requireUser resolves the authenticated user or writes a 401 response.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, err := s.verifier.UserFromRequest(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return "", false
	}
	return userID, true
}

func (s *Server) recordUsage(meta shared.AgentMeta) {
	if s.metrics == nil {
		return
	}
	if err := s.metrics.RecordMeta(meta); err != nil {
		log.Printf("failed to record usage metrics: %v", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeEngineError maps shopping engine sentinels onto status codes.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shopping.ErrInvalidMeal):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, shopping.ErrMealAlreadyInList):
		writeError(w, http.StatusConflict, "meal is already in the shopping list")
	case errors.Is(err, shopping.ErrMealNotInList):
		writeError(w, http.StatusNotFound, "meal is not in the shopping list")
	case errors.Is(err, shopping.ErrMealNotFound):
		writeError(w, http.StatusNotFound, "meal not found")
	case errors.Is(err, shopping.ErrListNotFound):
		writeError(w, http.StatusNotFound, "shopping list not found")
	default:
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
