package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"meal-planner/internal/generator"
	"meal-planner/internal/meal"
)

type generateResponse struct {
	Meals []meal.Meal `json:"meals"`
}

func (s *Server) handleGenerateMeals(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	res := s.limiter.Check("generate:"+userID, s.cfg.GenerateLimit, s.cfg.GenerateWindow)
	w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", res.Limit))
	w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", res.Remaining))
	w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", res.ResetAt.Unix()))
	if !res.Allowed {
		retryAfter := int(time.Until(res.ResetAt).Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
		return
	}

	var params generator.Params
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := params.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.generator.Generate(r.Context(), params)
	if err != nil {
		log.Printf("meal generation failed for user %s: %v", userID, err)
		writeError(w, http.StatusBadGateway, "meal generation failed")
		return
	}
	s.recordUsage(result.Meta)

	writeJSON(w, http.StatusOK, generateResponse{Meals: result.Meals})
}

func (s *Server) handleClip(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	result, err := s.clipper.ClipURL(r.Context(), userID, req.URL)
	if err != nil {
		log.Printf("recipe clip failed for user %s: %v", userID, err)
		writeError(w, http.StatusBadGateway, "failed to import recipe")
		return
	}
	s.recordUsage(result.Meta)

	writeJSON(w, http.StatusOK, result.Meal)
}
