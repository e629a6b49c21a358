package server

import (
	"encoding/json"
	"log"
	"net/http"

	"meal-planner/internal/meal"
)

func (s *Server) handleListMeals(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	meals, err := s.meals.List(r.Context(), userID)
	if err != nil {
		log.Printf("failed to list meals for user %s: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if meals == nil {
		meals = []meal.Meal{}
	}
	writeJSON(w, http.StatusOK, meals)
}

func (s *Server) handleSaveMeals(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var meals []meal.Meal
	if err := json.NewDecoder(r.Body).Decode(&meals); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(meals) == 0 {
		writeError(w, http.StatusBadRequest, "at least one meal is required")
		return
	}
	for _, m := range meals {
		if err := m.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	saved, err := s.meals.SaveAll(r.Context(), userID, meals)
	if err != nil {
		log.Printf("failed to save meals for user %s: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleDeleteMeal(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	if err := s.meals.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		log.Printf("failed to delete meal for user %s: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetFavourite(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		Favourite bool `json:"favourite"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.meals.SetFavourite(r.Context(), userID, r.PathValue("id"), req.Favourite); err != nil {
		log.Printf("failed to update favourite for user %s: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
