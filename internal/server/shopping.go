package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"meal-planner/internal/shopping"
)

type shoppingListResponse struct {
	Data *shopping.List `json:"data"`
}

func (s *Server) handleGetShoppingList(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	list, err := s.engine.Get(r.Context(), userID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shoppingListResponse{Data: list})
}

func (s *Server) handleClearShoppingList(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	if err := s.engine.Clear(r.Context(), userID); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shoppingListResponse{Data: nil})
}

func (s *Server) handleAddMealToList(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		MealID string `json:"mealId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MealID == "" {
		writeError(w, http.StatusBadRequest, "mealId is required")
		return
	}

	m, err := s.meals.MealByID(r.Context(), userID, req.MealID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if m == nil {
		writeError(w, http.StatusNotFound, "meal not found")
		return
	}

	list, err := s.engine.AddMeal(r.Context(), userID, m)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shoppingListResponse{Data: list})
}

func (s *Server) handleRemoveMealFromList(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	list, err := s.engine.RemoveMeal(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shoppingListResponse{Data: list})
}

func (s *Server) handleToggleItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "item index must be a number")
		return
	}

	var req struct {
		Checked bool `json:"checked"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.engine.ToggleItem(r.Context(), userID, index, req.Checked); err != nil {
		writeEngineError(w, err)
		return
	}

	list, err := s.engine.Get(r.Context(), userID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shoppingListResponse{Data: list})
}
