package meal

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mealdb "meal-planner/internal/meal/db"
)

// Repository handles persistence of saved meals. The full meal is stored as
// a JSON column; id and name are kept as real columns because the shopping
// engine resolves ids to display names.
type Repository struct {
	queries *mealdb.Queries
	db      *sql.DB
}

// NewRepository creates a new saved-meal repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: mealdb.New(d),
		db:      d,
	}
}

// Save stores a meal for a user, assigning an id if the meal has none, and
// returns the stored meal.
func (r *Repository) Save(ctx context.Context, userID string, m Meal) (*Meal, error) {
	if m.ID == "" {
		id, err := newID()
		if err != nil {
			return nil, err
		}
		m.ID = id
	}

	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal meal: %w", err)
	}

	err = r.queries.InsertSavedMeal(ctx, mealdb.InsertSavedMealParams{
		ID:          m.ID,
		UserID:      userID,
		Name:        m.Name,
		Data:        string(data),
		IsFavourite: boolToInt(m.IsFavourite),
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert saved meal: %w", err)
	}
	return &m, nil
}

// SaveAll stores a batch of meals, typically a generation result the user
// chose to keep.
func (r *Repository) SaveAll(ctx context.Context, userID string, meals []Meal) ([]Meal, error) {
	saved := make([]Meal, 0, len(meals))
	for _, m := range meals {
		s, err := r.Save(ctx, userID, m)
		if err != nil {
			return saved, err
		}
		saved = append(saved, *s)
	}
	return saved, nil
}

// MealByID retrieves one of the user's saved meals, or (nil, nil) if it does
// not exist. Satisfies shopping.MealLookup.
func (r *Repository) MealByID(ctx context.Context, userID, mealID string) (*Meal, error) {
	row, err := r.queries.GetSavedMeal(ctx, mealdb.GetSavedMealParams{ID: mealID, UserID: userID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get saved meal: %w", err)
	}
	return rowToMeal(row)
}

// List retrieves all of a user's saved meals, newest first.
func (r *Repository) List(ctx context.Context, userID string) ([]Meal, error) {
	rows, err := r.queries.ListSavedMeals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved meals: %w", err)
	}
	meals := make([]Meal, 0, len(rows))
	for _, row := range rows {
		m, err := rowToMeal(row)
		if err != nil {
			return nil, err
		}
		meals = append(meals, *m)
	}
	return meals, nil
}

// Delete removes one of the user's saved meals. Deleting an absent meal is
// not an error.
func (r *Repository) Delete(ctx context.Context, userID, mealID string) error {
	err := r.queries.DeleteSavedMeal(ctx, mealdb.DeleteSavedMealParams{ID: mealID, UserID: userID})
	if err != nil {
		return fmt.Errorf("failed to delete saved meal: %w", err)
	}
	return nil
}

// SetFavourite flags or unflags a saved meal as a favourite.
func (r *Repository) SetFavourite(ctx context.Context, userID, mealID string, favourite bool) error {
	err := r.queries.SetSavedMealFavourite(ctx, mealdb.SetSavedMealFavouriteParams{
		IsFavourite: boolToInt(favourite),
		ID:          mealID,
		UserID:      userID,
	})
	if err != nil {
		return fmt.Errorf("failed to update favourite flag: %w", err)
	}
	return nil
}

func rowToMeal(row mealdb.SavedMeal) (*Meal, error) {
	var m Meal
	if err := json.Unmarshal([]byte(row.Data), &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal saved meal %s: %w", row.ID, err)
	}
	m.ID = row.ID
	m.IsFavourite = row.IsFavourite != 0
	return &m, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func newID() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("failed to generate meal id: %w", err)
	}
	return hex.EncodeToString(b[:]), nil
}
