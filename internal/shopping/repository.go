package shopping

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	shoppingdb "meal-planner/internal/shopping/db"
)

// Repository is the sqlite-backed Store. Each user's list is one row; the
// meal ids and items are stored as JSON columns and the whole row is
// replaced on every write.
type Repository struct {
	queries *shoppingdb.Queries
	db      *sql.DB
}

// NewRepository creates a new shopping list repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: shoppingdb.New(d),
		db:      d,
	}
}

// Get retrieves the shopping list for a user, or (nil, nil) if none exists.
func (r *Repository) Get(ctx context.Context, userID string) (*List, error) {
	row, err := r.queries.GetShoppingList(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shopping list: %w", err)
	}

	list := &List{
		UserID:    row.UserID,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if err := json.Unmarshal([]byte(row.MealIds), &list.MealIDs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal meal ids: %w", err)
	}
	if err := json.Unmarshal([]byte(row.Items), &list.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shopping list items: %w", err)
	}
	return list, nil
}

// Put stores the full list for its user, replacing any previous row.
func (r *Repository) Put(ctx context.Context, list *List) error {
	mealIDsJSON, err := json.Marshal(list.MealIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal meal ids: %w", err)
	}
	itemsJSON, err := json.Marshal(list.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal shopping list items: %w", err)
	}

	err = r.queries.UpsertShoppingList(ctx, shoppingdb.UpsertShoppingListParams{
		UserID:    list.UserID,
		MealIds:   string(mealIDsJSON),
		Items:     string(itemsJSON),
		CreatedAt: list.CreatedAt,
		UpdatedAt: list.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert shopping list: %w", err)
	}
	return nil
}

// Delete removes the user's shopping list row. Deleting an absent row is
// not an error.
func (r *Repository) Delete(ctx context.Context, userID string) error {
	if err := r.queries.DeleteShoppingList(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete shopping list: %w", err)
	}
	return nil
}
