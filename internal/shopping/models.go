package shopping

import (
	"strings"
	"time"

	"meal-planner/internal/meal"
)

// Item is one purchasable line of a shopping list: an ingredient plus the
// list-owned state (ticked off or not, and which meals asked for it).
type Item struct {
	Name      string                  `json:"name"`
	Quantity  string                  `json:"quantity"`
	Category  meal.IngredientCategory `json:"category"`
	Checked   bool                    `json:"checked"`
	FromMeals []string                `json:"fromMeals"`
}

// Key returns the item's identity key. Two ingredients with the same key are
// the same line item regardless of which meal they came from.
func (it Item) Key() ItemKey {
	return ItemKey{Name: strings.ToLower(it.Name), Category: it.Category}
}

// ItemKey identifies a line item within one list: name lowercased plus
// category. "Carrot"/produce and "carrot"/produce collide; "cream"/dairy and
// "cream"/storecupboard do not.
type ItemKey struct {
	Name     string
	Category meal.IngredientCategory
}

// List is the single aggregated shopping list a user has, built from the
// meals they currently have selected. A list with no contributing meals is
// never stored: removing the last meal deletes the record instead.
type List struct {
	UserID    string    `json:"userId"`
	MealIDs   []string  `json:"mealIds"`
	Items     []Item    `json:"items"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ContainsMeal reports whether mealID already contributes to the list.
func (l *List) ContainsMeal(mealID string) bool {
	for _, id := range l.MealIDs {
		if id == mealID {
			return true
		}
	}
	return false
}
