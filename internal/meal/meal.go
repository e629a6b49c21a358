package meal

import (
	"fmt"
	"strings"
)

// IngredientCategory groups ingredients by supermarket aisle.
type IngredientCategory string

const (
	CategoryProduce       IngredientCategory = "produce"
	CategoryDairy         IngredientCategory = "dairy"
	CategoryMeat          IngredientCategory = "meat"
	CategoryFish          IngredientCategory = "fish"
	CategoryStorecupboard IngredientCategory = "storecupboard"
	CategoryFrozen        IngredientCategory = "frozen"
	CategoryBakery        IngredientCategory = "bakery"
)

// Categories lists every valid category in display order.
var Categories = []IngredientCategory{
	CategoryProduce,
	CategoryDairy,
	CategoryMeat,
	CategoryFish,
	CategoryBakery,
	CategoryFrozen,
	CategoryStorecupboard,
}

// Valid reports whether c is a known category.
func (c IngredientCategory) Valid() bool {
	switch c {
	case CategoryProduce, CategoryDairy, CategoryMeat, CategoryFish,
		CategoryStorecupboard, CategoryFrozen, CategoryBakery:
		return true
	}
	return false
}

// Ingredient is one line of a meal's shopping needs. Quantity is free text
// with the unit included ("2 medium", "200g"); quantities from different
// meals are never combined.
type Ingredient struct {
	Name     string             `json:"name"`
	Quantity string             `json:"quantity"`
	Category IngredientCategory `json:"category"`
}

// MealType is the slot a meal is eaten in.
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
)

// Valid reports whether t is a known meal type.
func (t MealType) Valid() bool {
	return t == MealTypeBreakfast || t == MealTypeLunch || t == MealTypeDinner
}

// Season is a quarter of the culinary year.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

// Valid reports whether s is a known season.
func (s Season) Valid() bool {
	return s == SeasonSpring || s == SeasonSummer || s == SeasonAutumn || s == SeasonWinter
}

// Meal is a single meal suggestion, either generated by the LLM or saved by
// a user. PriceLevel runs 1 (economic) to 3 (fancy).
type Meal struct {
	ID           string       `json:"id,omitempty"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	MealType     MealType     `json:"mealType"`
	PriceLevel   int          `json:"priceLevel"`
	Complexity   string       `json:"complexity,omitempty"`
	PrepTime     int          `json:"prepTime"`
	Servings     int          `json:"servings"`
	Seasons      []Season     `json:"seasons"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
	IsFavourite  bool         `json:"isFavourite,omitempty"`
}

// Validate checks that a meal has the fields the rest of the system relies
// on. Used both on LLM output and on client payloads.
func (m *Meal) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("meal name is required")
	}
	if !m.MealType.Valid() {
		return fmt.Errorf("invalid meal type %q", m.MealType)
	}
	if m.PriceLevel < 1 || m.PriceLevel > 3 {
		return fmt.Errorf("price level must be 1-3, got %d", m.PriceLevel)
	}
	if m.Servings < 1 {
		return fmt.Errorf("servings must be positive, got %d", m.Servings)
	}
	if len(m.Ingredients) == 0 {
		return fmt.Errorf("meal %q has no ingredients", m.Name)
	}
	for i, ing := range m.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return fmt.Errorf("ingredient %d of %q has no name", i, m.Name)
		}
		if !ing.Category.Valid() {
			return fmt.Errorf("ingredient %q has invalid category %q", ing.Name, ing.Category)
		}
	}
	for _, s := range m.Seasons {
		if !s.Valid() {
			return fmt.Errorf("invalid season %q", s)
		}
	}
	return nil
}
