// Package generator turns a user's planning parameters into localized meal
// suggestions via the LLM. It owns the prompt, the strict parsing of the
// model's JSON, and validation of every suggested meal.
package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"meal-planner/internal/llm"
	"meal-planner/internal/meal"
	"meal-planner/internal/shared"
)

// mealCount is how many suggestions one generation asks for.
const mealCount = 10

// Params are the user's constraints for one generation request.
type Params struct {
	Season              meal.Season     `json:"season"`
	MealTypes           []meal.MealType `json:"mealTypes"`
	Budget              int             `json:"budget"`
	HouseholdSize       int             `json:"householdSize"`
	DietaryRequirements []string        `json:"dietaryRequirements,omitempty"`
	ExcludeIngredients  []string        `json:"excludeIngredients,omitempty"`
	CountryCode         string          `json:"countryCode,omitempty"`
}

// Validate checks the request constraints before any LLM call is made.
func (p *Params) Validate() error {
	if !p.Season.Valid() {
		return fmt.Errorf("invalid season %q", p.Season)
	}
	if len(p.MealTypes) == 0 {
		return fmt.Errorf("at least one meal type is required")
	}
	for _, t := range p.MealTypes {
		if !t.Valid() {
			return fmt.Errorf("invalid meal type %q", t)
		}
	}
	if p.Budget < 1 || p.Budget > 3 {
		return fmt.Errorf("budget must be 1-3, got %d", p.Budget)
	}
	if p.HouseholdSize < 1 || p.HouseholdSize > 12 {
		return fmt.Errorf("household size must be 1-12, got %d", p.HouseholdSize)
	}
	return nil
}

// Result carries the generated meals plus the execution metadata recorded
// by the metrics store.
type Result struct {
	Meals []meal.Meal
	Meta  shared.AgentMeta
}

// Generator produces meal suggestions with a text-generation model.
type Generator struct {
	textGen llm.TextGenerator
}

// New creates a Generator over the given text generator.
func New(textGen llm.TextGenerator) *Generator {
	return &Generator{textGen: textGen}
}

var budgetDescriptions = map[int]string{
	1: "economic (budget-friendly ingredients, keeping costs low)",
	2: "mid-range (good quality everyday ingredients, balanced cost)",
	3: "fancy (premium ingredients, special occasion worthy)",
}

// Generate asks the model for suggestions matching params and validates the
// response. Partial results are never returned: one malformed meal fails
// the whole generation.
func (g *Generator) Generate(ctx context.Context, params Params) (Result, error) {
	if err := params.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid generation params: %w", err)
	}

	start := time.Now()
	resp, err := g.textGen.GenerateContent(ctx, buildPrompt(params))
	meta := shared.AgentMeta{
		AgentName: "Generator",
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	}
	if err != nil {
		return Result{Meta: meta}, fmt.Errorf("meal generation failed: %w", err)
	}

	var raw struct {
		Meals []meal.Meal `json:"meals"`
	}
	if err := json.Unmarshal([]byte(resp.Content), &raw); err != nil {
		return Result{Meta: meta}, fmt.Errorf("failed to parse generation response: %w. Response: %s", err, resp.Content)
	}
	if len(raw.Meals) == 0 {
		return Result{Meta: meta}, fmt.Errorf("generation returned no meals")
	}
	for i := range raw.Meals {
		if err := raw.Meals[i].Validate(); err != nil {
			return Result{Meta: meta}, fmt.Errorf("generated meal %d is invalid: %w", i, err)
		}
	}

	return Result{Meals: raw.Meals, Meta: meta}, nil
}

func buildPrompt(params Params) string {
	region := regionFor(params.CountryCode)

	mealTypes := make([]string, len(params.MealTypes))
	for i, t := range params.MealTypes {
		mealTypes[i] = string(t)
	}
	dietary := "none"
	if len(params.DietaryRequirements) > 0 {
		dietary = strings.Join(params.DietaryRequirements, ", ")
	}
	exclude := "none"
	if len(params.ExcludeIngredients) > 0 {
		exclude = strings.Join(params.ExcludeIngredients, ", ")
	}

	return fmt.Sprintf(`You are a local meal planning assistant. Generate exactly %d meal suggestions that would appeal to home cooks in %s.

CONTEXT:
- Current season: %s
- Meal types needed: %s
- Budget level: %s
- Servings per meal: %d
- Dietary requirements: %s
- Ingredients to avoid: %s

SEASONAL INGREDIENTS TO PRIORITISE FOR %s:
%s

REQUIREMENTS:
1. Use ingredients commonly available in local supermarkets (%s)
2. Prioritise seasonal produce for %s in %s
3. Match the budget level exactly - be realistic about costs
4. Include a good mix of the requested meal types (%s)
5. Vary the cuisines and cooking styles - don't make everything similar
6. Be realistic about prep times for home cooks
7. Make instructions clear and achievable for everyday cooking

Return ONLY valid JSON matching this exact structure (no markdown, no explanation):
{
  "meals": [
    {
      "name": "string",
      "description": "string (1-2 sentences describing the dish)",
      "mealType": "breakfast" | "lunch" | "dinner",
      "priceLevel": 1 | 2 | 3,
      "prepTime": number (total time in minutes including cooking),
      "servings": %d,
      "seasons": ["%s"],
      "ingredients": [
        {
          "name": "ingredient name",
          "quantity": "amount with unit (e.g., '2 medium', '200g', '1 tbsp')",
          "category": "produce" | "dairy" | "meat" | "fish" | "storecupboard" | "frozen" | "bakery"
        }
      ],
      "instructions": ["step 1", "step 2", "step 3", ...]
    }
  ]
}`,
		mealCount,
		region.DisplayName,
		params.Season,
		strings.Join(mealTypes, ", "),
		budgetDescriptions[params.Budget],
		params.HouseholdSize,
		dietary,
		exclude,
		strings.ToUpper(string(params.Season)),
		region.SeasonalIngredients[params.Season],
		region.Supermarkets,
		params.Season,
		region.DisplayName,
		strings.Join(mealTypes, ", "),
		params.HouseholdSize,
		params.Season,
	)
}
