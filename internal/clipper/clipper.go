// Package clipper imports recipes from the web: it fetches a page, strips
// it down to text, and has the LLM restructure it into a saved meal.
package clipper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"meal-planner/internal/llm"
	"meal-planner/internal/meal"
	"meal-planner/internal/shared"

	"github.com/PuerkitoBio/goquery"
)

// MealSaver stores the extracted meal. Implemented by meal.Repository.
type MealSaver interface {
	Save(ctx context.Context, userID string, m meal.Meal) (*meal.Meal, error)
}

// Clipper handles fetching and extracting meals from URLs.
type Clipper struct {
	textGen    llm.TextGenerator
	meals      MealSaver
	httpClient *http.Client
}

// NewClipper creates a new Clipper instance.
func NewClipper(textGen llm.TextGenerator, meals MealSaver) *Clipper {
	return &Clipper{
		textGen: textGen,
		meals:   meals,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Result carries the saved meal plus execution metadata.
type Result struct {
	Meal *meal.Meal
	Meta shared.AgentMeta
}

// ClipURL fetches the URL, extracts a meal using the LLM, and saves it for
// the user.
func (c *Clipper) ClipURL(ctx context.Context, userID, url string) (Result, error) {
	content, err := c.fetchAndCleanHTML(url)
	if err != nil {
		return Result{}, fmt.Errorf("failed to fetch content: %w", err)
	}

	start := time.Now()
	resp, err := c.textGen.GenerateContent(ctx, buildExtractionPrompt(content))
	meta := shared.AgentMeta{
		AgentName: "Clipper",
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	}
	if err != nil {
		return Result{Meta: meta}, fmt.Errorf("ai extraction failed: %w", err)
	}

	var extracted meal.Meal
	if err := json.Unmarshal([]byte(resp.Content), &extracted); err != nil {
		return Result{Meta: meta}, fmt.Errorf("failed to parse AI response: %w. Response: %s", err, resp.Content)
	}
	extracted.ID = ""
	if err := extracted.Validate(); err != nil {
		return Result{Meta: meta}, fmt.Errorf("extracted meal is invalid: %w", err)
	}

	saved, err := c.meals.Save(ctx, userID, extracted)
	if err != nil {
		return Result{Meta: meta}, fmt.Errorf("failed to save clipped meal: %w", err)
	}
	return Result{Meal: saved, Meta: meta}, nil
}

func buildExtractionPrompt(content string) string {
	return fmt.Sprintf(`You are a recipe extraction expert. Extract the recipe from the following page text.
Return the result strictly as a JSON object with this structure:
{
  "name": "Recipe Title",
  "description": "1-2 sentence description",
  "mealType": "breakfast" | "lunch" | "dinner",
  "priceLevel": 1 | 2 | 3,
  "prepTime": number (total minutes),
  "servings": number,
  "seasons": ["spring" | "summer" | "autumn" | "winter", ...],
  "ingredients": [
    {"name": "ingredient", "quantity": "amount with unit", "category": "produce" | "dairy" | "meat" | "fish" | "storecupboard" | "frozen" | "bakery"}
  ],
  "instructions": ["Step 1", "Step 2", ...]
}

Page text:
%s
`, content)
}

func (c *Clipper) fetchAndCleanHTML(url string) (string, error) {
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Remove noise to save LLM tokens
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	return strings.TrimSpace(doc.Find("body").Text()), nil
}
