package clipper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"meal-planner/internal/llm"
	"meal-planner/internal/meal"
)

// --- Mocks ---

type MockTextGenerator struct {
	Response    string
	ShouldError bool
}

func (m *MockTextGenerator) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	if m.ShouldError {
		return llm.ContentResponse{}, fmt.Errorf("mock ai error")
	}
	return llm.ContentResponse{Content: m.Response}, nil
}

type MockMealSaver struct {
	Saved       *meal.Meal
	ShouldError bool
}

func (m *MockMealSaver) Save(_ context.Context, _ string, mm meal.Meal) (*meal.Meal, error) {
	if m.ShouldError {
		return nil, fmt.Errorf("mock save error")
	}
	mm.ID = "clipped-1"
	m.Saved = &mm
	return m.Saved, nil
}

const extractedJSON = `{
  "name": "Shepherd's Pie",
  "description": "A classic comfort dish.",
  "mealType": "dinner",
  "priceLevel": 2,
  "prepTime": 60,
  "servings": 4,
  "seasons": ["winter"],
  "ingredients": [
    {"name": "Lamb mince", "quantity": "500g", "category": "meat"},
    {"name": "Potatoes", "quantity": "800g", "category": "produce"}
  ],
  "instructions": ["Brown the mince", "Top with mash", "Bake"]
}`

func recipeServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		html := `
		<html>
		<head><style>.x{color:red}</style></head>
		<body>
			<nav>Menu</nav>
			<script>trackEverything();</script>
			<h1>Shepherd's Pie</h1>
			<p>500g lamb mince, 800g potatoes.</p>
			<footer>Copyright</footer>
		</body>
		</html>`
		fmt.Fprint(w, html)
	}))
}

func TestClipURL(t *testing.T) {
	ctx := context.Background()

	t.Run("ExtractsAndSaves", func(t *testing.T) {
		ts := recipeServer(t)
		defer ts.Close()

		saver := &MockMealSaver{}
		c := NewClipper(&MockTextGenerator{Response: extractedJSON}, saver)

		res, err := c.ClipURL(ctx, "u1", ts.URL)
		if err != nil {
			t.Fatalf("ClipURL failed: %v", err)
		}
		if res.Meal.ID != "clipped-1" {
			t.Errorf("expected saved meal id, got %q", res.Meal.ID)
		}
		if saver.Saved == nil || saver.Saved.Name != "Shepherd's Pie" {
			t.Errorf("expected Shepherd's Pie saved, got %+v", saver.Saved)
		}
		if res.Meta.AgentName != "Clipper" {
			t.Errorf("expected Clipper meta, got %q", res.Meta.AgentName)
		}
	})

	t.Run("FetchFailure", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer ts.Close()

		c := NewClipper(&MockTextGenerator{Response: extractedJSON}, &MockMealSaver{})
		if _, err := c.ClipURL(ctx, "u1", ts.URL); err == nil {
			t.Error("expected error for 404 page")
		}
	})

	t.Run("BadExtraction", func(t *testing.T) {
		ts := recipeServer(t)
		defer ts.Close()

		c := NewClipper(&MockTextGenerator{Response: "not json"}, &MockMealSaver{})
		if _, err := c.ClipURL(ctx, "u1", ts.URL); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("InvalidExtractedMeal", func(t *testing.T) {
		ts := recipeServer(t)
		defer ts.Close()

		bad := strings.Replace(extractedJSON, `"mealType": "dinner"`, `"mealType": "snack"`, 1)
		c := NewClipper(&MockTextGenerator{Response: bad}, &MockMealSaver{})
		if _, err := c.ClipURL(ctx, "u1", ts.URL); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("SaveFailure", func(t *testing.T) {
		ts := recipeServer(t)
		defer ts.Close()

		c := NewClipper(&MockTextGenerator{Response: extractedJSON}, &MockMealSaver{ShouldError: true})
		if _, err := c.ClipURL(ctx, "u1", ts.URL); err == nil {
			t.Error("expected save error to surface")
		}
	})
}

func TestFetchAndCleanHTML(t *testing.T) {
	ts := recipeServer(t)
	defer ts.Close()

	c := NewClipper(&MockTextGenerator{}, &MockMealSaver{})
	content, err := c.fetchAndCleanHTML(ts.URL)
	if err != nil {
		t.Fatalf("fetchAndCleanHTML failed: %v", err)
	}
	if !strings.Contains(content, "Shepherd's Pie") {
		t.Error("content should keep the recipe text")
	}
	for _, noise := range []string{"trackEverything", "color:red", "Menu", "Copyright"} {
		if strings.Contains(content, noise) {
			t.Errorf("content should not contain %q", noise)
		}
	}
}
