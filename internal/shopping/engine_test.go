package shopping

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"meal-planner/internal/meal"
)

// memStore is an in-memory Store for engine tests.
type memStore struct {
	mu    sync.Mutex
	lists map[string]*List
	fail  bool
}

func newMemStore() *memStore {
	return &memStore{lists: make(map[string]*List)}
}

func (s *memStore) Get(_ context.Context, userID string) (*List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, fmt.Errorf("store unavailable")
	}
	l, ok := s.lists[userID]
	if !ok {
		return nil, nil
	}
	cp := *l
	cp.MealIDs = append([]string(nil), l.MealIDs...)
	cp.Items = make([]Item, len(l.Items))
	for i, it := range l.Items {
		cp.Items[i] = it
		cp.Items[i].FromMeals = append([]string(nil), it.FromMeals...)
	}
	return &cp, nil
}

func (s *memStore) Put(_ context.Context, list *List) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return fmt.Errorf("store unavailable")
	}
	s.lists[list.UserID] = list
	return nil
}

func (s *memStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return fmt.Errorf("store unavailable")
	}
	delete(s.lists, userID)
	return nil
}

// memLookup resolves meal ids from a fixed map.
type memLookup map[string]*meal.Meal

func (l memLookup) MealByID(_ context.Context, _, mealID string) (*meal.Meal, error) {
	return l[mealID], nil
}

func soupAndStew() (*meal.Meal, *meal.Meal) {
	soup := &meal.Meal{
		ID:   "a",
		Name: "Soup",
		Ingredients: []meal.Ingredient{
			{Name: "Carrot", Quantity: "2", Category: meal.CategoryProduce},
			{Name: "Stock", Quantity: "1l", Category: meal.CategoryStorecupboard},
		},
	}
	stew := &meal.Meal{
		ID:   "b",
		Name: "Stew",
		Ingredients: []meal.Ingredient{
			{Name: "carrot", Quantity: "3", Category: meal.CategoryProduce},
			{Name: "Beef", Quantity: "500g", Category: meal.CategoryMeat},
		},
	}
	return soup, stew
}

func TestAddMeal(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesListOnFirstMeal", func(t *testing.T) {
		store := newMemStore()
		engine := NewEngine(store, memLookup{})
		soup, _ := soupAndStew()

		list, err := engine.AddMeal(ctx, "u1", soup)
		if err != nil {
			t.Fatalf("AddMeal failed: %v", err)
		}
		if len(list.MealIDs) != 1 || list.MealIDs[0] != "a" {
			t.Errorf("expected mealIds [a], got %v", list.MealIDs)
		}
		if len(list.Items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(list.Items))
		}
		for _, it := range list.Items {
			if it.Checked {
				t.Errorf("item %q should start unchecked", it.Name)
			}
			if len(it.FromMeals) != 1 || it.FromMeals[0] != "Soup" {
				t.Errorf("item %q has provenance %v, want [Soup]", it.Name, it.FromMeals)
			}
		}
	})

	t.Run("RequiresMealID", func(t *testing.T) {
		engine := NewEngine(newMemStore(), memLookup{})
		_, err := engine.AddMeal(ctx, "u1", &meal.Meal{Name: "Nameless"})
		if !errors.Is(err, ErrInvalidMeal) {
			t.Errorf("expected ErrInvalidMeal, got %v", err)
		}
	})

	t.Run("MergesByIdentityKeyKeepingFirstQuantity", func(t *testing.T) {
		store := newMemStore()
		engine := NewEngine(store, memLookup{})
		soup, stew := soupAndStew()

		if _, err := engine.AddMeal(ctx, "u1", soup); err != nil {
			t.Fatalf("AddMeal(soup) failed: %v", err)
		}
		list, err := engine.AddMeal(ctx, "u1", stew)
		if err != nil {
			t.Fatalf("AddMeal(stew) failed: %v", err)
		}

		// Carrot merges despite the case difference; Stock and Beef stand alone.
		if len(list.Items) != 3 {
			t.Fatalf("expected 3 items, got %d: %+v", len(list.Items), list.Items)
		}
		carrot := list.Items[0]
		if carrot.Name != "Carrot" || carrot.Quantity != "2" {
			t.Errorf("merged item should keep first-seen name and quantity, got %q %q", carrot.Name, carrot.Quantity)
		}
		if len(carrot.FromMeals) != 2 || carrot.FromMeals[0] != "Soup" || carrot.FromMeals[1] != "Stew" {
			t.Errorf("expected provenance [Soup Stew], got %v", carrot.FromMeals)
		}
	})

	t.Run("RejectsDuplicateMeal", func(t *testing.T) {
		store := newMemStore()
		engine := NewEngine(store, memLookup{})
		soup, _ := soupAndStew()

		first, err := engine.AddMeal(ctx, "u1", soup)
		if err != nil {
			t.Fatalf("AddMeal failed: %v", err)
		}
		if _, err := engine.AddMeal(ctx, "u1", soup); !errors.Is(err, ErrMealAlreadyInList) {
			t.Fatalf("expected ErrMealAlreadyInList, got %v", err)
		}

		after, err := engine.Get(ctx, "u1")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if len(after.Items) != len(first.Items) || len(after.MealIDs) != 1 {
			t.Errorf("rejected add must not mutate the list: before %d items, after %d", len(first.Items), len(after.Items))
		}
	})

	t.Run("NoTwoItemsShareIdentityKey", func(t *testing.T) {
		store := newMemStore()
		engine := NewEngine(store, memLookup{})
		for i := 0; i < 5; i++ {
			m := &meal.Meal{
				ID:   fmt.Sprintf("m%d", i),
				Name: fmt.Sprintf("Meal %d", i),
				Ingredients: []meal.Ingredient{
					{Name: "ONION", Quantity: "1", Category: meal.CategoryProduce},
					{Name: "onion", Quantity: "2", Category: meal.CategoryProduce},
					{Name: "Butter", Quantity: "50g", Category: meal.CategoryDairy},
				},
			}
			if _, err := engine.AddMeal(ctx, "u1", m); err != nil {
				t.Fatalf("AddMeal %d failed: %v", i, err)
			}
		}
		list, _ := engine.Get(ctx, "u1")
		seen := make(map[ItemKey]bool)
		for _, it := range list.Items {
			if seen[it.Key()] {
				t.Errorf("duplicate identity key %v", it.Key())
			}
			seen[it.Key()] = true
		}
		if len(list.Items) != 2 {
			t.Errorf("expected 2 distinct items, got %d", len(list.Items))
		}
	})

	t.Run("StoreFailureSurfaces", func(t *testing.T) {
		store := newMemStore()
		store.fail = true
		engine := NewEngine(store, memLookup{})
		soup, _ := soupAndStew()
		if _, err := engine.AddMeal(ctx, "u1", soup); err == nil {
			t.Error("expected storage error")
		}
	})
}

func TestRemoveMeal(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*Engine, *memStore) {
		t.Helper()
		store := newMemStore()
		soup, stew := soupAndStew()
		engine := NewEngine(store, memLookup{"a": soup, "b": stew})
		if _, err := engine.AddMeal(ctx, "u1", soup); err != nil {
			t.Fatalf("AddMeal(soup) failed: %v", err)
		}
		if _, err := engine.AddMeal(ctx, "u1", stew); err != nil {
			t.Fatalf("AddMeal(stew) failed: %v", err)
		}
		return engine, store
	}

	t.Run("StripsProvenanceAndDropsOrphanedItems", func(t *testing.T) {
		engine, _ := setup(t)
		list, err := engine.RemoveMeal(ctx, "u1", "a")
		if err != nil {
			t.Fatalf("RemoveMeal failed: %v", err)
		}
		// Stock came only from Soup and must go; Carrot survives via Stew.
		if len(list.Items) != 2 {
			t.Fatalf("expected 2 items, got %d: %+v", len(list.Items), list.Items)
		}
		for _, it := range list.Items {
			if len(it.FromMeals) == 0 {
				t.Errorf("item %q left with empty provenance", it.Name)
			}
			if containsString(it.FromMeals, "Soup") {
				t.Errorf("item %q still references removed meal", it.Name)
			}
		}
		if list.Items[0].Name != "Carrot" || list.Items[0].FromMeals[0] != "Stew" {
			t.Errorf("expected Carrot from [Stew], got %+v", list.Items[0])
		}
	})

	t.Run("RemovingLastMealDeletesList", func(t *testing.T) {
		engine, _ := setup(t)
		if _, err := engine.RemoveMeal(ctx, "u1", "a"); err != nil {
			t.Fatalf("RemoveMeal(a) failed: %v", err)
		}
		list, err := engine.RemoveMeal(ctx, "u1", "b")
		if err != nil {
			t.Fatalf("RemoveMeal(b) failed: %v", err)
		}
		if list != nil {
			t.Errorf("expected nil list after removing last meal, got %+v", list)
		}
		got, err := engine.Get(ctx, "u1")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != nil {
			t.Errorf("list should be absent, not empty: %+v", got)
		}
	})

	t.Run("NoList", func(t *testing.T) {
		engine := NewEngine(newMemStore(), memLookup{})
		if _, err := engine.RemoveMeal(ctx, "u1", "a"); !errors.Is(err, ErrListNotFound) {
			t.Errorf("expected ErrListNotFound, got %v", err)
		}
	})

	t.Run("MealNotInList", func(t *testing.T) {
		engine, _ := setup(t)
		if _, err := engine.RemoveMeal(ctx, "u1", "zzz"); !errors.Is(err, ErrMealNotInList) {
			t.Errorf("expected ErrMealNotInList, got %v", err)
		}
	})

	t.Run("MealRecordGone", func(t *testing.T) {
		store := newMemStore()
		soup, _ := soupAndStew()
		// Lookup cannot resolve the meal even though it is in the list.
		engine := NewEngine(store, memLookup{})
		if _, err := engine.AddMeal(ctx, "u1", soup); err != nil {
			t.Fatalf("AddMeal failed: %v", err)
		}
		if _, err := engine.RemoveMeal(ctx, "u1", "a"); !errors.Is(err, ErrMealNotFound) {
			t.Errorf("expected ErrMealNotFound, got %v", err)
		}
	})
}

func TestToggleItem(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	soup, _ := soupAndStew()
	engine := NewEngine(store, memLookup{"a": soup})
	if _, err := engine.AddMeal(ctx, "u1", soup); err != nil {
		t.Fatalf("AddMeal failed: %v", err)
	}

	t.Run("SetsCheckedByPosition", func(t *testing.T) {
		if err := engine.ToggleItem(ctx, "u1", 1, true); err != nil {
			t.Fatalf("ToggleItem failed: %v", err)
		}
		list, _ := engine.Get(ctx, "u1")
		if !list.Items[1].Checked {
			t.Error("item 1 should be checked")
		}
		if list.Items[0].Checked {
			t.Error("item 0 should be untouched")
		}

		if err := engine.ToggleItem(ctx, "u1", 1, false); err != nil {
			t.Fatalf("ToggleItem(uncheck) failed: %v", err)
		}
		list, _ = engine.Get(ctx, "u1")
		if list.Items[1].Checked {
			t.Error("item 1 should be unchecked again")
		}
	})

	t.Run("IndexOutOfRange", func(t *testing.T) {
		if err := engine.ToggleItem(ctx, "u1", 99, true); !errors.Is(err, ErrListNotFound) {
			t.Errorf("expected ErrListNotFound, got %v", err)
		}
		if err := engine.ToggleItem(ctx, "u1", -1, true); !errors.Is(err, ErrListNotFound) {
			t.Errorf("expected ErrListNotFound, got %v", err)
		}
	})

	t.Run("NoList", func(t *testing.T) {
		if err := engine.ToggleItem(ctx, "nobody", 0, true); !errors.Is(err, ErrListNotFound) {
			t.Errorf("expected ErrListNotFound, got %v", err)
		}
	})
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	soup, _ := soupAndStew()
	engine := NewEngine(store, memLookup{})

	// Clearing an absent list succeeds.
	if err := engine.Clear(ctx, "u1"); err != nil {
		t.Fatalf("Clear of absent list failed: %v", err)
	}

	if _, err := engine.AddMeal(ctx, "u1", soup); err != nil {
		t.Fatalf("AddMeal failed: %v", err)
	}
	if err := engine.Clear(ctx, "u1"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	list, err := engine.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if list != nil {
		t.Errorf("expected absent list after clear, got %+v", list)
	}
}

// TestMergeScenario walks the documented Soup/Stew scenario end to end.
func TestMergeScenario(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	soup := &meal.Meal{
		ID:   "a",
		Name: "Soup",
		Ingredients: []meal.Ingredient{
			{Name: "Carrot", Quantity: "2", Category: meal.CategoryProduce},
		},
	}
	stew := &meal.Meal{
		ID:   "b",
		Name: "Stew",
		Ingredients: []meal.Ingredient{
			{Name: "carrot", Quantity: "3", Category: meal.CategoryProduce},
		},
	}
	engine := NewEngine(store, memLookup{"a": soup, "b": stew})

	if _, err := engine.AddMeal(ctx, "u1", soup); err != nil {
		t.Fatalf("AddMeal(soup) failed: %v", err)
	}
	list, err := engine.AddMeal(ctx, "u1", stew)
	if err != nil {
		t.Fatalf("AddMeal(stew) failed: %v", err)
	}

	if len(list.Items) != 1 {
		t.Fatalf("expected a single merged item, got %d", len(list.Items))
	}
	it := list.Items[0]
	if it.Name != "Carrot" || it.Quantity != "2" {
		t.Errorf("expected Carrot/2 (first-seen quantity), got %s/%s", it.Name, it.Quantity)
	}
	if len(it.FromMeals) != 2 || it.FromMeals[0] != "Soup" || it.FromMeals[1] != "Stew" {
		t.Errorf("expected fromMeals [Soup Stew], got %v", it.FromMeals)
	}

	list, err = engine.RemoveMeal(ctx, "u1", "a")
	if err != nil {
		t.Fatalf("RemoveMeal(a) failed: %v", err)
	}
	if len(list.Items) != 1 || len(list.Items[0].FromMeals) != 1 || list.Items[0].FromMeals[0] != "Stew" {
		t.Errorf("expected one item from [Stew], got %+v", list.Items)
	}

	list, err = engine.RemoveMeal(ctx, "u1", "b")
	if err != nil {
		t.Fatalf("RemoveMeal(b) failed: %v", err)
	}
	if list != nil {
		t.Errorf("expected list deletion after last removal, got %+v", list)
	}
}

// TestConcurrentAddMeal exercises the per-user serialization: concurrent
// adds for one user must all land, none overwritten by a stale
// read-modify-write.
func TestConcurrentAddMeal(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	engine := NewEngine(store, memLookup{})

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m := &meal.Meal{
				ID:   fmt.Sprintf("m%d", i),
				Name: fmt.Sprintf("Meal %d", i),
				Ingredients: []meal.Ingredient{
					{Name: fmt.Sprintf("ing%d", i), Quantity: "1", Category: meal.CategoryProduce},
				},
			}
			if _, err := engine.AddMeal(ctx, "u1", m); err != nil {
				t.Errorf("AddMeal %d failed: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	list, err := engine.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(list.MealIDs) != n {
		t.Errorf("expected %d meal ids, got %d", n, len(list.MealIDs))
	}
	if len(list.Items) != n {
		t.Errorf("expected %d items, got %d", n, len(list.Items))
	}
}
