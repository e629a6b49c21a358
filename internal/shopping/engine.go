package shopping

import (
	"context"
	"fmt"
	"sync"
	"time"

	"meal-planner/internal/meal"
)

// Store persists at most one shopping list per user. Get returns (nil, nil)
// when the user has no list. Put replaces the whole record; Delete of an
// absent record is a no-op.
type Store interface {
	Get(ctx context.Context, userID string) (*List, error)
	Put(ctx context.Context, list *List) error
	Delete(ctx context.Context, userID string) error
}

// MealLookup resolves a meal id to the user's saved meal, or (nil, nil) when
// no such meal exists.
type MealLookup interface {
	MealByID(ctx context.Context, userID, mealID string) (*meal.Meal, error)
}

// Engine owns the consolidation rules for per-user shopping lists: merging
// the ingredients of newly selected meals into one list, unpicking a meal's
// contribution on removal, and tracking checked state.
//
// Every mutation is a read-modify-write of the user's single list record.
// The engine serializes mutations per user so two concurrent AddMeal calls
// cannot both read the same prior state and silently drop one meal's
// contribution; operations for different users do not contend.
type Engine struct {
	store Store
	meals MealLookup

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewEngine creates an Engine over the given list store and meal lookup.
func NewEngine(store Store, meals MealLookup) *Engine {
	return &Engine{
		store: store,
		meals: meals,
		locks: make(map[string]*sync.Mutex),
	}
}

// userLock returns the mutex serializing writes for one user, creating it on
// first use. Locks are never removed; the map grows with the number of
// distinct users seen by this process.
func (e *Engine) userLock(userID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[userID] = l
	}
	return l
}

// AddMeal merges a meal's ingredients into the user's shopping list,
// creating the list if this is the first meal. An ingredient whose identity
// key matches an existing item extends that item's provenance instead of
// adding a line; its quantity is discarded in favour of the first-seen one.
// Quantities are deliberately never combined or converted.
//
// Returns ErrInvalidMeal when the meal has no id and ErrMealAlreadyInList
// when the meal already contributes to the list.
func (e *Engine) AddMeal(ctx context.Context, userID string, m *meal.Meal) (*List, error) {
	if m == nil || m.ID == "" {
		return nil, fmt.Errorf("%w: meal id is required", ErrInvalidMeal)
	}

	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	list, err := e.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shopping list: %w", err)
	}

	now := time.Now().UTC()
	if list == nil {
		list = &List{
			UserID:    userID,
			CreatedAt: now,
		}
	} else if list.ContainsMeal(m.ID) {
		return nil, ErrMealAlreadyInList
	}

	byKey := make(map[ItemKey]int, len(list.Items))
	for i, it := range list.Items {
		byKey[it.Key()] = i
	}

	for _, ing := range m.Ingredients {
		incoming := Item{
			Name:      ing.Name,
			Quantity:  ing.Quantity,
			Category:  ing.Category,
			FromMeals: []string{m.Name},
		}
		idx, ok := byKey[incoming.Key()]
		if !ok {
			byKey[incoming.Key()] = len(list.Items)
			list.Items = append(list.Items, incoming)
			continue
		}
		if !containsString(list.Items[idx].FromMeals, m.Name) {
			list.Items[idx].FromMeals = append(list.Items[idx].FromMeals, m.Name)
		}
	}

	list.MealIDs = append(list.MealIDs, m.ID)
	list.UpdatedAt = now

	if err := e.store.Put(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to store shopping list: %w", err)
	}
	return list, nil
}

// RemoveMeal removes one meal's contribution from the user's list. The
// meal's display name is struck from every item's provenance and items left
// with no provenance are dropped. Removing the last contributing meal
// deletes the list record entirely.
//
// Returns ErrListNotFound when the user has no list, ErrMealNotInList when
// the meal does not contribute to it, and ErrMealNotFound when the meal
// record itself no longer exists.
func (e *Engine) RemoveMeal(ctx context.Context, userID, mealID string) (*List, error) {
	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	list, err := e.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shopping list: %w", err)
	}
	if list == nil {
		return nil, ErrListNotFound
	}
	if !list.ContainsMeal(mealID) {
		return nil, ErrMealNotInList
	}

	m, err := e.meals.MealByID(ctx, userID, mealID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve meal %s: %w", mealID, err)
	}
	if m == nil {
		return nil, ErrMealNotFound
	}

	kept := list.Items[:0]
	for _, it := range list.Items {
		it.FromMeals = removeString(it.FromMeals, m.Name)
		if len(it.FromMeals) > 0 {
			kept = append(kept, it)
		}
	}
	list.Items = kept
	list.MealIDs = removeString(list.MealIDs, mealID)
	list.UpdatedAt = time.Now().UTC()

	if len(list.MealIDs) == 0 {
		if err := e.store.Delete(ctx, userID); err != nil {
			return nil, fmt.Errorf("failed to delete shopping list: %w", err)
		}
		return nil, nil
	}

	if err := e.store.Put(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to store shopping list: %w", err)
	}
	return list, nil
}

// ToggleItem sets the checked state of the item at itemIndex. Items are
// addressed by their position in the list as last returned by this engine;
// the position stays valid until the next mutation for the same user.
// Returns ErrListNotFound when the user has no list or the index is out of
// range.
func (e *Engine) ToggleItem(ctx context.Context, userID string, itemIndex int, checked bool) error {
	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	list, err := e.store.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load shopping list: %w", err)
	}
	if list == nil {
		return ErrListNotFound
	}
	if itemIndex < 0 || itemIndex >= len(list.Items) {
		return fmt.Errorf("%w: item index %d out of range", ErrListNotFound, itemIndex)
	}

	list.Items[itemIndex].Checked = checked
	list.UpdatedAt = time.Now().UTC()

	if err := e.store.Put(ctx, list); err != nil {
		return fmt.Errorf("failed to store shopping list: %w", err)
	}
	return nil
}

// Clear deletes the user's shopping list. Clearing an absent list succeeds.
func (e *Engine) Clear(ctx context.Context, userID string) error {
	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if err := e.store.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete shopping list: %w", err)
	}
	return nil
}

// Get returns the user's shopping list, or (nil, nil) when there is none.
func (e *Engine) Get(ctx context.Context, userID string) (*List, error) {
	list, err := e.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shopping list: %w", err)
	}
	return list, nil
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

func removeString(ss []string, s string) []string {
	out := ss[:0]
	for _, v := range ss {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
