package shopping

import "errors"

// Sentinel errors returned by Engine operations. Storage failures are not
// sentinels; they come back wrapped with the operation that failed.
var (
	// ErrInvalidMeal is returned when a meal payload is unusable, e.g. it
	// has no id.
	ErrInvalidMeal = errors.New("invalid meal")

	// ErrMealAlreadyInList is returned by AddMeal when the meal already
	// contributes to the list. The list is left untouched.
	ErrMealAlreadyInList = errors.New("meal already in shopping list")

	// ErrMealNotInList is returned by RemoveMeal when the meal is not one
	// of the list's contributors.
	ErrMealNotInList = errors.New("meal not in shopping list")

	// ErrListNotFound is returned when an operation needs an existing list
	// and the user has none, or when an item index is out of range.
	ErrListNotFound = errors.New("shopping list not found")

	// ErrMealNotFound is returned by RemoveMeal when the meal record itself
	// cannot be resolved, as opposed to not being in the list.
	ErrMealNotFound = errors.New("meal not found")
)
