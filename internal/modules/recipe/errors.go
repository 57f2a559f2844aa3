package recipe

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("recipe not found")
	// ErrForbidden — менять и удалять рецепт может только автор.
	ErrForbidden = errors.New("not the recipe author")
)
