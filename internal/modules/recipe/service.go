package recipe

import (
	"context"
	"errors"
	"fmt"

	"foodgram/internal/domain"
	"foodgram/internal/modules/shortlink"
	"foodgram/internal/repository"
)

// Service содержит бизнес-логику рецептов: валидацию состава,
// назначение короткой ссылки и атомарное сохранение с ингредиентами
// и тегами.
type Service struct {
	recipes     repository.RecipeRepository
	ingredients repository.IngredientRepository
	tags        repository.TagRepository
	shortLinks  *shortlink.Service
}

func NewService(
	recipes repository.RecipeRepository,
	ingredients repository.IngredientRepository,
	tags repository.TagRepository,
	shortLinks *shortlink.Service,
) *Service {
	return &Service{
		recipes:     recipes,
		ingredients: ingredients,
		tags:        tags,
		shortLinks:  shortLinks,
	}
}

// Create валидирует запрос, назначает короткую ссылку и сохраняет
// рецепт. Ошибка генерации ссылки фатальна: рецепт без ссылки
// не сохраняется.
func (s *Service) Create(ctx context.Context, authorID int64, req CreateRecipeRequest) (*domain.Recipe, error) {
	if err := s.validateCookingTime(req.CookingTime); err != nil {
		return nil, err
	}
	if err := s.validateIngredients(ctx, req.Ingredients); err != nil {
		return nil, err
	}
	if err := s.validateTags(ctx, req.Tags); err != nil {
		return nil, err
	}

	recipe := &domain.Recipe{
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Image:       req.Image,
		AuthorID:    authorID,
		Ingredients: toRecipeIngredients(req.Ingredients),
	}

	if err := s.shortLinks.Assign(ctx, recipe); err != nil {
		return nil, err
	}

	if err := s.recipes.Create(ctx, recipe, req.Tags); err != nil {
		return nil, err
	}

	return s.recipes.GetByID(ctx, recipe.ID)
}

// Update применяет частичное обновление. Менять рецепт может
// только автор; короткая ссылка никогда не перезаписывается.
func (s *Service) Update(ctx context.Context, userID, recipeID int64, req UpdateRecipeRequest) (*domain.Recipe, error) {
	recipe, err := s.getOwned(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		recipe.Name = *req.Name
	}
	if req.Text != nil {
		recipe.Text = *req.Text
	}
	if req.Image != nil {
		recipe.Image = *req.Image
	}
	if req.CookingTime != nil {
		if err := s.validateCookingTime(*req.CookingTime); err != nil {
			return nil, err
		}
		recipe.CookingTime = *req.CookingTime
	}

	var ingredients []domain.RecipeIngredient
	if req.Ingredients != nil {
		if err := s.validateIngredients(ctx, req.Ingredients); err != nil {
			return nil, err
		}
		ingredients = toRecipeIngredients(req.Ingredients)
	}
	if req.Tags != nil {
		if err := s.validateTags(ctx, req.Tags); err != nil {
			return nil, err
		}
	}

	if err := s.recipes.Update(ctx, recipe, ingredients, req.Tags); err != nil {
		return nil, err
	}

	return s.recipes.GetByID(ctx, recipeID)
}

func (s *Service) Delete(ctx context.Context, userID, recipeID int64) error {
	if _, err := s.getOwned(ctx, userID, recipeID); err != nil {
		return err
	}

	affected, err := s.recipes.Delete(ctx, recipeID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) Get(ctx context.Context, recipeID int64) (*domain.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return recipe, nil
}

func (s *Service) List(ctx context.Context, f repository.RecipeFilters) ([]domain.Recipe, int64, error) {
	return s.recipes.List(ctx, f)
}

// ShortURL возвращает обёрнутую абсолютную короткую ссылку рецепта.
func (s *Service) ShortURL(recipe *domain.Recipe) string {
	return s.shortLinks.ShortURL(recipe.ShortLink)
}

func (s *Service) getOwned(ctx context.Context, userID, recipeID int64) (*domain.Recipe, error) {
	recipe, err := s.Get(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != userID {
		return nil, ErrForbidden
	}
	return recipe, nil
}

func (s *Service) validateCookingTime(minutes int) error {
	if minutes < domain.MinCookingTime || minutes > domain.MaxCookingTime {
		return fmt.Errorf("%w: cooking_time must be between %d and %d",
			ErrValidation, domain.MinCookingTime, domain.MaxCookingTime)
	}
	return nil
}

// validateIngredients: список непустой, без повторов, количества
// в границах, все id существуют в справочнике.
func (s *Service) validateIngredients(ctx context.Context, items []IngredientAmount) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: recipe must contain at least one ingredient", ErrValidation)
	}

	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("%w: duplicate ingredient %d", ErrValidation, item.ID)
		}
		seen[item.ID] = struct{}{}
		ids = append(ids, item.ID)

		if item.Amount < domain.MinAmount || item.Amount > domain.MaxAmount {
			return fmt.Errorf("%w: ingredient amount must be between %d and %d",
				ErrValidation, domain.MinAmount, domain.MaxAmount)
		}
	}

	count, err := s.ingredients.CountByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return fmt.Errorf("%w: unknown ingredient id", ErrValidation)
	}
	return nil
}

func (s *Service) validateTags(ctx context.Context, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return fmt.Errorf("%w: recipe must have at least one tag", ErrValidation)
	}

	seen := make(map[int64]struct{}, len(tagIDs))
	for _, id := range tagIDs {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate tag %d", ErrValidation, id)
		}
		seen[id] = struct{}{}
	}

	count, err := s.tags.CountByIDs(ctx, tagIDs)
	if err != nil {
		return err
	}
	if count != int64(len(tagIDs)) {
		return fmt.Errorf("%w: unknown tag id", ErrValidation)
	}
	return nil
}

func toRecipeIngredients(items []IngredientAmount) []domain.RecipeIngredient {
	out := make([]domain.RecipeIngredient, len(items))
	for i, item := range items {
		out[i] = domain.RecipeIngredient{
			IngredientID: item.ID,
			Amount:       item.Amount,
		}
	}
	return out
}
