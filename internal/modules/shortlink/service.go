package shortlink

import (
	"context"
	"errors"
	"fmt"

	"foodgram/internal/domain"
	"foodgram/internal/repository"
)

// RecipeStore — подмножество репозитория рецептов, нужное для
// назначения и разрешения коротких ссылок.
type RecipeStore interface {
	ShortLinkExists(ctx context.Context, shortLink string) (bool, error)
	GetByShortLink(ctx context.Context, shortLink string) (*domain.Recipe, error)
}

type Service struct {
	recipes   RecipeStore
	generator *Generator

	base    string // префикс короткой ссылки
	pageURL string // канонический адрес страницы рецепта
}

func NewService(recipes RecipeStore, generator *Generator, base, pageURL string) *Service {
	return &Service{
		recipes:   recipes,
		generator: generator,
		base:      base,
		pageURL:   pageURL,
	}
}

// Assign генерирует токен для нового рецепта. Вызывается ровно один
// раз, до первого сохранения; существующая ссылка не перегенерируется.
func (s *Service) Assign(ctx context.Context, recipe *domain.Recipe) error {
	if recipe.ShortLink != "" {
		return nil
	}
	token, err := s.generator.Generate(func(candidate string) (bool, error) {
		return s.recipes.ShortLinkExists(ctx, candidate)
	})
	if err != nil {
		return err
	}
	recipe.ShortLink = token
	return nil
}

// Resolve возвращает id рецепта по токену.
// Отсутствие ссылки — ошибка клиента, не сбой сервера.
func (s *Service) Resolve(ctx context.Context, token string) (int64, error) {
	recipe, err := s.recipes.GetByShortLink(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return recipe.ID, nil
}

// ShortURL собирает абсолютную короткую ссылку из префикса и токена.
func (s *Service) ShortURL(token string) string {
	return s.base + token
}

// RecipeURL — канонический адрес страницы рецепта, куда ведёт redirect.
func (s *Service) RecipeURL(recipeID int64) string {
	return fmt.Sprintf("%s%d/", s.pageURL, recipeID)
}
