package cart

import (
	"context"

	"foodgram/internal/repository"
)

// Aggregator считает суммарные количества по корзине пользователя.
type Aggregator interface {
	AggregateCart(ctx context.Context, userID int64) ([]repository.CartIngredient, error)
}

type Service struct {
	recipes Aggregator
}

func NewService(recipes Aggregator) *Service {
	return &Service{recipes: recipes}
}

// Aggregate возвращает итог по каждой паре (ингредиент, единица
// измерения) во всех рецептах корзины. Порядок детерминирован
// (сортировка в запросе), пустой результат — ErrEmptyCart.
func (s *Service) Aggregate(ctx context.Context, userID int64) ([]repository.CartIngredient, error) {
	items, err := s.recipes.AggregateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	return items, nil
}
