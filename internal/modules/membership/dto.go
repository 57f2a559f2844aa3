package membership

import (
	"foodgram/internal/domain"
)

// ShortRecipe — краткое представление рецепта в ответах
// на добавление в избранное или корзину.
type ShortRecipe struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image,omitempty"`
	CookingTime int    `json:"cooking_time"`
}

func ToShortRecipe(r *domain.Recipe) ShortRecipe {
	return ShortRecipe{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}

// AuthorResponse — автор в списке подписок вместе с его рецептами.
type AuthorResponse struct {
	ID           int64         `json:"id"`
	Username     string        `json:"username"`
	Email        string        `json:"email"`
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	Avatar       string        `json:"avatar,omitempty"`
	IsSubscribed bool          `json:"is_subscribed"`
	Recipes      []ShortRecipe `json:"recipes"`
	RecipesCount int64         `json:"recipes_count"`
}

// SubscriptionListResponse — страница подписок.
type SubscriptionListResponse struct {
	Count   int64            `json:"count"`
	Page    int              `json:"page"`
	PerPage int              `json:"per_page"`
	Results []AuthorResponse `json:"results"`
}
