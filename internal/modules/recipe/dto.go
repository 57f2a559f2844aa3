package recipe

import (
	"foodgram/internal/domain"
)

// IngredientAmount — ингредиент в запросе на создание рецепта.
type IngredientAmount struct {
	ID     int64 `json:"id" binding:"required"`
	Amount int   `json:"amount" binding:"required"`
}

type CreateRecipeRequest struct {
	Name        string             `json:"name" binding:"required,max=150"`
	Text        string             `json:"text" binding:"required"`
	CookingTime int                `json:"cooking_time" binding:"required"`
	Image       string             `json:"image"`
	Ingredients []IngredientAmount `json:"ingredients" binding:"required"`
	Tags        []int64            `json:"tags" binding:"required"`
}

// UpdateRecipeRequest — частичное обновление: nil-поля не трогаются.
type UpdateRecipeRequest struct {
	Name        *string            `json:"name" validate:"omitempty,min=1,max=150"`
	Text        *string            `json:"text" validate:"omitempty,min=1"`
	CookingTime *int               `json:"cooking_time"`
	Image       *string            `json:"image"`
	Ingredients []IngredientAmount `json:"ingredients"`
	Tags        []int64            `json:"tags"`
}

type AuthorInfo struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar,omitempty"`
}

type IngredientInfo struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type RecipeResponse struct {
	ID               int64            `json:"id"`
	Name             string           `json:"name"`
	Text             string           `json:"text"`
	CookingTime      int              `json:"cooking_time"`
	Image            string           `json:"image,omitempty"`
	Author           AuthorInfo       `json:"author"`
	Ingredients      []IngredientInfo `json:"ingredients"`
	Tags             []domain.Tag     `json:"tags"`
	IsFavorited      bool             `json:"is_favorited"`
	IsInShoppingCart bool             `json:"is_in_shopping_cart"`
	PubDate          string           `json:"pub_date"`
}

type RecipeListResponse struct {
	Count   int64            `json:"count"`
	Page    int              `json:"page"`
	PerPage int              `json:"per_page"`
	Results []RecipeResponse `json:"results"`
}

// ShortLinkResponse — обёрнутая абсолютная короткая ссылка.
type ShortLinkResponse struct {
	ShortLink string `json:"short-link"`
}

func toRecipeResponse(r *domain.Recipe, isFavorited, isInCart bool) RecipeResponse {
	resp := RecipeResponse{
		ID:               r.ID,
		Name:             r.Name,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
		Image:            r.Image,
		Tags:             r.Tags,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInCart,
		PubDate:          r.PubDate.Format("2006-01-02T15:04:05Z07:00"),
	}
	if resp.Tags == nil {
		resp.Tags = []domain.Tag{}
	}

	if r.Author != nil {
		resp.Author = AuthorInfo{
			ID:        r.Author.ID,
			Username:  r.Author.Username,
			Email:     r.Author.Email,
			FirstName: r.Author.FirstName,
			LastName:  r.Author.LastName,
			Avatar:    r.Author.Avatar,
		}
	}

	resp.Ingredients = make([]IngredientInfo, 0, len(r.Ingredients))
	for _, ri := range r.Ingredients {
		info := IngredientInfo{
			ID:     ri.IngredientID,
			Amount: ri.Amount,
		}
		if ri.Ingredient != nil {
			info.Name = ri.Ingredient.Name
			info.MeasurementUnit = ri.Ingredient.MeasurementUnit
		}
		resp.Ingredients = append(resp.Ingredients, info)
	}

	return resp
}
