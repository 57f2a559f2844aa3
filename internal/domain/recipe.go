package domain

import "time"

const (
	// Границы для времени приготовления и количества ингредиента.
	MinCookingTime = 1
	MaxCookingTime = 10000
	MinAmount      = 1
	MaxAmount      = 10000

	// Длина короткой ссылки рецепта.
	ShortLinkLength = 10
)

// Recipe — рецепт с ингредиентами и тегами.
// ShortLink назначается один раз при создании и больше не меняется.
type Recipe struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:150;not null"`
	Text        string    `json:"text" gorm:"not null"`
	CookingTime int       `json:"cooking_time" gorm:"not null"`
	Image       string    `json:"image,omitempty"`
	AuthorID    int64     `json:"author_id" gorm:"not null;index"`
	ShortLink   string    `json:"-" gorm:"size:10;not null;uniqueIndex"`
	PubDate     time.Time `json:"pub_date" gorm:"autoCreateTime;index"`

	// Virtual fields для preload
	Author      *User              `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Ingredients []RecipeIngredient `json:"ingredients,omitempty" gorm:"foreignKey:RecipeID"`
	Tags        []Tag              `json:"tags,omitempty" gorm:"many2many:recipe_tags"`
}

func (Recipe) TableName() string { return "recipes" }

// RecipeIngredient — ингредиент в составе рецепта.
// Пара (recipe, ingredient) уникальна, amount в границах 1..10000.
type RecipeIngredient struct {
	ID           int64 `json:"-" gorm:"primaryKey"`
	RecipeID     int64 `json:"-" gorm:"not null;index;uniqueIndex:idx_recipe_ingredient"`
	IngredientID int64 `json:"id" gorm:"not null;index;uniqueIndex:idx_recipe_ingredient"`
	Amount       int   `json:"amount" gorm:"not null"`

	Ingredient *Ingredient `json:"-" gorm:"foreignKey:IngredientID"`
}

func (RecipeIngredient) TableName() string { return "recipe_ingredients" }
