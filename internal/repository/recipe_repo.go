package repository

import (
	"context"

	"gorm.io/gorm"

	"foodgram/internal/domain"
)

// RecipeFilters — фильтры списка рецептов.
// FavoritedBy и InCartOf — id зрителя; 0 означает "не фильтровать".
type RecipeFilters struct {
	AuthorID    int64
	TagSlugs    []string
	FavoritedBy int64
	InCartOf    int64
	Limit       int
	Offset      int
}

// CartIngredient — строка агрегата списка покупок:
// суммарное количество по паре (название, единица измерения).
type CartIngredient struct {
	Name  string `gorm:"column:name"`
	Unit  string `gorm:"column:unit"`
	Total int64  `gorm:"column:total"`
}

type RecipeRepository interface {
	Create(ctx context.Context, recipe *domain.Recipe, tagIDs []int64) error
	Update(ctx context.Context, recipe *domain.Recipe, ingredients []domain.RecipeIngredient, tagIDs []int64) error
	Delete(ctx context.Context, id int64) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Recipe, error)
	GetByShortLink(ctx context.Context, shortLink string) (*domain.Recipe, error)
	ShortLinkExists(ctx context.Context, shortLink string) (bool, error)
	List(ctx context.Context, f RecipeFilters) ([]domain.Recipe, int64, error)
	ListByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Recipe, error)
	CountByAuthor(ctx context.Context, authorID int64) (int64, error)
	AggregateCart(ctx context.Context, userID int64) ([]CartIngredient, error)
}

type recipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// Create сохраняет рецепт вместе с ингредиентами и тегами в одной
// транзакции: либо всё, либо ничего. ShortLink уже назначен сервисом.
func (r *recipeRepository) Create(ctx context.Context, recipe *domain.Recipe, tagIDs []int64) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ingredients := recipe.Ingredients
		recipe.Ingredients = nil

		if err := tx.Omit("Tags").Create(recipe).Error; err != nil {
			return err
		}

		for i := range ingredients {
			ingredients[i].RecipeID = recipe.ID
		}
		if err := tx.Create(&ingredients).Error; err != nil {
			return err
		}
		recipe.Ingredients = ingredients

		tags := make([]domain.Tag, len(tagIDs))
		for i, id := range tagIDs {
			tags[i] = domain.Tag{ID: id}
		}
		return tx.Model(recipe).Association("Tags").Replace(tags)
	}))
}

// Update обновляет поля рецепта; непустые ingredients и tagIDs
// полностью заменяют прежние наборы. ShortLink не перезаписывается.
func (r *recipeRepository) Update(ctx context.Context, recipe *domain.Recipe, ingredients []domain.RecipeIngredient, tagIDs []int64) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).
			Omit("ShortLink", "AuthorID", "PubDate").
			Select("Name", "Text", "CookingTime", "Image").
			Updates(recipe).Error; err != nil {
			return err
		}

		if ingredients != nil {
			if err := tx.Where("recipe_id = ?", recipe.ID).
				Delete(&domain.RecipeIngredient{}).Error; err != nil {
				return err
			}
			for i := range ingredients {
				ingredients[i].RecipeID = recipe.ID
			}
			if err := tx.Create(&ingredients).Error; err != nil {
				return err
			}
		}

		if tagIDs != nil {
			tags := make([]domain.Tag, len(tagIDs))
			for i, id := range tagIDs {
				tags[i] = domain.Tag{ID: id}
			}
			if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		return nil
	}))
}

func (r *recipeRepository) Delete(ctx context.Context, id int64) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Связанные строки чистим явно: на SQLite каскады могут
		// быть выключены.
		if err := tx.Where("recipe_id = ?", id).Delete(&domain.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&domain.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&domain.ShoppingCart{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&domain.Recipe{}, id)
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	return affected, translate(err)
}

func (r *recipeRepository) GetByID(ctx context.Context, id int64) (*domain.Recipe, error) {
	var recipe domain.Recipe
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Ingredients.Ingredient").
		Preload("Tags").
		First(&recipe, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &recipe, nil
}

func (r *recipeRepository) GetByShortLink(ctx context.Context, shortLink string) (*domain.Recipe, error) {
	var recipe domain.Recipe
	err := r.db.WithContext(ctx).
		Where("short_link = ?", shortLink).
		First(&recipe).Error
	if err != nil {
		return nil, translate(err)
	}
	return &recipe, nil
}

func (r *recipeRepository) ShortLinkExists(ctx context.Context, shortLink string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Recipe{}).
		Where("short_link = ?", shortLink).
		Count(&count).Error
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (r *recipeRepository) List(ctx context.Context, f RecipeFilters) ([]domain.Recipe, int64, error) {
	var recipes []domain.Recipe
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Recipe{})

	if f.AuthorID > 0 {
		q = q.Where("author_id = ?", f.AuthorID)
	}
	if len(f.TagSlugs) > 0 {
		q = q.Where(
			"id IN (?)",
			r.db.Table("recipe_tags").
				Select("recipe_tags.recipe_id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", f.TagSlugs),
		)
	}
	if f.FavoritedBy > 0 {
		q = q.Where(
			"id IN (?)",
			r.db.Model(&domain.Favorite{}).
				Select("recipe_id").
				Where("user_id = ?", f.FavoritedBy),
		)
	}
	if f.InCartOf > 0 {
		q = q.Where(
			"id IN (?)",
			r.db.Model(&domain.ShoppingCart{}).
				Select("recipe_id").
				Where("user_id = ?", f.InCartOf),
		)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	q = q.Preload("Author").
		Preload("Ingredients.Ingredient").
		Preload("Tags").
		Order("pub_date DESC, id DESC")

	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	if err := q.Find(&recipes).Error; err != nil {
		return nil, 0, translate(err)
	}

	return recipes, total, nil
}

func (r *recipeRepository) ListByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Recipe, error) {
	var recipes []domain.Recipe
	q := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("pub_date DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&recipes).Error; err != nil {
		return nil, translate(err)
	}
	return recipes, nil
}

func (r *recipeRepository) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, translate(err)
}

// AggregateCart суммирует количество по каждой паре
// (ингредиент, единица измерения) во всех рецептах корзины.
// Сортировка фиксирована, чтобы выгрузка была воспроизводимой.
func (r *recipeRepository) AggregateCart(ctx context.Context, userID int64) ([]CartIngredient, error) {
	var items []CartIngredient
	err := r.db.WithContext(ctx).
		Model(&domain.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS unit, SUM(recipe_ingredients.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name, ingredients.measurement_unit").
		Scan(&items).Error
	if err != nil {
		return nil, translate(err)
	}
	return items, nil
}
