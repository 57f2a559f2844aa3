package repository

import (
	"context"

	"gorm.io/gorm"

	"foodgram/internal/domain"
)

type IngredientRepository interface {
	List(ctx context.Context, namePrefix string) ([]domain.Ingredient, error)
	GetByID(ctx context.Context, id int64) (*domain.Ingredient, error)
	CountByIDs(ctx context.Context, ids []int64) (int64, error)
	CreateInBatches(ctx context.Context, ingredients []domain.Ingredient) error
}

type ingredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

// List возвращает ингредиенты, опционально отфильтрованные
// по началу названия (без учёта регистра).
func (r *ingredientRepository) List(ctx context.Context, namePrefix string) ([]domain.Ingredient, error) {
	var ingredients []domain.Ingredient
	q := r.db.WithContext(ctx).Order("name")
	if namePrefix != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", namePrefix+"%")
	}
	if err := q.Find(&ingredients).Error; err != nil {
		return nil, translate(err)
	}
	return ingredients, nil
}

func (r *ingredientRepository) GetByID(ctx context.Context, id int64) (*domain.Ingredient, error) {
	var ingredient domain.Ingredient
	if err := r.db.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		return nil, translate(err)
	}
	return &ingredient, nil
}

func (r *ingredientRepository) CountByIDs(ctx context.Context, ids []int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Ingredient{}).
		Where("id IN ?", ids).
		Count(&count).Error
	return count, translate(err)
}

func (r *ingredientRepository) CreateInBatches(ctx context.Context, ingredients []domain.Ingredient) error {
	return translate(r.db.WithContext(ctx).CreateInBatches(ingredients, 200).Error)
}
