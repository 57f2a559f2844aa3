package repository

import (
	"context"

	"gorm.io/gorm"

	"foodgram/internal/domain"
)

type TagRepository interface {
	List(ctx context.Context) ([]domain.Tag, error)
	GetByID(ctx context.Context, id int64) (*domain.Tag, error)
	CountByIDs(ctx context.Context, ids []int64) (int64, error)
	CreateInBatches(ctx context.Context, tags []domain.Tag) error
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) List(ctx context.Context) ([]domain.Tag, error) {
	var tags []domain.Tag
	if err := r.db.WithContext(ctx).Order("name").Find(&tags).Error; err != nil {
		return nil, translate(err)
	}
	return tags, nil
}

func (r *tagRepository) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	var tag domain.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, translate(err)
	}
	return &tag, nil
}

func (r *tagRepository) CountByIDs(ctx context.Context, ids []int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Tag{}).
		Where("id IN ?", ids).
		Count(&count).Error
	return count, translate(err)
}

func (r *tagRepository) CreateInBatches(ctx context.Context, tags []domain.Tag) error {
	return translate(r.db.WithContext(ctx).CreateInBatches(tags, 200).Error)
}
