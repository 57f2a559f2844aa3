package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"foodgram/internal/domain"
)

// MembershipRepository работает с тремя (actor, target) отношениями
// через общий контракт: создание, удаление и проверка существования.
type MembershipRepository interface {
	Exists(ctx context.Context, kind domain.MembershipKind, actorID, targetID int64) (bool, error)
	Create(ctx context.Context, kind domain.MembershipKind, actorID, targetID int64) error
	// Delete возвращает число удалённых строк: 0 означает,
	// что пары не было.
	Delete(ctx context.Context, kind domain.MembershipKind, actorID, targetID int64) (int64, error)
	ListSubscriptions(ctx context.Context, subscriberID int64, limit, offset int) ([]domain.Subscription, int64, error)
}

type membershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

// pairQuery возвращает модель отношения и условие по паре ключей.
func pairQuery(kind domain.MembershipKind) (model any, where string, err error) {
	switch kind {
	case domain.KindFavorite:
		return &domain.Favorite{}, "user_id = ? AND recipe_id = ?", nil
	case domain.KindShoppingCart:
		return &domain.ShoppingCart{}, "user_id = ? AND recipe_id = ?", nil
	case domain.KindSubscription:
		return &domain.Subscription{}, "subscriber_id = ? AND author_id = ?", nil
	default:
		return nil, "", fmt.Errorf("unknown membership kind: %s", kind)
	}
}

func (r *membershipRepository) Exists(ctx context.Context, kind domain.MembershipKind, actorID, targetID int64) (bool, error) {
	model, where, err := pairQuery(kind)
	if err != nil {
		return false, err
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(model).
		Where(where, actorID, targetID).
		Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (r *membershipRepository) Create(ctx context.Context, kind domain.MembershipKind, actorID, targetID int64) error {
	var row any
	switch kind {
	case domain.KindFavorite:
		row = &domain.Favorite{UserID: actorID, RecipeID: targetID}
	case domain.KindShoppingCart:
		row = &domain.ShoppingCart{UserID: actorID, RecipeID: targetID}
	case domain.KindSubscription:
		row = &domain.Subscription{SubscriberID: actorID, AuthorID: targetID}
	default:
		return fmt.Errorf("unknown membership kind: %s", kind)
	}

	return translate(r.db.WithContext(ctx).Create(row).Error)
}

func (r *membershipRepository) Delete(ctx context.Context, kind domain.MembershipKind, actorID, targetID int64) (int64, error) {
	model, where, err := pairQuery(kind)
	if err != nil {
		return 0, err
	}

	result := r.db.WithContext(ctx).Where(where, actorID, targetID).Delete(model)
	if result.Error != nil {
		return 0, translate(result.Error)
	}
	return result.RowsAffected, nil
}

// ListSubscriptions возвращает подписки пользователя с авторами.
func (r *membershipRepository) ListSubscriptions(ctx context.Context, subscriberID int64, limit, offset int) ([]domain.Subscription, int64, error) {
	var subs []domain.Subscription
	var total int64

	if err := r.db.WithContext(ctx).
		Model(&domain.Subscription{}).
		Where("subscriber_id = ?", subscriberID).
		Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	q := r.db.WithContext(ctx).
		Where("subscriber_id = ?", subscriberID).
		Preload("Author").
		Order("created_at DESC")

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	if err := q.Find(&subs).Error; err != nil {
		return nil, 0, translate(err)
	}

	return subs, total, nil
}
