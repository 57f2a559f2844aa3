package membership

import (
	"context"
	"errors"

	"foodgram/internal/domain"
	"foodgram/internal/repository"
)

// Service реализует общий контракт трёх membership-отношений.
// Предварительная проверка существования даёт дружелюбную ошибку,
// но истина — уникальный индекс: гонка, проскочившая мимо проверки,
// возвращается из хранилища как duplicate и тоже становится
// ErrAlreadyExists.
type Service struct {
	memberships repository.MembershipRepository
}

func NewService(memberships repository.MembershipRepository) *Service {
	return &Service{memberships: memberships}
}

// Add переводит пару (actor, target) из absent в present.
// Для подписок запрещена ссылка на самого себя.
func (s *Service) Add(ctx context.Context, kind domain.MembershipKind, actorID, targetID int64) error {
	if kind == domain.KindSubscription && actorID == targetID {
		return ErrSelfReference
	}

	exists, err := s.memberships.Exists(ctx, kind, actorID, targetID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyExists
	}

	if err := s.memberships.Create(ctx, kind, actorID, targetID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAlreadyExists
		}
		if errors.Is(err, repository.ErrCheckViolation) {
			return ErrSelfReference
		}
		return err
	}
	return nil
}

// Remove переводит пару из present в absent.
// Ноль затронутых строк — ErrNotFound, а не тихий успех.
func (s *Service) Remove(ctx context.Context, kind domain.MembershipKind, actorID, targetID int64) error {
	affected, err := s.memberships.Delete(ctx, kind, actorID, targetID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Exists — фильтрованное чтение для флагов is_favorited /
// is_in_shopping_cart в ответах API.
func (s *Service) Exists(ctx context.Context, kind domain.MembershipKind, actorID, targetID int64) (bool, error) {
	return s.memberships.Exists(ctx, kind, actorID, targetID)
}

// Subscriptions возвращает подписки пользователя с авторами.
func (s *Service) Subscriptions(ctx context.Context, subscriberID int64, limit, offset int) ([]domain.Subscription, int64, error) {
	return s.memberships.ListSubscriptions(ctx, subscriberID, limit, offset)
}
