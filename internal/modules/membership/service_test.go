package membership

import (
	"context"
	"errors"
	"fmt"
	"testing"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"foodgram/internal/domain"
	"foodgram/internal/repository"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:membership_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.User{}, &domain.Recipe{},
		&domain.Favorite{}, &domain.ShoppingCart{}, &domain.Subscription{},
	); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return NewService(repository.NewMembershipRepository(db)), db
}

func TestAddFavoriteThenDuplicateFails(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	if err := svc.Add(ctx, domain.KindFavorite, 1, 10); err != nil {
		t.Fatalf("first add returned error: %v", err)
	}
	err := svc.Add(ctx, domain.KindFavorite, 1, 10)
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists on duplicate add, got %v", err)
	}
}

func TestRemoveNeverAddedFailsWithNotFound(t *testing.T) {
	svc, _ := setupTestService(t)

	err := svc.Remove(context.Background(), domain.KindFavorite, 1, 10)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddRemoveAddCycle(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	if err := svc.Add(ctx, domain.KindShoppingCart, 2, 20); err != nil {
		t.Fatalf("add returned error: %v", err)
	}
	if err := svc.Remove(ctx, domain.KindShoppingCart, 2, 20); err != nil {
		t.Fatalf("remove returned error: %v", err)
	}
	// Повторное удаление — ошибка, а не no-op.
	if err := svc.Remove(ctx, domain.KindShoppingCart, 2, 20); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second remove, got %v", err)
	}
	// После удаления пару можно добавить снова.
	if err := svc.Add(ctx, domain.KindShoppingCart, 2, 20); err != nil {
		t.Fatalf("re-add returned error: %v", err)
	}
}

func TestSelfSubscriptionRejected(t *testing.T) {
	svc, _ := setupTestService(t)

	err := svc.Add(context.Background(), domain.KindSubscription, 5, 5)
	if !errors.Is(err, ErrSelfReference) {
		t.Fatalf("expected ErrSelfReference, got %v", err)
	}
}

func TestSubscribeTwiceFails(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	if err := svc.Add(ctx, domain.KindSubscription, 1, 2); err != nil {
		t.Fatalf("subscribe returned error: %v", err)
	}
	if err := svc.Add(ctx, domain.KindSubscription, 1, 2); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	// Обратное направление — другая пара, подписка допустима.
	if err := svc.Add(ctx, domain.KindSubscription, 2, 1); err != nil {
		t.Fatalf("reverse subscribe returned error: %v", err)
	}
}

func TestRelationsAreIndependent(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	if err := svc.Add(ctx, domain.KindFavorite, 3, 30); err != nil {
		t.Fatalf("favorite add returned error: %v", err)
	}
	// Та же пара в корзине — отдельное отношение.
	if err := svc.Add(ctx, domain.KindShoppingCart, 3, 30); err != nil {
		t.Fatalf("cart add returned error: %v", err)
	}
	if err := svc.Remove(ctx, domain.KindFavorite, 3, 30); err != nil {
		t.Fatalf("favorite remove returned error: %v", err)
	}

	inCart, err := svc.Exists(ctx, domain.KindShoppingCart, 3, 30)
	if err != nil {
		t.Fatalf("exists returned error: %v", err)
	}
	if !inCart {
		t.Fatal("cart membership should survive favorite removal")
	}
}

// Уникальный индекс — источник истины: дубликат, вставленный в обход
// сервисной проверки, отклоняется хранилищем.
func TestStorageConstraintRejectsRacingDuplicate(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	if err := svc.Add(ctx, domain.KindFavorite, 4, 40); err != nil {
		t.Fatalf("add returned error: %v", err)
	}

	err := db.Create(&domain.Favorite{UserID: 4, RecipeID: 40}).Error
	if err == nil {
		t.Fatal("expected unique index to reject duplicate row")
	}
}

func TestSubscriptionsListing(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	author := &domain.User{Email: "author@foodgram.local", Username: "author"}
	if err := db.Create(author).Error; err != nil {
		t.Fatalf("failed to seed author: %v", err)
	}

	if err := svc.Add(ctx, domain.KindSubscription, 100, author.ID); err != nil {
		t.Fatalf("subscribe returned error: %v", err)
	}

	subs, total, err := svc.Subscriptions(ctx, 100, 20, 0)
	if err != nil {
		t.Fatalf("Subscriptions returned error: %v", err)
	}
	if total != 1 || len(subs) != 1 {
		t.Fatalf("expected 1 subscription, got total=%d len=%d", total, len(subs))
	}
	if subs[0].Author == nil || subs[0].Author.Username != "author" {
		t.Fatalf("expected preloaded author, got %+v", subs[0].Author)
	}
}
