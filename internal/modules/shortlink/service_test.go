package shortlink

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"foodgram/internal/domain"
	"foodgram/internal/repository"
)

func setupTestService(t *testing.T) (*Service, repository.RecipeRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:shortlink_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Tag{}, &domain.Ingredient{}, &domain.Recipe{}, &domain.RecipeIngredient{}); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}

	recipes := repository.NewRecipeRepository(db)
	svc := NewService(recipes, NewGenerator(), "https://fg.example.org/s/", "https://fg.example.org/recipes/")
	return svc, recipes, db
}

func seedRecipe(t *testing.T, db *gorm.DB, shortLink string) *domain.Recipe {
	t.Helper()
	recipe := &domain.Recipe{
		Name:        "Блины",
		Text:        "Тесто, сковорода.",
		CookingTime: 30,
		AuthorID:    1,
		ShortLink:   shortLink,
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("failed to seed recipe: %v", err)
	}
	return recipe
}

func TestAssignSetsUniqueShortLink(t *testing.T) {
	svc, _, _ := setupTestService(t)

	recipe := &domain.Recipe{Name: "Суп", Text: "Варить.", CookingTime: 40, AuthorID: 1}
	if err := svc.Assign(context.Background(), recipe); err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}
	if recipe.ShortLink == "" {
		t.Fatal("expected short link to be assigned")
	}
	if len(recipe.ShortLink) > domain.ShortLinkLength {
		t.Fatalf("short link %q longer than %d characters", recipe.ShortLink, domain.ShortLinkLength)
	}
}

func TestAssignNeverOverwritesExistingLink(t *testing.T) {
	svc, _, _ := setupTestService(t)

	recipe := &domain.Recipe{Name: "Суп", Text: "Варить.", CookingTime: 40, AuthorID: 1, ShortLink: "keepMe1234"}
	if err := svc.Assign(context.Background(), recipe); err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}
	if recipe.ShortLink != "keepMe1234" {
		t.Fatalf("existing short link was overwritten: %q", recipe.ShortLink)
	}
}

func TestResolveReturnsRecipeID(t *testing.T) {
	svc, _, db := setupTestService(t)
	recipe := seedRecipe(t, db, "abcDEF1234")

	id, err := svc.Resolve(context.Background(), "abcDEF1234")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if id != recipe.ID {
		t.Fatalf("expected recipe id %d, got %d", recipe.ID, id)
	}
}

func TestResolveUnknownTokenIsNotFound(t *testing.T) {
	svc, _, _ := setupTestService(t)

	_, err := svc.Resolve(context.Background(), "nope123456")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecipeURLContainsID(t *testing.T) {
	svc, _, _ := setupTestService(t)

	url := svc.RecipeURL(42)
	if !strings.Contains(url, "42") {
		t.Fatalf("expected recipe URL to contain id, got %q", url)
	}
	if !strings.HasPrefix(url, "https://fg.example.org/recipes/") {
		t.Fatalf("unexpected recipe URL prefix: %q", url)
	}
}

func TestShortURLJoinsBaseAndToken(t *testing.T) {
	svc, _, _ := setupTestService(t)

	if got := svc.ShortURL("abcDEF1234"); got != "https://fg.example.org/s/abcDEF1234" {
		t.Fatalf("unexpected short URL: %q", got)
	}
}

func TestShortLinkUniqueIndexRejectsDuplicate(t *testing.T) {
	_, _, db := setupTestService(t)
	seedRecipe(t, db, "collide123")

	dup := &domain.Recipe{Name: "Каша", Text: "Варить.", CookingTime: 10, AuthorID: 2, ShortLink: "collide123"}
	if err := db.Create(dup).Error; err == nil {
		t.Fatal("expected unique index to reject duplicate short link")
	}
}
