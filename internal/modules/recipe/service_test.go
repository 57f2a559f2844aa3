package recipe

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
	"foodgram/internal/modules/shortlink"
	"foodgram/internal/repository"
)

type testEnv struct {
	svc *Service
	db  *gorm.DB

	flour int64
	egg   int64
	tagID int64
}

func setupTestService(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:recipe_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.User{}, &domain.Tag{}, &domain.Ingredient{},
		&domain.Recipe{}, &domain.RecipeIngredient{},
		&domain.Favorite{}, &domain.ShoppingCart{},
	); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}

	flour := &domain.Ingredient{Name: "мука", MeasurementUnit: "г"}
	egg := &domain.Ingredient{Name: "яйцо", MeasurementUnit: "шт"}
	tag := &domain.Tag{Name: "Завтрак", Slug: "breakfast"}
	for _, row := range []any{flour, egg, tag} {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("failed to seed reference data: %v", err)
		}
	}

	recipeRepo := repository.NewRecipeRepository(db)
	links := shortlink.NewService(
		recipeRepo,
		shortlink.NewGenerator(),
		"https://fg.example.org/s/",
		"https://fg.example.org/recipes/",
	)
	svc := NewService(
		recipeRepo,
		repository.NewIngredientRepository(db),
		repository.NewTagRepository(db),
		links,
	)

	return &testEnv{svc: svc, db: db, flour: flour.ID, egg: egg.ID, tagID: tag.ID}
}

func (e *testEnv) validRequest() CreateRecipeRequest {
	return CreateRecipeRequest{
		Name:        "Блины",
		Text:        "Смешать и выпекать.",
		CookingTime: 30,
		Ingredients: []IngredientAmount{
			{ID: e.flour, Amount: 200},
			{ID: e.egg, Amount: 2},
		},
		Tags: []int64{e.tagID},
	}
}

func TestCreateAssignsShortLinkOnce(t *testing.T) {
	env := setupTestService(t)

	recipe, err := env.svc.Create(context.Background(), 1, env.validRequest())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if recipe.ShortLink == "" {
		t.Fatal("expected short link to be assigned at creation")
	}
	if len(recipe.ShortLink) > domain.ShortLinkLength {
		t.Fatalf("short link %q exceeds %d characters", recipe.ShortLink, domain.ShortLinkLength)
	}
	if len(recipe.Ingredients) != 2 {
		t.Fatalf("expected 2 ingredients, got %d", len(recipe.Ingredients))
	}
	if len(recipe.Tags) != 1 {
		t.Fatalf("expected 1 tag, got %d", len(recipe.Tags))
	}
}

func TestCreateShortLinksAreUniqueAcrossRecipes(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		recipe, err := env.svc.Create(ctx, 1, env.validRequest())
		if err != nil {
			t.Fatalf("Create #%d returned error: %v", i, err)
		}
		if seen[recipe.ShortLink] {
			t.Fatalf("duplicate short link %q", recipe.ShortLink)
		}
		seen[recipe.ShortLink] = true
	}
}

func TestCreateRejectsEmptyIngredients(t *testing.T) {
	env := setupTestService(t)

	req := env.validRequest()
	req.Ingredients = nil
	_, err := env.svc.Create(context.Background(), 1, req)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreateRejectsDuplicateIngredient(t *testing.T) {
	env := setupTestService(t)

	req := env.validRequest()
	req.Ingredients = []IngredientAmount{
		{ID: env.flour, Amount: 100},
		{ID: env.flour, Amount: 200},
	}
	_, err := env.svc.Create(context.Background(), 1, req)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreateRejectsAmountOutOfBounds(t *testing.T) {
	env := setupTestService(t)

	for _, amount := range []int{0, -5, 10001} {
		req := env.validRequest()
		req.Ingredients = []IngredientAmount{{ID: env.flour, Amount: amount}}
		_, err := env.svc.Create(context.Background(), 1, req)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("amount=%d: expected ErrValidation, got %v", amount, err)
		}
	}
}

func TestCreateRejectsCookingTimeOutOfBounds(t *testing.T) {
	env := setupTestService(t)

	for _, minutes := range []int{0, 10001} {
		req := env.validRequest()
		req.CookingTime = minutes
		_, err := env.svc.Create(context.Background(), 1, req)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("cooking_time=%d: expected ErrValidation, got %v", minutes, err)
		}
	}
}

func TestCreateRejectsUnknownIngredientAndTag(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	req := env.validRequest()
	req.Ingredients = []IngredientAmount{{ID: 9999, Amount: 10}}
	if _, err := env.svc.Create(ctx, 1, req); !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown ingredient: expected ErrValidation, got %v", err)
	}

	req = env.validRequest()
	req.Tags = []int64{9999}
	if _, err := env.svc.Create(ctx, 1, req); !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown tag: expected ErrValidation, got %v", err)
	}
}

func TestCreateRejectsDuplicateTags(t *testing.T) {
	env := setupTestService(t)

	req := env.validRequest()
	req.Tags = []int64{env.tagID, env.tagID}
	_, err := env.svc.Create(context.Background(), 1, req)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUpdateKeepsShortLink(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	created, err := env.svc.Create(ctx, 1, env.validRequest())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	link := created.ShortLink

	newName := "Блины на молоке"
	updated, err := env.svc.Update(ctx, 1, created.ID, UpdateRecipeRequest{Name: &newName})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != newName {
		t.Fatalf("expected updated name %q, got %q", newName, updated.Name)
	}
	if updated.ShortLink != link {
		t.Fatalf("short link changed on update: %q -> %q", link, updated.ShortLink)
	}
}

func TestUpdateReplacesIngredientSet(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	created, err := env.svc.Create(ctx, 1, env.validRequest())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := env.svc.Update(ctx, 1, created.ID, UpdateRecipeRequest{
		Ingredients: []IngredientAmount{{ID: env.egg, Amount: 3}},
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if len(updated.Ingredients) != 1 {
		t.Fatalf("expected ingredient set replaced, got %d rows", len(updated.Ingredients))
	}
	if updated.Ingredients[0].IngredientID != env.egg || updated.Ingredients[0].Amount != 3 {
		t.Fatalf("unexpected ingredient row: %+v", updated.Ingredients[0])
	}
}

func TestUpdateByNonAuthorForbidden(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	created, err := env.svc.Create(ctx, 1, env.validRequest())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	name := "Чужое"
	_, err = env.svc.Update(ctx, 2, created.ID, UpdateRecipeRequest{Name: &name})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := env.svc.Delete(ctx, 2, created.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden on delete, got %v", err)
	}
}

func TestDeleteRemovesRecipe(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	created, err := env.svc.Create(ctx, 1, env.validRequest())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := env.svc.Delete(ctx, 1, created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := env.svc.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	var count int64
	if err := env.db.Model(&domain.RecipeIngredient{}).
		Where("recipe_id = ?", created.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected recipe ingredients cleaned up, got %d rows", count)
	}
}

func TestGetUnknownRecipeIsNotFound(t *testing.T) {
	env := setupTestService(t)

	_, err := env.svc.Get(context.Background(), 424242)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListFiltersByTagSlug(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	if _, err := env.svc.Create(ctx, 1, env.validRequest()); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	recipes, total, err := env.svc.List(ctx, repository.RecipeFilters{TagSlugs: []string{"breakfast"}})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 1 || len(recipes) != 1 {
		t.Fatalf("expected 1 recipe for breakfast tag, got total=%d len=%d", total, len(recipes))
	}

	_, total, err = env.svc.List(ctx, repository.RecipeFilters{TagSlugs: []string{"dinner"}})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected no recipes for dinner tag, got %d", total)
	}
}

func TestShortURLUsesConfiguredBase(t *testing.T) {
	env := setupTestService(t)

	created, err := env.svc.Create(context.Background(), 1, env.validRequest())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	url := env.svc.ShortURL(created)
	if !strings.HasPrefix(url, "https://fg.example.org/s/") {
		t.Fatalf("unexpected short URL prefix: %q", url)
	}
	if !strings.HasSuffix(url, created.ShortLink) {
		t.Fatalf("short URL %q does not end with token %q", url, created.ShortLink)
	}
}
