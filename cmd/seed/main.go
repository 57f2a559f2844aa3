package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"foodgram/internal/database"
	"foodgram/internal/domain"
	"foodgram/internal/modules/shortlink"
	"foodgram/internal/repository"
)

// Наполняет базу справочниками и демо-данными для локальной разработки.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "foodgram.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	ctx := context.Background()
	ingredientRepo := repository.NewIngredientRepository(db)
	tagRepo := repository.NewTagRepository(db)
	userRepo := repository.NewUserRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)

	tags := []domain.Tag{
		{Name: "Завтрак", Slug: "breakfast"},
		{Name: "Обед", Slug: "lunch"},
		{Name: "Ужин", Slug: "dinner"},
		{Name: "Десерт", Slug: "dessert"},
	}
	if err := tagRepo.CreateInBatches(ctx, tags); err != nil {
		log.Println("tags already seeded:", err)
	}

	ingredients := []domain.Ingredient{
		{Name: "мука", MeasurementUnit: "г"},
		{Name: "сахар", MeasurementUnit: "г"},
		{Name: "соль", MeasurementUnit: "г"},
		{Name: "яйцо", MeasurementUnit: "шт"},
		{Name: "молоко", MeasurementUnit: "мл"},
		{Name: "масло сливочное", MeasurementUnit: "г"},
		{Name: "картофель", MeasurementUnit: "г"},
		{Name: "лук репчатый", MeasurementUnit: "г"},
		{Name: "морковь", MeasurementUnit: "г"},
		{Name: "курица", MeasurementUnit: "г"},
	}
	if err := ingredientRepo.CreateInBatches(ctx, ingredients); err != nil {
		log.Println("ingredients already seeded:", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}
	demo := &domain.User{
		Email:        "demo@foodgram.local",
		Username:     "demo",
		FirstName:    "Демо",
		LastName:     "Пользователь",
		PasswordHash: string(hash),
	}
	if err := userRepo.Create(ctx, demo); err != nil {
		log.Println("demo user already exists:", err)
		if existing, lookupErr := userRepo.GetByEmail(ctx, demo.Email); lookupErr == nil {
			demo = existing
		}
	}

	seeded, err := recipeRepo.CountByAuthor(ctx, demo.ID)
	if err != nil {
		log.Fatal(err)
	}
	if seeded > 0 {
		log.Println("Demo recipes already present, done.")
		return
	}

	gen := shortlink.NewGenerator()
	link, err := gen.Generate(func(candidate string) (bool, error) {
		return recipeRepo.ShortLinkExists(ctx, candidate)
	})
	if err != nil {
		log.Fatal(err)
	}

	pancakes := &domain.Recipe{
		Name:        "Блины",
		Text:        "Смешать ингредиенты, выпекать на раскалённой сковороде.",
		CookingTime: 30,
		AuthorID:    demo.ID,
		ShortLink:   link,
		Ingredients: []domain.RecipeIngredient{
			{IngredientID: 1, Amount: 200},
			{IngredientID: 4, Amount: 2},
			{IngredientID: 5, Amount: 500},
		},
	}
	if err := recipeRepo.Create(ctx, pancakes, []int64{1}); err != nil {
		log.Fatal("seed recipe failed:", err)
	}

	log.Println("Seed complete.")
}
