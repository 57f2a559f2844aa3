package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/middleware"
	"foodgram/internal/modules/auth"
	"foodgram/internal/modules/cart"
	"foodgram/internal/modules/catalog"
	"foodgram/internal/modules/membership"
	"foodgram/internal/modules/recipe"
	"foodgram/internal/modules/shortlink"
	jwtsvc "foodgram/internal/pkg/jwt"
	"foodgram/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	tagRepo := repository.NewTagRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	shortLinkService := shortlink.NewService(
		recipeRepo,
		shortlink.NewGenerator(),
		cfg.ShortLinkBase,
		cfg.RecipePageURL,
	)
	shortLinkHandler := shortlink.NewHandler(shortLinkService)

	membershipService := membership.NewService(membershipRepo)
	membershipHandler := membership.NewHandler(membershipService, recipeRepo, userRepo)

	recipeService := recipe.NewService(recipeRepo, ingredientRepo, tagRepo, shortLinkService)
	recipeHandler := recipe.NewHandler(recipeService, membershipService)

	cartService := cart.NewService(recipeRepo)
	cartHandler := cart.NewHandler(cartService)

	catalogHandler := catalog.NewHandler(tagRepo, ingredientRepo)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	// Переход по короткой ссылке живёт вне /api
	shortLinkHandler.RegisterRoutes(r)

	api := r.Group("/api")
	{
		// public: чтение персонализируется, если токен приложен
		public := api.Group("/")
		public.Use(middleware.OptionalJWTAuth(j))
		{
			authHandler.RegisterPublicRoutes(public)
			catalogHandler.RegisterRoutes(public)
			recipeHandler.RegisterPublicRoutes(public)
		}

		// protected: только с валидным JWT
		protected := api.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			recipeHandler.RegisterProtectedRoutes(protected)
			membershipHandler.RegisterRoutes(protected)
			cartHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
