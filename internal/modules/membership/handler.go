package membership

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"foodgram/internal/domain"
	"foodgram/internal/pkg/response"
	"foodgram/internal/repository"
)

// Handler обрабатывает избранное, корзину и подписки
type Handler struct {
	service *Service
	recipes repository.RecipeRepository
	users   repository.UserRepository
}

func NewHandler(service *Service, recipes repository.RecipeRepository, users repository.UserRepository) *Handler {
	return &Handler{service: service, recipes: recipes, users: users}
}

// RegisterRoutes регистрирует защищённые membership-маршруты
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recipes/:id/favorite/", h.addRecipePair(domain.KindFavorite))
	rg.DELETE("/recipes/:id/favorite/", h.removeRecipePair(domain.KindFavorite))
	rg.POST("/recipes/:id/shopping_cart/", h.addRecipePair(domain.KindShoppingCart))
	rg.DELETE("/recipes/:id/shopping_cart/", h.removeRecipePair(domain.KindShoppingCart))

	rg.GET("/users/subscriptions/", h.GetSubscriptions)
	rg.POST("/users/:id/subscribe/", h.Subscribe)
	rg.DELETE("/users/:id/subscribe/", h.Unsubscribe)
}

// addRecipePair добавляет рецепт в избранное или корзину.
// Рецепт разрешается по id до основной логики: 404 раньше 400.
func (h *Handler) addRecipePair(kind domain.MembershipKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actorID(c)
		if !ok {
			return
		}

		recipe, ok := h.resolveRecipe(c)
		if !ok {
			return
		}

		if err := h.service.Add(c.Request.Context(), kind, userID, recipe.ID); err != nil {
			if errors.Is(err, ErrAlreadyExists) {
				response.Error(c, http.StatusBadRequest, "ALREADY_EXISTS", "recipe already added")
				return
			}
			log.Printf("membership add failed: kind=%s user_id=%d recipe_id=%d error=%v", kind, userID, recipe.ID, err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to add recipe")
			return
		}

		response.Success(c, http.StatusCreated, ToShortRecipe(recipe))
	}
}

func (h *Handler) removeRecipePair(kind domain.MembershipKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actorID(c)
		if !ok {
			return
		}

		recipe, ok := h.resolveRecipe(c)
		if !ok {
			return
		}

		if err := h.service.Remove(c.Request.Context(), kind, userID, recipe.ID); err != nil {
			if errors.Is(err, ErrNotFound) {
				response.Error(c, http.StatusNotFound, "NOT_FOUND", "recipe was not added")
				return
			}
			log.Printf("membership remove failed: kind=%s user_id=%d recipe_id=%d error=%v", kind, userID, recipe.ID, err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to remove recipe")
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// Subscribe подписывает текущего пользователя на автора
//
// @Summary Подписаться на автора
// @Tags Subscription
// @Security BearerAuth
// @Param id path int64 true "ID автора"
// @Success 201 {object} AuthorResponse
// @Failure 400 {object} map[string]any "Уже подписан или подписка на себя"
// @Failure 404 {object} map[string]any "Автор не найден"
// @Router /users/{id}/subscribe/ [post]
func (h *Handler) Subscribe(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	author, ok := h.resolveUser(c)
	if !ok {
		return
	}

	if err := h.service.Add(c.Request.Context(), domain.KindSubscription, userID, author.ID); err != nil {
		switch {
		case errors.Is(err, ErrSelfReference):
			response.Error(c, http.StatusBadRequest, "SELF_REFERENCE", "cannot subscribe to yourself")
		case errors.Is(err, ErrAlreadyExists):
			response.Error(c, http.StatusBadRequest, "ALREADY_EXISTS", "already subscribed")
		default:
			log.Printf("subscribe failed: user_id=%d author_id=%d error=%v", userID, author.ID, err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to subscribe")
		}
		return
	}

	resp, err := h.authorResponse(c, author, 0)
	if err != nil {
		log.Printf("subscribe response failed: author_id=%d error=%v", author.ID, err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to subscribe")
		return
	}
	response.Success(c, http.StatusCreated, resp)
}

// Unsubscribe отписывает текущего пользователя от автора
func (h *Handler) Unsubscribe(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	author, ok := h.resolveUser(c)
	if !ok {
		return
	}

	if err := h.service.Remove(c.Request.Context(), domain.KindSubscription, userID, author.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "not subscribed to this author")
			return
		}
		log.Printf("unsubscribe failed: user_id=%d author_id=%d error=%v", userID, author.ID, err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to unsubscribe")
		return
	}

	c.Status(http.StatusNoContent)
}

// GetSubscriptions возвращает авторов, на которых подписан пользователь
//
// @Summary Список подписок
// @Tags Subscription
// @Security BearerAuth
// @Param page query int false "Номер страницы" default(1)
// @Param per_page query int false "Элементов на страницу" default(20)
// @Param recipes_limit query int false "Сколько рецептов автора вернуть"
// @Success 200 {object} SubscriptionListResponse
// @Router /users/subscriptions/ [get]
func (h *Handler) GetSubscriptions(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	recipesLimit, _ := strconv.Atoi(c.Query("recipes_limit"))

	subs, total, err := h.service.Subscriptions(c.Request.Context(), userID, perPage, (page-1)*perPage)
	if err != nil {
		log.Printf("subscriptions list failed: user_id=%d error=%v", userID, err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list subscriptions")
		return
	}

	results := make([]AuthorResponse, 0, len(subs))
	for _, sub := range subs {
		if sub.Author == nil {
			continue
		}
		resp, err := h.authorResponse(c, sub.Author, recipesLimit)
		if err != nil {
			log.Printf("subscriptions list failed: author_id=%d error=%v", sub.AuthorID, err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list subscriptions")
			return
		}
		results = append(results, resp)
	}

	response.Success(c, http.StatusOK, SubscriptionListResponse{
		Count:   total,
		Page:    page,
		PerPage: perPage,
		Results: results,
	})
}

func (h *Handler) authorResponse(c *gin.Context, author *domain.User, recipesLimit int) (AuthorResponse, error) {
	ctx := c.Request.Context()

	recipes, err := h.recipes.ListByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return AuthorResponse{}, err
	}
	count, err := h.recipes.CountByAuthor(ctx, author.ID)
	if err != nil {
		return AuthorResponse{}, err
	}

	short := make([]ShortRecipe, len(recipes))
	for i := range recipes {
		short[i] = ToShortRecipe(&recipes[i])
	}

	return AuthorResponse{
		ID:           author.ID,
		Username:     author.Username,
		Email:        author.Email,
		FirstName:    author.FirstName,
		LastName:     author.LastName,
		Avatar:       author.Avatar,
		IsSubscribed: true,
		Recipes:      short,
		RecipesCount: count,
	}, nil
}

func (h *Handler) resolveRecipe(c *gin.Context) (*domain.Recipe, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid recipe id")
		return nil, false
	}

	recipe, err := h.recipes.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "recipe not found")
			return nil, false
		}
		log.Printf("recipe lookup failed: id=%d error=%v", id, err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load recipe")
		return nil, false
	}
	return recipe, true
}

func (h *Handler) resolveUser(c *gin.Context) (*domain.User, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid user id")
		return nil, false
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "user not found")
			return nil, false
		}
		log.Printf("user lookup failed: id=%d error=%v", id, err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load user")
		return nil, false
	}
	return user, true
}

// actorID достаёт id пользователя, установленный JWT middleware.
func actorID(c *gin.Context) (int64, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return 0, false
	}
	id, ok := v.(int64)
	if !ok || id == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return 0, false
	}
	return id, true
}
