package recipe

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"foodgram/internal/domain"
	"foodgram/internal/modules/membership"
	"foodgram/internal/pkg/response"
	"foodgram/internal/pkg/validator"
	"foodgram/internal/repository"
)

// Handler обрабатывает HTTP запросы для рецептов
type Handler struct {
	service     *Service
	memberships *membership.Service
}

func NewHandler(service *Service, memberships *membership.Service) *Handler {
	return &Handler{service: service, memberships: memberships}
}

// RegisterPublicRoutes — чтение; optional-auth middleware даёт
// персональные флаги, когда зритель авторизован.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	recipes := rg.Group("/recipes")
	{
		recipes.GET("/", h.List)
		recipes.GET("/:id/", h.Get)
		recipes.GET("/:id/get-link/", h.GetLink)
	}
}

// RegisterProtectedRoutes — создание и изменение, только с JWT.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	recipes := rg.Group("/recipes")
	{
		recipes.POST("/", h.Create)
		recipes.PATCH("/:id/", h.Update)
		recipes.DELETE("/:id/", h.Delete)
	}
}

// Create создаёт рецепт
//
// @Summary Создать рецепт
// @Description Создаёт рецепт с ингредиентами и тегами; короткая ссылка назначается автоматически
// @Tags Recipe
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRecipeRequest true "Рецепт"
// @Success 201 {object} RecipeResponse
// @Failure 400 {object} map[string]any "Ошибка валидации"
// @Failure 401 {object} map[string]any "Пользователь не авторизован"
// @Router /recipes/ [post]
func (h *Handler) Create(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	recipe, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.writeError(c, err, "failed to create recipe")
		return
	}

	response.Success(c, http.StatusCreated, toRecipeResponse(recipe, false, false))
}

// Update частично обновляет рецепт (только автор)
func (h *Handler) Update(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request fields", errs)
		return
	}

	recipe, err := h.service.Update(c.Request.Context(), userID, recipeID, req)
	if err != nil {
		h.writeError(c, err, "failed to update recipe")
		return
	}

	isFav, isInCart := h.viewerFlags(c, userID, recipe.ID)
	response.Success(c, http.StatusOK, toRecipeResponse(recipe, isFav, isInCart))
}

// Delete удаляет рецепт (только автор)
func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, recipeID); err != nil {
		h.writeError(c, err, "failed to delete recipe")
		return
	}

	c.Status(http.StatusNoContent)
}

// Get возвращает рецепт по id
func (h *Handler) Get(c *gin.Context) {
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	recipe, err := h.service.Get(c.Request.Context(), recipeID)
	if err != nil {
		h.writeError(c, err, "failed to load recipe")
		return
	}

	viewerID := c.GetInt64("user_id")
	isFav, isInCart := h.viewerFlags(c, viewerID, recipe.ID)
	response.Success(c, http.StatusOK, toRecipeResponse(recipe, isFav, isInCart))
}

// List возвращает страницу рецептов с фильтрами
//
// @Summary Список рецептов
// @Tags Recipe
// @Param page query int false "Номер страницы" default(1)
// @Param per_page query int false "Элементов на страницу" default(20)
// @Param author query int false "id автора"
// @Param tags query []string false "слаги тегов"
// @Param is_favorited query bool false "только избранное зрителя"
// @Param is_in_shopping_cart query bool false "только корзина зрителя"
// @Success 200 {object} RecipeListResponse
// @Router /recipes/ [get]
func (h *Handler) List(c *gin.Context) {
	viewerID := c.GetInt64("user_id")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	f := repository.RecipeFilters{
		TagSlugs: c.QueryArray("tags"),
		Limit:    perPage,
		Offset:   (page - 1) * perPage,
	}
	if author, err := strconv.ParseInt(c.Query("author"), 10, 64); err == nil {
		f.AuthorID = author
	}
	// Фильтры по избранному и корзине имеют смысл только
	// для авторизованного зрителя.
	if c.Query("is_favorited") == "1" || c.Query("is_favorited") == "true" {
		if viewerID == 0 {
			response.Success(c, http.StatusOK, emptyListResponse(page, perPage))
			return
		}
		f.FavoritedBy = viewerID
	}
	if c.Query("is_in_shopping_cart") == "1" || c.Query("is_in_shopping_cart") == "true" {
		if viewerID == 0 {
			response.Success(c, http.StatusOK, emptyListResponse(page, perPage))
			return
		}
		f.InCartOf = viewerID
	}

	recipes, total, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		log.Printf("recipe list failed: error=%v", err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list recipes")
		return
	}

	results := make([]RecipeResponse, len(recipes))
	for i := range recipes {
		isFav, isInCart := h.viewerFlags(c, viewerID, recipes[i].ID)
		results[i] = toRecipeResponse(&recipes[i], isFav, isInCart)
	}

	response.Success(c, http.StatusOK, RecipeListResponse{
		Count:   total,
		Page:    page,
		PerPage: perPage,
		Results: results,
	})
}

// GetLink возвращает короткую ссылку рецепта
//
// @Summary Получить короткую ссылку на рецепт
// @Tags Recipe
// @Param id path int64 true "ID рецепта"
// @Success 200 {object} ShortLinkResponse
// @Failure 404 {object} map[string]any "Рецепт не найден"
// @Router /recipes/{id}/get-link/ [get]
func (h *Handler) GetLink(c *gin.Context) {
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	recipe, err := h.service.Get(c.Request.Context(), recipeID)
	if err != nil {
		h.writeError(c, err, "failed to load recipe")
		return
	}

	response.Success(c, http.StatusOK, ShortLinkResponse{
		ShortLink: h.service.ShortURL(recipe),
	})
}

func (h *Handler) viewerFlags(c *gin.Context, viewerID, recipeID int64) (isFavorited, isInCart bool) {
	if viewerID == 0 {
		return false, false
	}
	ctx := c.Request.Context()
	isFavorited, _ = h.memberships.Exists(ctx, domain.KindFavorite, viewerID, recipeID)
	isInCart, _ = h.memberships.Exists(ctx, domain.KindShoppingCart, viewerID, recipeID)
	return isFavorited, isInCart
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "recipe not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "only the author can modify the recipe")
	default:
		log.Printf("recipe handler: %s: %v", fallback, err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid recipe id")
		return 0, false
	}
	return id, true
}

func emptyListResponse(page, perPage int) RecipeListResponse {
	return RecipeListResponse{
		Count:   0,
		Page:    page,
		PerPage: perPage,
		Results: []RecipeResponse{},
	}
}
