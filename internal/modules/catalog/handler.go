package catalog

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"foodgram/internal/pkg/response"
	"foodgram/internal/repository"
)

// Handler отдаёт справочники тегов и ингредиентов (только чтение)
type Handler struct {
	tags        repository.TagRepository
	ingredients repository.IngredientRepository
}

func NewHandler(tags repository.TagRepository, ingredients repository.IngredientRepository) *Handler {
	return &Handler{tags: tags, ingredients: ingredients}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	tags := rg.Group("/tags")
	{
		tags.GET("/", h.ListTags)
		tags.GET("/:id/", h.GetTag)
	}

	ingredients := rg.Group("/ingredients")
	{
		ingredients.GET("/", h.ListIngredients)
		ingredients.GET("/:id/", h.GetIngredient)
	}
}

func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.tags.List(c.Request.Context())
	if err != nil {
		log.Printf("tag list failed: error=%v", err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list tags")
		return
	}
	response.Success(c, http.StatusOK, tags)
}

func (h *Handler) GetTag(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid tag id")
		return
	}

	tag, err := h.tags.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "tag not found")
			return
		}
		log.Printf("tag lookup failed: id=%d error=%v", id, err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load tag")
		return
	}
	response.Success(c, http.StatusOK, tag)
}

// ListIngredients поддерживает фильтр по началу названия
//
// @Summary Список ингредиентов
// @Tags Catalog
// @Param name query string false "Начало названия (без учёта регистра)"
// @Success 200 {array} domain.Ingredient
// @Router /ingredients/ [get]
func (h *Handler) ListIngredients(c *gin.Context) {
	ingredients, err := h.ingredients.List(c.Request.Context(), c.Query("name"))
	if err != nil {
		log.Printf("ingredient list failed: error=%v", err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list ingredients")
		return
	}
	response.Success(c, http.StatusOK, ingredients)
}

func (h *Handler) GetIngredient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid ingredient id")
		return
	}

	ingredient, err := h.ingredients.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "ingredient not found")
			return
		}
		log.Printf("ingredient lookup failed: id=%d error=%v", id, err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load ingredient")
		return
	}
	response.Success(c, http.StatusOK, ingredient)
}
