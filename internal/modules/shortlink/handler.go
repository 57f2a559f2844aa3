package shortlink

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodgram/internal/pkg/response"
)

// Handler обрабатывает переходы по коротким ссылкам
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/s/:shortLink", h.Redirect)
}

// Redirect перенаправляет по короткой ссылке на страницу рецепта
//
// @Summary Переход по короткой ссылке
// @Description Находит рецепт по токену и перенаправляет на его каноническую страницу
// @Tags ShortLink
// @Param shortLink path string true "Токен короткой ссылки"
// @Success 302 "Redirect на страницу рецепта"
// @Failure 404 {object} map[string]any "Ссылка не найдена"
// @Router /s/{shortLink} [get]
func (h *Handler) Redirect(c *gin.Context) {
	token := c.Param("shortLink")

	recipeID, err := h.service.Resolve(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "short link not found")
			return
		}
		log.Printf("shortlink resolve failed: token=%q error=%v", token, err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to resolve short link")
		return
	}

	c.Redirect(http.StatusFound, h.service.RecipeURL(recipeID))
}
