package cart

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodgram/internal/pkg/response"
)

// Handler отдаёт агрегированный список покупок файлом
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/recipes/download_shopping_cart/", h.Download)
}

// Download выгружает список покупок в CSV
//
// @Summary Скачать список покупок
// @Description Суммирует ингредиенты всех рецептов в корзине и отдаёт CSV-файл
// @Tags ShoppingCart
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string "CSV-файл со списком покупок"
// @Failure 400 {object} map[string]any "Список покупок пуст"
// @Failure 401 {object} map[string]any "Пользователь не авторизован"
// @Failure 500 {object} map[string]any "Ошибка при формировании списка"
// @Router /recipes/download_shopping_cart/ [get]
func (h *Handler) Download(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	items, err := h.service.Aggregate(c.Request.Context(), userID.(int64))
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			response.Error(c, http.StatusBadRequest, "EMPTY_CART", "shopping cart is empty")
			return
		}
		// Наружу не утекают ни ошибки хранилища, ни стек.
		log.Printf("shopping cart aggregation failed: user_id=%d error=%v", userID, err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to build shopping list")
		return
	}

	data, err := RenderCSV(items)
	if err != nil {
		log.Printf("shopping cart render failed: user_id=%d error=%v", userID, err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to build shopping list")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shopping_list.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
