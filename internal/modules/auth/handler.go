package auth

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

// Handler обрабатывает регистрацию, вход и профиль
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes — регистрация, вход и публичный профиль
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/users/", h.Register)
	rg.POST("/auth/token/login/", h.Login)
	rg.GET("/users/:id/", h.GetUser)
}

// RegisterProtectedRoutes — текущий пользователь
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/me/", h.Me)
}

// Register создаёт нового пользователя
//
// @Summary Регистрация
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Данные пользователя"
// @Success 201 {object} UserPublic
// @Failure 400 {object} map[string]any "Email уже занят или данные некорректны"
// @Router /users/ [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusBadRequest, "EMAIL_EXISTS", "email already registered")
			return
		}
		log.Printf("register failed: email=%s error=%v", req.Email, err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to register")
		return
	}

	response.Success(c, http.StatusCreated, toUserPublic(user))
}

// Login выдаёт auth-токен
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	token, _, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
			return
		}
		log.Printf("login failed: email=%s error=%v", req.Email, err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to login")
		return
	}

	response.Success(c, http.StatusOK, LoginResponse{AuthToken: token})
}

// Me возвращает профиль текущего пользователя
func (h *Handler) Me(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		log.Printf("me failed: user_id=%d error=%v", userID, err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load profile")
		return
	}
	response.Success(c, http.StatusOK, toUserPublic(user))
}

// GetUser возвращает публичный профиль по id
func (h *Handler) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid user id")
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "user not found")
			return
		}
		log.Printf("user lookup failed: id=%d error=%v", id, err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load user")
		return
	}
	response.Success(c, http.StatusOK, toUserPublic(user))
}

func toUserPublic(u *domain.User) UserPublic {
	return UserPublic{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Avatar:    u.Avatar,
	}
}
