package handler

import (
	"errors"
	"net/http"

	"dealership/internal/middleware"
	"dealership/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const cookieMaxAge = 24 * 60 * 60 // 24h, matches the token expiry

// UserHandler handles account management and authentication requests
type UserHandler struct {
	service    service.UserService
	cookieName string
	logger     *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(s service.UserService, cookieName string, logger *zap.Logger) *UserHandler {
	return &UserHandler{service: s, cookieName: cookieName, logger: logger}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req struct {
		Fullname string `json:"fullname" binding:"required"`
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		IsAdmin  bool   `json:"is_admin"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	_, err := h.service.CreateUser(c.Request.Context(), service.CreateUserInput{
		Fullname: req.Fullname,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		h.logger.Error("failed to create user", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.service.GetUsers(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list users", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.service.GetUserByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get user", zap.Int64("id", id), zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		Fullname *string `json:"fullname"`
		Username *string `json:"username"`
		Email    *string `json:"email" binding:"omitempty,email"`
		Password *string `json:"password" binding:"omitempty,min=6"`
		IsAdmin  *bool   `json:"is_admin"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	err := h.service.UpdateUser(c.Request.Context(), id, service.UpdateUserInput{
		Fullname: req.Fullname,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.logger.Error("failed to update user", zap.Int64("id", id), zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete user", zap.Int64("id", id), zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	login := req.Username
	if login == "" {
		login = req.Email
	}
	if login == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username or email is required"})
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), login, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// no detail: unknown account and wrong password look the same
			c.Status(http.StatusUnauthorized)
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(h.cookieName, token, cookieMaxAge, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Me returns the identity resolved from the auth cookie
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Logout clears the auth cookie
func (h *UserHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", true, true)
	c.Status(http.StatusNoContent)
}

// RegisterUserRoutes registers account routes. Account management is
// public; /me and /logout require a resolved identity.
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	userRoutes := rg.Group("/users")
	{
		userRoutes.POST("", h.CreateUser)
		userRoutes.GET("", h.GetUsers)
		userRoutes.POST("/login", h.Login)
		userRoutes.GET("/me", authMW, h.Me)
		userRoutes.POST("/logout", authMW, h.Logout)
		userRoutes.GET("/:id", h.GetUserByID)
		userRoutes.PUT("/:id", h.UpdateUser)
		userRoutes.DELETE("/:id", h.DeleteUser)
	}
}
