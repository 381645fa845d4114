package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"dealership/internal/middleware"
	"dealership/internal/model"
	"dealership/internal/service"
	"dealership/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CarHandler handles car related requests
type CarHandler struct {
	service   service.CarService
	validator *validation.CarValidator
	logger    *zap.Logger
}

// NewCarHandler creates a new CarHandler
func NewCarHandler(s service.CarService, v *validation.CarValidator, logger *zap.Logger) *CarHandler {
	return &CarHandler{service: s, validator: v, logger: logger}
}

// parseIncludes reads the ?include= query parameter into a CarIncludes
// selection. Unknown relation names are ignored.
func parseIncludes(c *gin.Context) model.CarIncludes {
	var includes model.CarIncludes
	for _, name := range strings.Split(c.Query("include"), ",") {
		switch strings.TrimSpace(name) {
		case "customer":
			includes.Customer = true
		case "created_user":
			includes.CreatedUser = true
		case "updated_user":
			includes.UpdatedUser = true
		}
	}
	return includes
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.Status(http.StatusNotFound)
		return 0, false
	}
	return id, true
}

func (h *CarHandler) CreateCar(c *gin.Context) {
	actor, ok := middleware.GetAuthUser(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	data, fieldErrs := h.validator.Validate(raw)
	if fieldErrs != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrs.ByField()})
		return
	}

	if _, err := h.service.CreateCar(c.Request.Context(), actor.ID, data); err != nil {
		h.logger.Error("failed to create car", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *CarHandler) GetCars(c *gin.Context) {
	cars, err := h.service.GetCars(c.Request.Context(), parseIncludes(c))
	if err != nil {
		h.logger.Error("failed to list cars", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, cars)
}

func (h *CarHandler) GetCarByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	car, err := h.service.GetCarByID(c.Request.Context(), id, parseIncludes(c))
	if err != nil {
		if errors.Is(err, service.ErrCarNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get car", zap.Int64("id", id), zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, car)
}

func (h *CarHandler) UpdateCar(c *gin.Context) {
	actor, ok := middleware.GetAuthUser(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	data, fieldErrs := h.validator.ValidatePartial(raw)
	if fieldErrs != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrs.ByField()})
		return
	}

	if err := h.service.UpdateCar(c.Request.Context(), id, actor.ID, data); err != nil {
		if errors.Is(err, service.ErrCarNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.logger.Error("failed to update car", zap.Int64("id", id), zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CarHandler) DeleteCar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCar(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCarNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete car", zap.Int64("id", id), zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusNoContent)
}

// RegisterCarRoutes registers car routes, all behind authentication
func (h *CarHandler) RegisterCarRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	carRoutes := rg.Group("/cars")
	carRoutes.Use(authMW)
	{
		carRoutes.POST("", h.CreateCar)
		carRoutes.GET("", h.GetCars)
		carRoutes.GET("/:id", h.GetCarByID)
		carRoutes.PUT("/:id", h.UpdateCar)
		carRoutes.DELETE("/:id", h.DeleteCar)
	}
}
