package handler

import (
	"errors"
	"net/http"

	"dealership/internal/service"
	"dealership/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CustomerHandler handles customer related requests
type CustomerHandler struct {
	service   service.CustomerService
	validator *validation.CustomerValidator
	logger    *zap.Logger
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(s service.CustomerService, v *validation.CustomerValidator, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{service: s, validator: v, logger: logger}
}

func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
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

	if _, err := h.service.CreateCustomer(c.Request.Context(), data); err != nil {
		h.logger.Error("failed to create customer", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	customers, err := h.service.GetCustomers(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list customers", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) GetCustomerByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	customer, err := h.service.GetCustomerByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get customer", zap.Int64("id", id), zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
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

	if err := h.service.UpdateCustomer(c.Request.Context(), id, data); err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.logger.Error("failed to update customer", zap.Int64("id", id), zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCustomer(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete customer", zap.Int64("id", id), zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusNoContent)
}

// RegisterCustomerRoutes registers customer routes, all behind authentication
func (h *CustomerHandler) RegisterCustomerRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	customerRoutes := rg.Group("/customers")
	customerRoutes.Use(authMW)
	{
		customerRoutes.POST("", h.CreateCustomer)
		customerRoutes.GET("", h.GetCustomers)
		customerRoutes.GET("/:id", h.GetCustomerByID)
		customerRoutes.PUT("/:id", h.UpdateCustomer)
		customerRoutes.DELETE("/:id", h.DeleteCustomer)
	}
}
