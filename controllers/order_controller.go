package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/QuaKeyz/reselling-store/repository"
)

type OrderController struct {
	Ledger repository.OrderLedger
	Logger *zap.Logger
}

func NewOrderController(ledger repository.OrderLedger, logger *zap.Logger) *OrderController {
	return &OrderController{Ledger: ledger, Logger: logger}
}

// GetAllOrders retrieves all orders, newest first (admin only).
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	orders, err := oc.Ledger.FindAll(c.Request.Context())
	if err != nil {
		oc.Logger.Error("Failed to fetch orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrderByID retrieves a specific order (admin only).
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id := c.Param("id")

	order, err := oc.Ledger.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		oc.Logger.Error("Failed to fetch order", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	c.JSON(http.StatusOK, order)
}
