package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookstore/models"
	"bookstore/services"
)

type OrderController struct {
	orders *services.OrderService
	log    *zap.SugaredLogger
}

func NewOrderController(orders *services.OrderService, log *zap.SugaredLogger) *OrderController {
	return &OrderController{orders: orders, log: log}
}

// CreateOrder is the public checkout endpoint. Book references are not
// resolved; productIds are stored as supplied.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var input models.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	order, err := oc.orders.Create(ctx, input)
	if err != nil {
		writeError(c, oc.log, err, "An error occurred while creating the order")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": order})
}

func (oc *OrderController) GetOrdersByEmail(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	orders, err := oc.orders.ByEmail(ctx, c.Param("email"))
	if err != nil {
		writeError(c, oc.log, err, "Failed to fetch orders")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})
}
