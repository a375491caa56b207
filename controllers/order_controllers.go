package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/greenbasket/produce-orders/services"
	"github.com/greenbasket/produce-orders/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// CreateOrder -> public order submission. Totals are re-derived server-side
// before anything is written.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var sub services.OrderSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.Submit(sub)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order %s submitted by %s (total %s)",
		order.ID, order.CustomerName, utils.FormatAmount(order.GrandTotal))

	utils.RespondJSON(c, http.StatusCreated, "Order created", gin.H{
		"orderId": order.ID,
	})
}

// GetAllOrders -> most recent orders, newest first (admin). Optional ?limit=
// caps the result, default 100.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	limit := services.DefaultListLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			utils.RespondError(c, http.StatusBadRequest, errInvalidLimit)
			return
		}
		limit = parsed
	}

	orders, err := oc.Orders.List(limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// ExportOrders -> every order as a CSV attachment (admin).
func (oc *OrderController) ExportOrders(c *gin.Context) {
	data, err := oc.Orders.ExportCSV()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=orders.csv")
	c.Data(http.StatusOK, "text/csv", data)
}
