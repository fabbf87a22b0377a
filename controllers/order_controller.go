package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/buttcoder420/FinalYear-backend/apperr"
	"github.com/buttcoder420/FinalYear-backend/middlewares"
	"github.com/buttcoder420/FinalYear-backend/services"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// PlaceOrder handles POST /place-order.
func (ctl *OrderController) PlaceOrder(c *gin.Context) {
	defer func() { middlewares.RecordOrderOperation("place", ok2xx(c)) }()

	var req services.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Invalid("All fields are required (shopId, productId, quantity, deliveryLocation)"))
		return
	}

	order, err := ctl.Orders.PlaceOrder(c.Request.Context(), middlewares.UserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Order placed successfully",
		"order":   order,
	})
}

// GetUserOrders handles GET /get-order.
func (ctl *OrderController) GetUserOrders(c *gin.Context) {
	defer func() { middlewares.RecordOrderOperation("list", ok2xx(c)) }()

	orders, err := ctl.Orders.GetUserOrders(c.Request.Context(), middlewares.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User orders fetched successfully",
		"orders":  orders,
	})
}

// CancelOrder handles PUT /cancel-order/:orderId.
func (ctl *OrderController) CancelOrder(c *gin.Context) {
	defer func() { middlewares.RecordOrderOperation("cancel", ok2xx(c)) }()

	order, err := ctl.Orders.CancelOrder(c.Request.Context(), middlewares.UserID(c), c.Param("orderId"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order cancelled successfully",
		"order":   order,
	})
}

// GetSellerOrders handles GET /seller/orders.
func (ctl *OrderController) GetSellerOrders(c *gin.Context) {
	defer func() { middlewares.RecordOrderOperation("seller_list", ok2xx(c)) }()

	orders, err := ctl.Orders.GetSellerOrders(c.Request.Context(), middlewares.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"totalOrders": len(orders),
		"orders":      orders,
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus handles PUT /update-order/:orderId.
func (ctl *OrderController) UpdateOrderStatus(c *gin.Context) {
	ctl.updateStatus(c, false)
}

// UpdateOrderStatusWithNotification handles PUT /notification-order/:orderId:
// the same transition, with the shipped email forced.
func (ctl *OrderController) UpdateOrderStatusWithNotification(c *gin.Context) {
	ctl.updateStatus(c, true)
}

func (ctl *OrderController) updateStatus(c *gin.Context, forceNotify bool) {
	defer func() { middlewares.RecordOrderOperation("update_status", ok2xx(c)) }()

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Invalid("Order ID and status are required"))
		return
	}

	order, err := ctl.Orders.UpdateOrderStatus(c.Request.Context(), middlewares.UserID(c), c.Param("orderId"), req.Status, forceNotify)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order status updated successfully",
		"order": gin.H{
			"_id":           order.ID,
			"status":        order.Status,
			"product":       order.Product,
			"shop":          order.Shop,
			"statusHistory": order.StatusHistory,
		},
	})
}

// GetShopDetails handles GET /ShopOrder/:shopId.
func (ctl *OrderController) GetShopDetails(c *gin.Context) {
	defer func() { middlewares.RecordOrderOperation("shop_details", ok2xx(c)) }()

	details, err := ctl.Orders.GetShopDetails(c.Request.Context(), c.Param("shopId"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"shop":     details.Shop,
		"owner":    details.Owner,
		"products": details.Products,
	})
}
