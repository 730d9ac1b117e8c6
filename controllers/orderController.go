package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetPendingOrders lists the tenant's orders awaiting approval.
func GetPendingOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext()
		defer cancel()

		pending, err := orderSvc.ListPending(ctx, tenantID(c))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, pending)
	}
}

// ApproveOrder is the dashboard twin of the Telegram approve button.
func ApproveOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext()
		defer cancel()

		order, err := orderSvc.Approve(ctx, c.Param("pending_order_id"))
		if err != nil {
			if order.ID != "" {
				// The order exists but a later step failed; the staff UI
				// must show which part went through.
				c.JSON(http.StatusBadGateway, gin.H{
					"error": err.Error(),
					"order": order,
				})
				return
			}
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func RejectOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext()
		defer cancel()

		if err := orderSvc.Reject(ctx, c.Param("pending_order_id")); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "order rejected"})
	}
}

func GetOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext()
		defer cancel()

		orders, err := orderSvc.ListOrders(ctx, tenantID(c))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// UpdateOrderStatus is the staff-driven transition; any status value the
// dashboard offers is accepted as-is.
func UpdateOrderStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext()
		defer cancel()

		var req struct {
			Status string `json:"status" validate:"required"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := orderSvc.UpdateStatus(ctx, c.Param("order_id"), req.Status); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "order status updated"})
	}
}
