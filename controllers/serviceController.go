package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-qrmenu-ordering/telegram"
)

// CallWaiter pings the tenant's approver channel that a table wants
// service. Public endpoint, no auth; the QR page calls it directly.
func CallWaiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext()
		defer cancel()

		var req struct {
			Table_number string `json:"table_number" validate:"required"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := bot.SendAdminText(ctx, c.Param("tenant_id"), telegram.WaiterCallText(req.Table_number)); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "waiter call not delivered"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "waiter has been called"})
	}
}

// RequestBill pings the approver channel that a table wants to pay.
func RequestBill() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext()
		defer cancel()

		var req struct {
			Table_number string `json:"table_number" validate:"required"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := bot.SendAdminText(ctx, c.Param("tenant_id"), telegram.BillRequestText(req.Table_number)); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "bill request not delivered"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "bill has been requested"})
	}
}
