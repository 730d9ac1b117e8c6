package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-qrmenu-ordering/models"
)

// SubmitPayment records a customer's payment proof and asks the approver
// channel to verify it. The amounts are snapshotted from the submitted
// items, not re-read from the live bill.
func SubmitPayment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext()
		defer cancel()

		var req struct {
			Table_number   string             `json:"table_number" validate:"required"`
			Items          []models.OrderItem `json:"items" validate:"required,min=1,dive"`
			Method         string             `json:"method" validate:"required"`
			Screenshot_url string             `json:"screenshot_url"`
			Order_id       string             `json:"order_id"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		conf, err := paymentSvc.Submit(ctx, c.Param("tenant_id"), req.Table_number,
			req.Items, req.Method, req.Screenshot_url, req.Order_id)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, conf)
	}
}

// GetPendingPayments lists the tenant's unresolved confirmations.
func GetPendingPayments() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext()
		defer cancel()

		confs, err := paymentSvc.ListPending(ctx, tenantID(c))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, confs)
	}
}

// ResolvePayment is the dashboard twin of the Telegram accept/reject
// payment buttons.
func ResolvePayment() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext()
		defer cancel()

		var req struct {
			Approved *bool `json:"approved" validate:"required"`
		}
		if err := c.BindJSON(&req); err != nil || req.Approved == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "approved flag is required"})
			return
		}

		conf, err := paymentSvc.Resolve(ctx, c.Param("confirmation_id"), *req.Approved)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, conf)
	}
}
