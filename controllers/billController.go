package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-qrmenu-ordering/database"
	"go-qrmenu-ordering/models"
)

// GetBills lists the tenant's per-order invoice records.
func GetBills() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext()
		defer cancel()

		var bills []models.Bill
		if err := store.Query(ctx, database.CollBills, map[string]any{"tenant_id": tenantID(c)}, &bills); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing bills"})
			return
		}
		c.JSON(http.StatusOK, bills)
	}
}

func GetBill() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext()
		defer cancel()

		var bill models.Bill
		if err := store.Get(ctx, database.CollBills, c.Param("bill_id"), &bill); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "bill not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching bill"})
			return
		}
		c.JSON(http.StatusOK, bill)
	}
}

// UpdateBillStatus moves an invoice through draft/sent/paid.
func UpdateBillStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext()
		defer cancel()

		var req struct {
			Status string `json:"status" validate:"required,eq=draft|eq=sent|eq=paid"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := store.UpdateFields(ctx, database.CollBills, c.Param("bill_id"), map[string]any{"status": req.Status}); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "bill not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "bill update failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "bill updated"})
	}
}
