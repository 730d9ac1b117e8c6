package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-qrmenu-ordering/database"
	"go-qrmenu-ordering/models"
)

// GetSettings returns the tenant's restaurant settings document, or an
// empty default when none has been saved yet.
func GetSettings() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext()
		defer cancel()

		var settings []models.RestaurantSettings
		if err := store.Query(ctx, database.CollRestaurantSettings, map[string]any{"tenant_id": tenantID(c)}, &settings); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching settings"})
			return
		}
		if len(settings) == 0 {
			c.JSON(http.StatusOK, models.RestaurantSettings{Tenant_id: tenantID(c), Currency: "USD"})
			return
		}
		c.JSON(http.StatusOK, settings[0])
	}
}

// UpdateSettings upserts the tenant's settings document.
func UpdateSettings() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext()
		defer cancel()

		var req struct {
			Business_name    string `json:"business_name"`
			Number_of_tables int    `json:"number_of_tables"`
			Currency         string `json:"currency"`
			Admin_chat_id    int64  `json:"admin_chat_id"`
			Kitchen_chat_id  int64  `json:"kitchen_chat_id"`
			Bar_chat_id      int64  `json:"bar_chat_id"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		fields := map[string]any{
			"business_name":    req.Business_name,
			"number_of_tables": req.Number_of_tables,
			"currency":         req.Currency,
			"admin_chat_id":    req.Admin_chat_id,
			"kitchen_chat_id":  req.Kitchen_chat_id,
			"bar_chat_id":      req.Bar_chat_id,
			"updated_at":       time.Now().UTC(),
		}

		var existing []models.RestaurantSettings
		if err := store.Query(ctx, database.CollRestaurantSettings, map[string]any{"tenant_id": tenantID(c)}, &existing); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching settings"})
			return
		}
		if len(existing) > 0 {
			if err := store.UpdateFields(ctx, database.CollRestaurantSettings, existing[0].ID, fields); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "settings update failed"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "settings updated"})
			return
		}

		settings := models.RestaurantSettings{
			ID:               database.NewID(),
			Tenant_id:        tenantID(c),
			Business_name:    req.Business_name,
			Number_of_tables: req.Number_of_tables,
			Currency:         req.Currency,
			Admin_chat_id:    req.Admin_chat_id,
			Kitchen_chat_id:  req.Kitchen_chat_id,
			Bar_chat_id:      req.Bar_chat_id,
			Updated_at:       time.Now().UTC(),
		}
		if _, err := store.Create(ctx, database.CollRestaurantSettings, settings); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "settings update failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "settings updated"})
	}
}
