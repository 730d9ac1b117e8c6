package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"go-qrmenu-ordering/database"
	"go-qrmenu-ordering/models"
	"go-qrmenu-ordering/money"
)

// GetMenu is the customer-facing menu: a tenant's available items plus its
// categories, keyed by the tenant id embedded in the table's QR code.
func GetMenu() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext()
		defer cancel()
		tenant := c.Param("tenant_id")

		var items []models.MenuItem
		if err := store.Query(ctx, database.CollMenuItems, map[string]any{
			"tenant_id": tenant,
			"available": true,
		}, &items); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing menu items"})
			return
		}
		var categories []models.Category
		if err := store.Query(ctx, database.CollCategories, map[string]any{"tenant_id": tenant}, &categories); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing categories"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items, "categories": categories})
	}
}

// GetMenuItem returns one item and bumps its view counter.
func GetMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext()
		defer cancel()
		itemID := c.Param("item_id")

		var item models.MenuItem
		if err := store.Get(ctx, database.CollMenuItems, itemID, &item); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching menu item"})
			return
		}
		if err := store.Increment(ctx, database.CollMenuItems, itemID, "views", 1); err != nil {
			log.Debug().Err(err).Str("menu_item", itemID).Msg("view counter not bumped")
		}
		c.JSON(http.StatusOK, item)
	}
}

// ListMenuItems is the staff view: every item of the tenant, available or
// not.
func ListMenuItems() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext()
		defer cancel()

		var items []models.MenuItem
		if err := store.Query(ctx, database.CollMenuItems, map[string]any{"tenant_id": tenantID(c)}, &items); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing menu items"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func CreateMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext()
		defer cancel()

		var item models.MenuItem
		if err := c.BindJSON(&item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		item.Tenant_id = tenantID(c)
		if err := validate.Struct(&item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		item.ID = database.NewID()
		item.Created_at = time.Now().UTC()
		item.Updated_at = item.Created_at

		if _, err := store.Create(ctx, database.CollMenuItems, item); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu item was not created"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// UpdateMenuItem patches the mutable fields. Price and department edits
// only affect future orders: line items denormalize both at order time.
func UpdateMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext()
		defer cancel()
		itemID := c.Param("item_id")

		var patch struct {
			Name             *string      `json:"name"`
			Description      *string      `json:"description"`
			Price            *money.Cents `json:"price"`
			Photo            *string      `json:"photo"`
			Category         *string      `json:"category"`
			Department       *string      `json:"department"`
			Available        *bool        `json:"available"`
			Preparation_time *int         `json:"preparation_time"`
			Ingredients      *string      `json:"ingredients"`
			Allergens        *string      `json:"allergens"`
		}
		if err := c.BindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		fields := map[string]any{"updated_at": time.Now().UTC()}
		if patch.Name != nil {
			fields["name"] = *patch.Name
		}
		if patch.Description != nil {
			fields["description"] = *patch.Description
		}
		if patch.Price != nil {
			fields["price"] = *patch.Price
		}
		if patch.Photo != nil {
			fields["photo"] = *patch.Photo
		}
		if patch.Category != nil {
			fields["category"] = *patch.Category
		}
		if patch.Department != nil {
			if *patch.Department != models.DepartmentKitchen && *patch.Department != models.DepartmentBar {
				c.JSON(http.StatusBadRequest, gin.H{"error": "department must be kitchen or bar"})
				return
			}
			fields["department"] = *patch.Department
		}
		if patch.Available != nil {
			fields["available"] = *patch.Available
		}
		if patch.Preparation_time != nil {
			fields["preparation_time"] = *patch.Preparation_time
		}
		if patch.Ingredients != nil {
			fields["ingredients"] = *patch.Ingredients
		}
		if patch.Allergens != nil {
			fields["allergens"] = *patch.Allergens
		}

		if err := store.UpdateFields(ctx, database.CollMenuItems, itemID, fields); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu item update failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "menu item updated"})
	}
}

func DeleteMenuItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext()
		defer cancel()
		itemID := c.Param("item_id")

		if err := store.Delete(ctx, database.CollMenuItems, itemID); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu item was not deleted"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "menu item deleted"})
	}
}
