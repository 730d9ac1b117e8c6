package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-qrmenu-ordering/database"
	"go-qrmenu-ordering/models"
)

// GetCart returns the session's current cart.
func GetCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := carts.Get(c.Param("session_id"))
		c.JSON(http.StatusOK, gin.H{
			"items":        session.Items(),
			"total_amount": session.TotalAmount(),
			"total_items":  session.TotalItems(),
		})
	}
}

// AddCartItem puts one unit of a menu item into the session cart. Name
// and price are read from the menu at add time; an unavailable item is
// refused.
func AddCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext()
		defer cancel()

		var req struct {
			Menu_item_id string `json:"menu_item_id" validate:"required"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var item models.MenuItem
		if err := store.Get(ctx, database.CollMenuItems, req.Menu_item_id, &item); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching menu item"})
			return
		}
		if !item.Available {
			c.JSON(http.StatusBadRequest, gin.H{"error": "menu item is not available"})
			return
		}

		session := carts.Get(c.Param("session_id"))
		session.Add(item.ID, item.Name, item.Price)
		c.JSON(http.StatusOK, gin.H{"items": session.Items(), "total_amount": session.TotalAmount()})
	}
}

// UpdateCartItem sets a line's quantity; zero or negative removes it.
func UpdateCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Quantity int `json:"quantity"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		session := carts.Get(c.Param("session_id"))
		session.UpdateQuantity(c.Param("item_id"), req.Quantity)
		c.JSON(http.StatusOK, gin.H{"items": session.Items(), "total_amount": session.TotalAmount()})
	}
}

func RemoveCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := carts.Get(c.Param("session_id"))
		session.Remove(c.Param("item_id"))
		c.JSON(http.StatusOK, gin.H{"items": session.Items(), "total_amount": session.TotalAmount()})
	}
}

func ClearCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		carts.Get(c.Param("session_id")).Clear()
		c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
	}
}

// SubmitCart turns the session cart into a pending order awaiting staff
// approval, and clears the cart on success.
func SubmitCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext()
		defer cancel()

		var req struct {
			Tenant_id      string               `json:"tenant_id" validate:"required"`
			Table_number   string               `json:"table_number" validate:"required"`
			Customer_info  *models.CustomerInfo `json:"customer_info"`
			Payment_method string               `json:"payment_method"`
			Notes          string               `json:"notes"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		session := carts.Get(c.Param("session_id"))
		pending, err := orderSvc.Submit(ctx, req.Tenant_id, req.Table_number, session,
			req.Customer_info, req.Payment_method, req.Notes)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		session.Clear()
		c.JSON(http.StatusOK, pending)
	}
}
