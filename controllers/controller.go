package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"go-qrmenu-ordering/cart"
	"go-qrmenu-ordering/database"
	"go-qrmenu-ordering/services"
	"go-qrmenu-ordering/telegram"
	"go-qrmenu-ordering/ws"
)

var validate = validator.New()

var (
	store       database.Store
	orderSvc    *services.OrderService
	billSvc     *services.TableBillService
	paymentSvc  *services.PaymentService
	callbackRtr *services.CallbackRouter
	bot         *telegram.Bot
	carts       *cart.Sessions
	hub         *ws.Hub
)

// Deps wires the controllers to the service layer; called once from main.
type Deps struct {
	Store     database.Store
	Orders    *services.OrderService
	Bills     *services.TableBillService
	Payments  *services.PaymentService
	Callbacks *services.CallbackRouter
	Bot       *telegram.Bot
	Hub       *ws.Hub
}

func Init(d Deps) {
	store = d.Store
	orderSvc = d.Orders
	billSvc = d.Bills
	paymentSvc = d.Payments
	callbackRtr = d.Callbacks
	bot = d.Bot
	hub = d.Hub
	carts = cart.NewSessions()
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 100*time.Second)
}

func tenantID(c *gin.Context) string {
	return c.GetString("tenant_id")
}

// respondServiceError maps the service error kinds onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDependency):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
