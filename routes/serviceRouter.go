package routes

import (
	controller "go-qrmenu-ordering/controllers"

	"github.com/gin-gonic/gin"
)

// ServiceRoutes are the public table-service pings.
func ServiceRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/service/:tenant_id/waiter-call", controller.CallWaiter())
	incomingRoutes.POST("/service/:tenant_id/bill-request", controller.RequestBill())
}

// SettingsRoutes manage the tenant's restaurant settings document.
func SettingsRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/settings", controller.GetSettings())
	incomingRoutes.PUT("/settings", controller.UpdateSettings())
}

// DashboardRoutes attach the staff websocket feed.
func DashboardRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/ws/dashboard", controller.DashboardSocket())
}
