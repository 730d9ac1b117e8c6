package routes

import (
	controller "go-qrmenu-ordering/controllers"

	"github.com/gin-gonic/gin"
)

// MenuRoutes are the public, QR-page-facing menu reads.
func MenuRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/menu/:tenant_id", controller.GetMenu())
	incomingRoutes.GET("/menu/:tenant_id/items/:item_id", controller.GetMenuItem())
}

// MenuAdminRoutes are the staff-side menu and category management.
func MenuAdminRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/menu-items", controller.ListMenuItems())
	incomingRoutes.POST("/menu-items", controller.CreateMenuItem())
	incomingRoutes.PATCH("/menu-items/:item_id", controller.UpdateMenuItem())
	incomingRoutes.DELETE("/menu-items/:item_id", controller.DeleteMenuItem())

	incomingRoutes.GET("/categories", controller.ListCategories())
	incomingRoutes.POST("/categories", controller.CreateCategory())
	incomingRoutes.PATCH("/categories/:category_id", controller.UpdateCategory())
	incomingRoutes.DELETE("/categories/:category_id", controller.DeleteCategory())
}
