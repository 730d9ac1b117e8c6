package routes

import (
	controller "go-qrmenu-ordering/controllers"

	"github.com/gin-gonic/gin"
)

func OrderRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/orders/pending", controller.GetPendingOrders())
	incomingRoutes.POST("/orders/pending/:pending_order_id/approve", controller.ApproveOrder())
	incomingRoutes.POST("/orders/pending/:pending_order_id/reject", controller.RejectOrder())
	incomingRoutes.GET("/orders", controller.GetOrders())
	incomingRoutes.PATCH("/orders/:order_id", controller.UpdateOrderStatus())
}
