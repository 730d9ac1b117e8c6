package routes

import (
	controller "go-qrmenu-ordering/controllers"

	"github.com/gin-gonic/gin"
)

// WebhookRoutes register the Telegram update receiver. Only POST carries
// updates; the other methods answer 405 so probes get a clean signal.
func WebhookRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/webhook", controller.TelegramWebhook())
	incomingRoutes.GET("/webhook", controller.WebhookMethodGuard())
	incomingRoutes.PUT("/webhook", controller.WebhookMethodGuard())
	incomingRoutes.PATCH("/webhook", controller.WebhookMethodGuard())
	incomingRoutes.DELETE("/webhook", controller.WebhookMethodGuard())
}
