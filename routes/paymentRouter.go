package routes

import (
	controller "go-qrmenu-ordering/controllers"

	"github.com/gin-gonic/gin"
)

// PaymentRoutes is the public half: customers submit proof of payment
// from the QR page.
func PaymentRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/payments/:tenant_id", controller.SubmitPayment())
}

// PaymentAdminRoutes is the staff half: listing and resolving
// confirmations from the dashboard.
func PaymentAdminRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/payments/pending", controller.GetPendingPayments())
	incomingRoutes.PATCH("/payments/:confirmation_id", controller.ResolvePayment())
}
