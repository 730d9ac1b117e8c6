package routes

import (
	controller "go-qrmenu-ordering/controllers"

	"github.com/gin-gonic/gin"
)

// BillRoutes cover the running table bills and the per-order invoices.
func BillRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/bills/active", controller.GetActiveBills())
	incomingRoutes.GET("/bills/table/:table_number", controller.GetTableBill())
	incomingRoutes.DELETE("/bills/table/:table_number/items/:item_id", controller.RemoveBillItem())
	incomingRoutes.POST("/bills/table/:table_number/paid", controller.MarkBillPaid())

	incomingRoutes.GET("/invoices", controller.GetBills())
	incomingRoutes.GET("/invoices/:bill_id", controller.GetBill())
	incomingRoutes.PATCH("/invoices/:bill_id", controller.UpdateBillStatus())
}
