package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetActiveBills lists every open tab for the tenant's dashboard.
func GetActiveBills() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext()
		defer cancel()

		bills, err := billSvc.ListActiveBills(ctx, tenantID(c))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, bills)
	}
}

// GetTableBill returns one table's active bill, 404 when the table has no
// open tab.
func GetTableBill() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext()
		defer cancel()

		bill, err := billSvc.GetActiveBill(ctx, tenantID(c), c.Param("table_number"))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		if bill == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active bill for this table"})
			return
		}
		c.JSON(http.StatusOK, bill)
	}
}

// RemoveBillItem drops a line from the table's running bill; removing the
// last line cancels the bill.
func RemoveBillItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext()
		defer cancel()

		err := billSvc.RemoveItem(ctx, tenantID(c), c.Param("table_number"), c.Param("item_id"))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "item removed from bill"})
	}
}

// MarkBillPaid closes a table's bill by hand, without a payment
// confirmation. A table with no active bill is reported as success: the
// bill may have been resolved by another path already.
func MarkBillPaid() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext()
		defer cancel()

		if err := billSvc.MarkPaid(ctx, tenantID(c), c.Param("table_number"), ""); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "bill marked as paid"})
	}
}
