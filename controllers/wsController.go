package controllers

import (
	"github.com/gin-gonic/gin"
)

// DashboardSocket upgrades the staff dashboard connection; the hub pushes
// order, bill and payment events for the authenticated tenant.
func DashboardSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		hub.Serve(c.Writer, c.Request, tenantID(c))
	}
}
