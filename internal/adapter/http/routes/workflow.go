package routes

import (
	"servitec/internal/adapter/http/handlers"
	"servitec/internal/adapter/http/middleware"
	"servitec/internal/auth"

	"github.com/gin-gonic/gin"
)

const (
	PathAuth   = "/auth"
	PathOrders = "/orders"
)

func addAuthRoutes(rg *gin.RouterGroup, authenticate gin.HandlerFunc, authHandler *handlers.AuthHandler) {
	adminOnly := middleware.Require(auth.Requirement{Kind: auth.StaffOnly, Roles: []auth.Role{auth.RoleAdministrator}})

	authGroup := rg.Group(PathAuth)
	{
		authGroup.POST("/staff/login", authHandler.StaffLogin)
		authGroup.POST("/staff", authenticate, adminOnly, authHandler.RegisterStaff)
		authGroup.POST("/clients/register", authHandler.RegisterClient)
		authGroup.POST("/clients/login", authHandler.ClientLogin)
		authGroup.POST("/clients/logout", authHandler.ClientLogout)
	}
}

func addWorkflowRoutes(
	rg *gin.RouterGroup,
	authenticate gin.HandlerFunc,
	orderHandler *handlers.OrderHandler,
	invoiceHandler *handlers.InvoiceHandler,
) {
	staff := func(roles ...auth.Role) gin.HandlerFunc {
		return middleware.Require(auth.Requirement{Kind: auth.StaffOnly, Roles: roles})
	}
	clientOnly := middleware.Require(auth.Requirement{Kind: auth.ClientOnly})
	anyPrincipal := middleware.Require(auth.Requirement{Kind: auth.AnyPrincipal})

	orders := rg.Group(PathOrders, authenticate)
	{
		orders.POST("", staff(auth.RoleReceptionist), orderHandler.CreateOrder)
		orders.GET("", anyPrincipal, orderHandler.ListOrders)
		orders.GET("/:id", anyPrincipal, orderHandler.GetOrder)
		orders.GET("/:id/history", staff(), orderHandler.GetOrderHistory)

		orders.PATCH("/:id/diagnosis", staff(auth.RoleTechnician), orderHandler.Diagnose)
		orders.PATCH("/:id/quote", staff(auth.RoleTechnician, auth.RoleSales), orderHandler.SetQuote)
		orders.POST("/:id/proforma/send", staff(auth.RoleSales, auth.RoleReceptionist), orderHandler.SendProforma)
		orders.POST("/:id/proforma/approve", clientOnly, orderHandler.ApproveProforma)
		orders.POST("/:id/proforma/reject", clientOnly, orderHandler.RejectProforma)
		orders.POST("/:id/requote", staff(auth.RoleTechnician, auth.RoleSales), orderHandler.Requote)
		orders.POST("/:id/start", staff(auth.RoleTechnician), orderHandler.StartRepair)
		orders.POST("/:id/complete", staff(auth.RoleTechnician), orderHandler.CompleteRepair)
		orders.POST("/:id/deliver", staff(auth.RoleReceptionist), orderHandler.Deliver)

		orders.POST("/:id/invoice", staff(auth.RoleSales, auth.RoleReceptionist), invoiceHandler.GenerateInvoice)
		orders.GET("/:id/invoice", anyPrincipal, invoiceHandler.GetInvoice)
		orders.POST("/:id/invoice/payments", clientOnly, invoiceHandler.PayInvoice)
		orders.GET("/:id/invoice/payments", anyPrincipal, invoiceHandler.ListPayments)
	}
}
