// Package router wires the API handlers to their routes.
package router

import (
	"agromart/internal/delivery/api/middleware"
	"agromart/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	ProfileHandler       *handler.ProfileHandler
	AddressHandler       *handler.AddressHandler
	ProductHandler       *handler.ProductHandler
	OrderHandler         *handler.OrderHandler
	TodoHandler          *handler.TodoHandler
	MetricsHandler       *handler.MetricsHandler
	NotificationHandler  *handler.NotificationHandler
	TipHandler           *handler.TipHandler
	InternalHandler      *handler.InternalHandler
	AuthMiddleware       *middleware.AuthMiddleware
	ServiceKeyMiddleware *middleware.ServiceKeyMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	profileHandler       *handler.ProfileHandler
	addressHandler       *handler.AddressHandler
	productHandler       *handler.ProductHandler
	orderHandler         *handler.OrderHandler
	todoHandler          *handler.TodoHandler
	metricsHandler       *handler.MetricsHandler
	notificationHandler  *handler.NotificationHandler
	tipHandler           *handler.TipHandler
	internalHandler      *handler.InternalHandler
	authMiddleware       *middleware.AuthMiddleware
	serviceKeyMiddleware *middleware.ServiceKeyMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		profileHandler:       params.ProfileHandler,
		addressHandler:       params.AddressHandler,
		productHandler:       params.ProductHandler,
		orderHandler:         params.OrderHandler,
		todoHandler:          params.TodoHandler,
		metricsHandler:       params.MetricsHandler,
		notificationHandler:  params.NotificationHandler,
		tipHandler:           params.TipHandler,
		internalHandler:      params.InternalHandler,
		authMiddleware:       params.AuthMiddleware,
		serviceKeyMiddleware: params.ServiceKeyMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	// Every /api/v1 route runs as the profile named by the access token.
	apiV1 := e.Group("/api/v1")
	apiV1.Use(r.authMiddleware.Authenticate)

	profileGroup := apiV1.Group("/profile")
	{
		profileGroup.GET("", r.profileHandler.GetProfile)
		profileGroup.PUT("", r.profileHandler.UpdateProfile)
	}

	addressesGroup := apiV1.Group("/addresses")
	{
		addressesGroup.POST("", r.addressHandler.CreateAddress)
		addressesGroup.GET("", r.addressHandler.ListAddresses)
		addressesGroup.PUT("/:id", r.addressHandler.UpdateAddress)
		addressesGroup.DELETE("/:id", r.addressHandler.DeleteAddress)
	}

	productsGroup := apiV1.Group("/products")
	{
		productsGroup.POST("", r.productHandler.CreateProduct)
		productsGroup.GET("", r.productHandler.ListProducts)
		productsGroup.GET("/:id", r.productHandler.GetProduct)
		productsGroup.PATCH("/:id", r.productHandler.UpdateProduct)
		productsGroup.DELETE("/:id", r.productHandler.DeleteProduct)
		productsGroup.GET("/:id/qr", r.productHandler.GetProductQR)
	}

	ordersGroup := apiV1.Group("/orders")
	{
		ordersGroup.GET("", r.orderHandler.ListOrders)
		ordersGroup.GET("/:id", r.orderHandler.GetOrder)
		ordersGroup.GET("/:id/items", r.orderHandler.ListOrderItems)
		ordersGroup.PATCH("/:id/status", r.orderHandler.UpdateOrderStatus)
	}

	todosGroup := apiV1.Group("/todos")
	{
		todosGroup.POST("", r.todoHandler.CreateTodo)
		todosGroup.GET("", r.todoHandler.ListTodos)
		todosGroup.PATCH("/:id", r.todoHandler.UpdateTodo)
		todosGroup.DELETE("/:id", r.todoHandler.DeleteTodo)
	}

	metricsGroup := apiV1.Group("/metrics")
	{
		metricsGroup.GET("", r.metricsHandler.GetMetrics)
		metricsGroup.GET("/daily", r.metricsHandler.ListDailySales)
	}

	notificationsGroup := apiV1.Group("/notifications")
	{
		notificationsGroup.GET("", r.notificationHandler.ListNotifications)
		notificationsGroup.POST("/:id/read", r.notificationHandler.MarkRead)
		notificationsGroup.POST("/read-all", r.notificationHandler.MarkAllRead)
	}

	apiV1.GET("/tips", r.tipHandler.ListTips)

	// Internal routes run with the service role and are never exposed to end users.
	internalGroup := e.Group("/internal")
	internalGroup.Use(r.serviceKeyMiddleware.RequireServiceKey)
	{
		internalGroup.POST("/identities", r.internalHandler.ProvisionIdentity)
		internalGroup.POST("/orders", r.internalHandler.PlaceOrder)
		internalGroup.DELETE("/orders/:id", r.internalHandler.DeleteOrder)
		internalGroup.DELETE("/profiles/:id", r.internalHandler.DeleteProfile)
		internalGroup.POST("/metrics/reconcile", r.internalHandler.ReconcileMetrics)
		internalGroup.POST("/tips/import", r.internalHandler.ImportTips)
	}
}
