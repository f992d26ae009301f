package http

import (
	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/logitrack/internal/domain"
	"github.com/vladislavdragonenkov/logitrack/internal/metrics"
)

// Handlers собирает обработчики всех ресурсов API.
type Handlers struct {
	Users     *UserHandler
	Orders    *OrderHandler
	Carriers  *CarrierHandler
	Routes    *RouteHandler
	Shipments *ShipmentHandler
}

// NewRouter собирает маршруты API.
//
// Разграничение ролей:
//   - регистрация и вход публичны;
//   - чтение доступно любому аутентифицированному пользователю;
//   - CRUD перевозчиков, маршрутов и отправлений — только администратору;
//   - смену статуса отправления дополнительно может делать курьер.
func NewRouter(h Handlers, tokens domain.TokenService, m *metrics.TrackingMetrics) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if m != nil {
		router.Use(ObserveRequests(m))
	}

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Users.Register)
		authGroup.POST("/login", h.Users.Login)
	}

	authed := api.Group("")
	authed.Use(Authenticate(tokens))

	adminOnly := RequireRoles(domain.RoleAdmin)

	users := authed.Group("/users")
	{
		users.GET("", adminOnly, h.Users.List)
		users.GET("/:id", h.Users.Get)
		users.PUT("/:id", h.Users.Update)
		users.DELETE("/:id", adminOnly, h.Users.Delete)
	}

	orders := authed.Group("/orders")
	{
		orders.GET("", adminOnly, h.Orders.List)
		orders.GET("/:id", h.Orders.Get)
		orders.GET("/user/:userId", h.Orders.ListByUser)
		orders.POST("", h.Orders.Create)
		orders.PUT("/:id", h.Orders.Update)
		orders.PATCH("/status/:id", adminOnly, h.Orders.UpdateStatus)
		orders.DELETE("/:id", h.Orders.Delete)
	}

	carriers := authed.Group("/carriers")
	{
		carriers.GET("", h.Carriers.List)
		carriers.GET("/:id", h.Carriers.Get)
		carriers.POST("", adminOnly, h.Carriers.Create)
		carriers.PUT("/:id", adminOnly, h.Carriers.Update)
		carriers.DELETE("/:id", adminOnly, h.Carriers.Delete)
	}

	routes := authed.Group("/routes")
	{
		routes.GET("", h.Routes.List)
		routes.GET("/:id", h.Routes.Get)
		routes.POST("", adminOnly, h.Routes.Create)
		routes.PUT("/:id", adminOnly, h.Routes.Update)
		routes.DELETE("/:id", adminOnly, h.Routes.Delete)
	}

	shipments := authed.Group("/shipments")
	{
		shipments.GET("", h.Shipments.List)
		shipments.GET("/:id", h.Shipments.Get)
		shipments.GET("/order/:orderId", h.Shipments.ListByOrder)
		shipments.GET("/tracking/:trackingNumber", h.Shipments.GetByTracking)
		shipments.POST("", adminOnly, h.Shipments.Create)
		shipments.PUT("/:id", adminOnly, h.Shipments.Update)
		shipments.PATCH("/status/:id", RequireRoles(domain.RoleAdmin, domain.RoleCourrier), h.Shipments.UpdateStatus)
		shipments.DELETE("/:id", adminOnly, h.Shipments.Delete)
	}

	return router
}
