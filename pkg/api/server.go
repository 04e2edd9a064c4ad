package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/example/inventory/pkg/config"
	"github.com/example/inventory/pkg/repository"
	"github.com/example/inventory/pkg/service"
)

type Server struct {
	config     *config.Config
	logger     *zap.Logger
	router     *gin.Engine
	users      *service.UserService
	categories *service.CategoryService
	products   *service.ProductService
	orders     *service.OrderService
	orderItems *service.OrderItemService
	cache      *repository.RedisRepository
	auditLog   *repository.MongoRepository
}

// NewServer wires the entity services over the given store. cache and
// auditLog may be nil; the corresponding features are then skipped.
func NewServer(cfg *config.Config, logger *zap.Logger, store service.Store, cache *repository.RedisRepository, auditLog *repository.MongoRepository) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(logger))

	return &Server{
		config:     cfg,
		logger:     logger,
		router:     router,
		users:      service.NewUserService(store, logger),
		categories: service.NewCategoryService(store, logger),
		products:   service.NewProductService(store, logger),
		orders:     service.NewOrderService(store, logger),
		orderItems: service.NewOrderItemService(store, logger),
		cache:      cache,
		auditLog:   auditLog,
	}
}

func (s *Server) SetupRoutes() {
	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := s.router.Group("/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", s.register)
			auth.POST("/login", s.login)
		}

		authorized := v1.Group("", s.authRequired())

		categories := authorized.Group("/category")
		{
			categories.POST("", s.createCategory)
			categories.GET("", s.listCategories)
			categories.GET("/count", s.countCategories)
			categories.GET("/search", s.searchCategories)
			categories.GET("/:id", s.getCategory)
			categories.PATCH("/:id", s.updateCategory)
			categories.DELETE("/:id", s.adminRequired(), s.deleteCategory)
		}

		products := authorized.Group("/product")
		{
			products.POST("", s.createProduct)
			products.GET("", s.listProducts)
			products.GET("/count", s.countProducts)
			products.GET("/search", s.searchProducts)
			products.GET("/:id", s.getProduct)
			products.PATCH("/:id", s.updateProduct)
			products.DELETE("/:id", s.adminRequired(), s.deleteProduct)
		}

		orders := authorized.Group("/order")
		{
			orders.POST("", s.createOrder)
			orders.GET("", s.listOrders)
			orders.GET("/count", s.countOrders)
			orders.GET("/search", s.searchOrders)
			orders.GET("/:id", s.getOrder)
			orders.PATCH("/:id", s.updateOrder)
			orders.DELETE("/:id", s.adminRequired(), s.deleteOrder)
		}

		orderItems := authorized.Group("/order-item")
		{
			orderItems.POST("", s.createOrderItem)
			orderItems.GET("", s.listOrderItems)
			orderItems.GET("/count", s.countOrderItems)
			orderItems.GET("/:id", s.getOrderItem)
			orderItems.PATCH("/:id", s.updateOrderItem)
			orderItems.DELETE("/:id", s.adminRequired(), s.deleteOrderItem)
		}

		authorized.GET("/audit-log/:entityId", s.adminRequired(), s.getAuditLogs)

		users := authorized.Group("/user", s.adminRequired())
		{
			users.POST("", s.createUser)
			users.GET("", s.listUsers)
			users.GET("/count", s.countUsers)
			users.GET("/search", s.searchUsers)
			users.GET("/:id", s.getUser)
			users.PATCH("/:id", s.updateUser)
			users.DELETE("/:id", s.deleteUser)
		}
	}

	// Swagger
	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.Info("API server starting", zap.String("address", addr))
	return s.router.Run(addr)
}

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
