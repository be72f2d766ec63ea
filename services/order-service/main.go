package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmoralesv/ecommerce-microservices/services/common/logger"
	"github.com/dmoralesv/ecommerce-microservices/services/common/middleware"
	"github.com/dmoralesv/ecommerce-microservices/services/order-service/controllers"
	"github.com/dmoralesv/ecommerce-microservices/services/order-service/database"
	"github.com/dmoralesv/ecommerce-microservices/services/order-service/models"
	"github.com/dmoralesv/ecommerce-microservices/services/order-service/repository"
	"github.com/dmoralesv/ecommerce-microservices/services/order-service/routes"
	servicepkg "github.com/dmoralesv/ecommerce-microservices/services/order-service/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	zlog, err := logger.New("order-service")
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zlog.Sync() //nolint:errcheck

	cfg, err := LoadConfig()
	if err != nil {
		zlog.Fatal("Failed to load config", zap.Error(err))
	}

	if err := database.Connect(cfg.PostgresHost, cfg.PostgresUser, cfg.PostgresPassword,
		cfg.PostgresDB, cfg.PostgresPort, cfg.PostgresSSLMode, cfg.PostgresTimeZone); err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close() //nolint:errcheck

	if err := database.DB.AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
		zlog.Fatal("Migration failed", zap.Error(err))
	}

	// DI chain
	orderRepo := repository.NewGormOrderRepository(database.DB)
	productClient := servicepkg.NewHTTPProductClient(cfg.ProductServiceURL, zlog)
	customerClient := servicepkg.NewHTTPCustomerClient(cfg.CustomerServiceURL, zlog)
	orderService := servicepkg.NewOrderService(orderRepo, productClient, customerClient, zlog)
	orderController := controllers.NewOrderController(orderService)

	r := gin.New()
	r.Use(logger.RequestLogger(zlog))
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewRateLimiter(rate.Every(time.Second/20), 40)))

	// 30-second request timeout
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "order-service"})
	})

	routes.RegisterOrderRoutes(r, orderController)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("Server failed", zap.Error(err))
		}
	}()

	zlog.Info("Order service started", zap.String("port", cfg.Port))
	<-quit
	zlog.Info("Shutting down order service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("Server forced to shutdown", zap.Error(err))
	}
	zlog.Info("Server exited cleanly")
}
