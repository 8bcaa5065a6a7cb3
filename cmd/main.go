package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	"github.com/jacksonn455/user-service/internal/cache"
	"github.com/jacksonn455/user-service/internal/config"
	"github.com/jacksonn455/user-service/internal/events"
	"github.com/jacksonn455/user-service/internal/handler"
	"github.com/jacksonn455/user-service/internal/middleware"
	"github.com/jacksonn455/user-service/internal/repository"
	"github.com/jacksonn455/user-service/internal/service"
	"github.com/jacksonn455/user-service/internal/token"
	"github.com/jacksonn455/user-service/internal/wallet"
)

func main() {
	cfg := config.Load()

	// PostgreSQL (write store, source of truth)
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	// Redis (session cache)
	redisClient, err := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// RabbitMQ (domain events)
	publisher, err := events.NewPublisher(cfg.RabbitMQURL, cfg.EventQueue)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	issuer := token.NewIssuer(cfg.JWTSecret, cfg.JWTInternalSecret, cfg.JWTExpiry, cfg.JWTInternalExpiry)

	userRepo := repository.NewUserRepository(db)
	userCache := cache.NewUserCache(redisClient, cfg.CacheTTL)
	walletClient := wallet.NewClient(cfg.WalletServiceURL, cfg.WalletServiceEnabled, issuer)

	userService := service.NewUserService(userRepo, userCache, publisher, walletClient, issuer)
	userHandler := handler.NewUserHandler(userService, walletClient)

	router := gin.Default()

	api := router.Group("/api")
	{
		api.POST("/auth/register", userHandler.Register)
		api.POST("/auth/login", userHandler.Login)

		authed := api.Group("", middleware.Auth(issuer))
		authed.GET("/profile", userHandler.GetProfile)
		authed.GET("/profile/financial", userHandler.GetProfileWithFinancialData)
		authed.GET("/users", userHandler.GetAllUsers)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"service":   "user-service",
			"timestamp": time.Now().UTC(),
		})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("User service starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
