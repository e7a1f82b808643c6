package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/olahol/melody"

	"smart-hotel/config"
	"smart-hotel/controllers"
	"smart-hotel/routes"
	"smart-hotel/services"
	"smart-hotel/services/notification"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	log.Printf("✅ Database connection established (max open conns %d)", cfg.MaxOpenConns)

	// Room status fan-out: websocket always, RabbitMQ when configured
	ws := melody.New()
	hub := notification.NewMelodyService(ws)
	sinks := notification.Multi{hub}

	var publisher *notification.AMQPPublisher
	if cfg.RabbitURL != "" {
		publisher, err = notification.NewAMQPPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			log.Printf("⚠️  RabbitMQ unavailable, continuing with websocket only: %v", err)
		} else {
			sinks = append(sinks, publisher)
			log.Printf("✅ Publishing room events to exchange %s", cfg.RabbitExchange)
		}
	}

	// Initialize services
	auditService := services.NewAuditService(db)
	lifecycleService := services.NewLifecycleService(db, auditService, sinks)
	roomService := services.NewRoomService(db, auditService)
	bookingService := services.NewBookingService(db)
	guestService := services.NewGuestService(db)

	// Initialize controllers
	guestController := controllers.NewGuestController(lifecycleService, guestService)
	bookingController := controllers.NewBookingController(lifecycleService, bookingService)
	roomController := controllers.NewRoomController(lifecycleService, roomService)
	smartLockController := controllers.NewSmartLockController(lifecycleService, roomService)

	router, err := routes.SetupRouter(guestController, bookingController, roomController, smartLockController, ws, cfg)
	if err != nil {
		log.Fatalf("❌ Router setup failed: %v", err)
	}

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s (%s)", addr, cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
	}

	// hijacked websocket connections are not tracked by Shutdown
	if err := hub.Close(); err != nil {
		log.Printf("⚠️  websocket hub close: %v", err)
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Printf("⚠️  RabbitMQ close: %v", err)
		}
	}
	if err := config.CloseDatabase(db); err != nil {
		log.Printf("⚠️  Database close: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
