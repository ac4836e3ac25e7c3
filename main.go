package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/wellkart/pharmacy-api/analytics"
	"github.com/wellkart/pharmacy-api/cart"
	"github.com/wellkart/pharmacy-api/models"
	"github.com/wellkart/pharmacy-api/notifications"
	"github.com/wellkart/pharmacy-api/routes"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.Brand{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Cart persistence (redis)
	redisClient := redis.NewClient(&redis.Options{
		Addr: getenvDefault("REDIS_ADDR", "localhost:6379"),
	})
	cartStore := cart.NewRedisStore(redisClient, 0)

	// Analytics dispatch
	dispatcher := analytics.NewDispatcher(analytics.LogTracker{}, 256)
	defer dispatcher.Close()

	// Order emails
	mailer := initMailer()

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, db, routes.Deps{
		CartStore: cartStore,
		Emitter:   dispatcher,
		Mailer:    mailer,
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

// initMailer configures the SMTP mailer; without SMTP_HOST the server runs
// with order emails disabled.
func initMailer() *notifications.Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Println("⚠️ SMTP_HOST not set, order emails disabled")
		return nil
	}
	port, err := strconv.Atoi(getenvDefault("SMTP_PORT", "587"))
	if err != nil {
		log.Fatalf("❌ Invalid SMTP_PORT: %v", err)
	}
	sender := notifications.NewSMTPSender(
		host,
		port,
		os.Getenv("SMTP_USERNAME"),
		os.Getenv("SMTP_PASSWORD"),
		getenvDefault("SMTP_FROM", "orders@wellkart.example"),
	)
	return notifications.NewMailer(sender, os.Getenv("ORDER_NOTIFY_EMAIL"))
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
