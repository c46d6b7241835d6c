package main

import (
	"context"
	"log"
	"os"
	"time"

	"storefront-service/internal/controllers/http"
	"storefront-service/internal/domain"
	mmysql "storefront-service/internal/infra/mysql"
	"storefront-service/internal/infra/payment"
	"storefront-service/internal/infra/rabbitmq"
	mysqlrepo "storefront-service/internal/repository/mysql"
	"storefront-service/internal/seed"
	"storefront-service/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	db, err := mmysql.NewMySQLFromEnv()
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	catalogRepo := mysqlrepo.NewCatalogRepository(db)
	cartRepo := mysqlrepo.NewCartRepository(db)
	orderRepo := mysqlrepo.NewOrderRepository(db)

	if err := seed.Run(catalogRepo); err != nil {
		log.Fatalf("seed: %v", err)
	}

	publisher, err := rabbitmq.NewPublisher(os.Getenv("RABBITMQ_URL"), "store.exchange")
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}
	defer publisher.Close()

	paypalBaseURL := payment.SandboxBaseURL
	if os.Getenv("PAYPAL_MODE") == "live" {
		paypalBaseURL = payment.LiveBaseURL
	}
	paypalClient := payment.NewPayPalClient(
		paypalBaseURL,
		os.Getenv("PAYPAL_CLIENT_ID"),
		os.Getenv("PAYPAL_CLIENT_SECRET"),
		10*time.Second,
	)

	catalogService := services.NewCatalogService(catalogRepo)
	cartService := services.NewCartService(cartRepo, catalogRepo)
	checkoutService := services.NewCheckoutService(cartRepo, orderRepo, publisher)
	checkoutService.RegisterVerifier(domain.PaymentPayPal, paypalClient)
	checkoutService.RegisterVerifier(domain.PaymentCard, payment.CardVerifier{})

	redisClient := redis.NewClient(&redis.Options{
		Addr:         os.Getenv("REDIS_HOST") + ":6379",
		DB:           0,
		PoolSize:     100,
		MinIdleConns: 10,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
	catalogService.SetRedisClient(redisClient)
	cartService.SetRedisClient(redisClient)

	go func() {
		time.Sleep(5 * time.Second)
		if err := catalogService.WarmupCatalogCache(context.Background()); err != nil {
			log.Printf("Failed to warm up catalog cache: %v", err)
		} else {
			log.Println("Catalog cache warmed up")
		}
	}()

	handler := http.NewHandler(catalogService, cartService, checkoutService)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handler.RegisterRoutes(r, os.Getenv("JWT_SECRET"))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting storefront service on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
