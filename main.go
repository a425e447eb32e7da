package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/shopspring/decimal"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"delight/internal/handlers"
	"delight/internal/middleware"
	"delight/internal/models"
	"delight/internal/repositories"
	"delight/internal/services"
	"delight/pkg/discord"
	"delight/pkg/rabbitmq"

	"github.com/spf13/viper"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "file:delight.db")
	viper.SetDefault("JWT_SECRET", "delight-dev-secret")
	viper.SetDefault("DISCORD_API_BASE", discord.DefaultAPIBase)
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv() // Load environment variables

	appPort := viper.GetString("APP_PORT")

	// --- Database ---
	db, err := openDatabase(viper.GetString("DATABASE_DRIVER"), viper.GetString("DATABASE_DSN"))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	// Missing broker configuration only disables event publication; the
	// order workflow itself has no hard dependency on it.
	var mqClient *rabbitmq.Client
	if rabbitMQURL := viper.GetString("RABBITMQ_URL"); rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set, order events will not be published")
	}

	// --- Discord client ---
	// Webhook URL and credentials are checked per request: a missing value
	// fails the dependent request, never the process.
	discordClient := discord.NewClient(discord.Config{
		WebhookURL: viper.GetString("DISCORD_WEBHOOK_URL"),
		BotToken:   viper.GetString("DISCORD_BOT_TOKEN"),
		APIBase:    viper.GetString("DISCORD_API_BASE"),
	})

	// --- Repositories ---
	menuRepo := repositories.NewStaticMenuRepository(catalog())
	userRepo := repositories.NewStaticUserRepository()
	orderRepo := repositories.NewGORMOrderRepository(db)

	// --- Services ---
	menuService := services.NewMenuService(menuRepo)
	orderService := services.NewOrderService(orderRepo, menuRepo, discordClient, mqClient)
	interactionService := services.NewInteractionService(discordClient, orderService)
	authService := services.NewAuthService(userRepo, viper.GetString("JWT_SECRET"))

	seedUsers(authService)

	// --- Handlers ---
	pageHandler := handlers.NewPageHandler(menuService)
	orderHandler := handlers.NewOrderHandler(orderService)
	authHandler := handlers.NewAuthHandler(authService)
	interactionHandler := handlers.NewInteractionHandler(interactionService, viper.GetString("DISCORD_PUBLIC_KEY"))

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger

	// --- Routes ---
	// The access gate runs on the browser pages only; the API routes keep
	// the contract of the order form and the Discord callbacks.
	pageHandler.RegisterRoutes(app, middleware.PageAuth(authService))

	api := app.Group("/api")
	authHandler.RegisterRoutes(api)
	orderHandler.RegisterRoutes(api)
	interactionHandler.RegisterRoutes(api)

	protected := api.Group("", middleware.AuthRequired(authService))
	orderHandler.RegisterProtectedRoutes(protected)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Order event consumer ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for order events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received order event %s (Tag: %d): %s", msg.Type, msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeOrderEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// openDatabase opens the order store with the configured driver.
func openDatabase(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
}

// catalog is the shared menu table: the order form renders from it and
// the intake endpoint prices against it.
func catalog() []models.MenuItem {
	return []models.MenuItem{
		{ID: "classique", Name: "Le classique", Description: "1 Burger + 1 coca + 1 cookie", Price: decimal.RequireFromString("12.99")},
		{ID: "fraicheur", Name: "Fraicheur Légère", Description: "1 salade césar + 1 oasis + 1 tarte au citron", Price: decimal.RequireFromString("14.99")},
		{ID: "delight", Name: "Le Delight", Description: "1 planche de charcuterie + 1 caramel macchiato + 1 charlotte aux fraises", Price: decimal.RequireFromString("18.99")},
		{ID: "gourmand", Name: "Le Gourmand", Description: "1 Croque Monsieur + 1 Jus d'ananas + 1 Brownie", Price: decimal.RequireFromString("15.99")},
		{ID: "festin", Name: "Le festin", Description: "1 Pizza Jambon + 1 Frite patate douce + 2 Pain perdu + 3 Limonade", Price: decimal.RequireFromString("24.99")},
	}
}

// seedUsers loads the static account list into the credential table.
func seedUsers(authService *services.AuthService) {
	accounts := []struct {
		username, password, role string
	}{
		{"admin", "password123", models.RoleAdmin},
		{"user1", "userpass1", models.RoleUser},
		{"user2", "userpass2", models.RoleUser},
	}

	for _, account := range accounts {
		if err := authService.SeedUser(account.username, account.password, account.role); err != nil {
			log.Printf("Error seeding user %s: %v", account.username, err)
		} else {
			log.Printf("Seeded user: %s (role: %s)", account.username, account.role)
		}
	}
}
