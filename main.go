package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"catalogo/internal/handlers"
	"catalogo/internal/middleware"
	"catalogo/internal/models"
	"catalogo/internal/repositories"
	"catalogo/internal/services"
	"catalogo/pkg/rabbitmq"
)

// NewApp builds the Fiber app with all routes wired, reading configuration
// from the environment. The returned cleanup function releases the RabbitMQ
// connection when one was established.
func NewApp() (*fiber.App, func(), error) {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "catalogo.db")
	viper.SetDefault("JWT_SECRET", "change_me_in_production")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	// --- Database ---
	var dialector gorm.Dialector
	if viper.GetString("DATABASE_DRIVER") == "postgres" {
		dialector = postgres.Open(viper.GetString("DATABASE_DSN"))
	} else {
		dialector = sqlite.Open(viper.GetString("DATABASE_DSN"))
	}
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, nil, err
	}

	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.User{}, &models.Order{}, &models.OrderItem{}); err != nil {
		return nil, nil, err
	}
	if err := seedDatabase(db); err != nil {
		return nil, nil, err
	}

	// --- RabbitMQ (optional) ---
	// The catalog works without a broker; events are simply not published.
	var mqClient *rabbitmq.Client
	cleanup := func() {}
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: url})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, catalog events disabled: %v", err)
			mqClient = nil
		} else {
			cleanup = func() {
				if err := mqClient.Close(); err != nil {
					log.Printf("Error closing RabbitMQ client: %v", err)
				}
			}
		}
	}

	// --- Repositories ---
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, viper.GetString("JWT_SECRET"))
	var events services.EventPublisher
	if mqClient != nil {
		events = mqClient
	}
	catalogService := services.NewCatalogService(categoryRepo, productRepo, authService, events)

	// --- Handlers ---
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	authHandler := handlers.NewAuthHandler(authService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())
	app.Use(middleware.BearerToken())

	authHandler.RegisterRoutes(app)
	catalogHandler.RegisterRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Catalog event consumer ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for catalog events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received catalog event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeCatalogEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	return app, cleanup, nil
}

func main() {
	app, cleanup, err := NewApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer cleanup()

	appPort := viper.GetString("APP_PORT")
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

const imgBase = "https://raw.githubusercontent.com/devsuperior/dscatalog-resources/master/backend/img/"

const loremDescription = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua."

type seedProduct struct {
	name       string
	price      float64
	categories []uint
}

var seedProducts = []seedProduct{
	{"The Lord of the Rings", 90.5, []uint{1}},
	{"Smart TV", 2190.0, []uint{2, 3}},
	{"Macbook Pro", 1250.0, []uint{3}},
	{"PC Gamer", 1200.0, []uint{3}},
	{"Rails for Dummies", 100.99, []uint{1}},
	{"PC Gamer Tera", 1999.0, []uint{3}},
	{"PC Gamer Y", 1700.0, []uint{3}},
	{"PC Gamer Nitro", 1450.0, []uint{3}},
	{"PC Gamer Card", 1850.0, []uint{3}},
	{"PC Gamer Plus", 1350.0, []uint{3}},
	{"PC Gamer Hera", 1950.0, []uint{3}},
	{"PC Gamer Weed", 2200.0, []uint{3}},
	{"PC Gamer Max", 1900.0, []uint{3}},
	{"PC Gamer Turbo", 1280.0, []uint{3}},
	{"PC Gamer Hot", 1450.0, []uint{3}},
	{"PC Gamer Ez", 1750.0, []uint{3}},
	{"PC Gamer Tr", 1650.0, []uint{3}},
	{"PC Gamer Tx", 1680.0, []uint{3}},
	{"PC Gamer Er", 1850.0, []uint{3}},
	{"PC Gamer Min", 1550.0, []uint{3}},
	{"PC Gamer Boo", 1350.0, []uint{3}},
	{"PC Gamer Foo", 1200.0, []uint{3}},
	{"PC Gamer Bar", 1750.0, []uint{3}},
	{"PC Gamer Zx", 1890.0, []uint{3}},
	{"PC Gamer Full", 1050.0, []uint{3}},
}

// seedDatabase loads the catalog fixture: three categories, twenty-five
// products, a CLIENT and an ADMIN account, and one order that makes product
// 1 dependent. Runs only against an empty database.
func seedDatabase(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []models.Category{
		{ID: 1, Name: "Livros"},
		{ID: 2, Name: "Eletrônicos"},
		{ID: 3, Name: "Computadores"},
	}
	if err := db.Create(&categories).Error; err != nil {
		return err
	}

	for i, sp := range seedProducts {
		product := models.Product{
			ID:          uint(i + 1),
			Name:        sp.name,
			Description: loremDescription,
			Price:       sp.price,
			ImgURL:      fmt.Sprintf("%s%d-big.jpg", imgBase, i+1),
		}
		for _, cid := range sp.categories {
			product.Categories = append(product.Categories, categories[cid-1])
		}
		if err := db.Create(&product).Error; err != nil {
			return err
		}
	}

	password, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	users := []models.User{
		{ID: 1, Username: "maria@gmail.com", Email: "maria@gmail.com", Password: string(password), Roles: models.RoleClient},
		{ID: 2, Username: "alex@gmail.com", Email: "alex@gmail.com", Password: string(password), Roles: models.RoleClient + "," + models.RoleAdmin},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}

	// Product 1 is referenced by this order and therefore cannot be deleted.
	orderRepo := repositories.NewGORMOrderRepository(db)
	order := models.Order{
		UserID: 1,
		Items: []models.OrderItem{
			{ProductID: 1, Quantity: 1, Price: 90.5},
		},
	}
	if err := orderRepo.Create(&order); err != nil {
		return err
	}

	// The fixture inserts explicit ids, which does not advance postgres
	// sequences. Bump them so subsequent inserts do not collide.
	if viper.GetString("DATABASE_DRIVER") == "postgres" {
		for _, table := range []string{"categories", "products", "users"} {
			stmt := fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT MAX(id) FROM %s))", table, table)
			if err := db.Exec(stmt).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
