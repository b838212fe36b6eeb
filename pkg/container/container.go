package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Amanisai/Emart/internal/config"
	infraCache "github.com/Amanisai/Emart/internal/infrastructure/cache"
	"github.com/Amanisai/Emart/internal/infrastructure/database"
	"github.com/Amanisai/Emart/internal/infrastructure/queue"
	"github.com/Amanisai/Emart/pkg/cache"
	"github.com/Amanisai/Emart/pkg/jwt"
	"github.com/Amanisai/Emart/pkg/logger"

	orderHandler "github.com/Amanisai/Emart/internal/domains/order/handler"
	orderRepo "github.com/Amanisai/Emart/internal/domains/order/repository"
	orderService "github.com/Amanisai/Emart/internal/domains/order/service"
	"github.com/Amanisai/Emart/internal/domains/payment/gateway"
	stripeGateway "github.com/Amanisai/Emart/internal/domains/payment/gateway/stripe"
	paymentHandler "github.com/Amanisai/Emart/internal/domains/payment/handler"
	paymentService "github.com/Amanisai/Emart/internal/domains/payment/service"
	productHandler "github.com/Amanisai/Emart/internal/domains/product/handler"
	productRepo "github.com/Amanisai/Emart/internal/domains/product/repository"
	productService "github.com/Amanisai/Emart/internal/domains/product/service"
	userHandler "github.com/Amanisai/Emart/internal/domains/user/handler"
	userRepo "github.com/Amanisai/Emart/internal/domains/user/repository"
	userService "github.com/Amanisai/Emart/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every dependency of the application and is the root
// of the dependency graph
type Container struct {
	// Infrastructure layer - shared singletons
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	QueueClient *queue.Client

	// Repository layer
	UserRepo    userRepo.UserRepository
	ProductRepo productRepo.ProductRepository
	OrderRepo   orderRepo.OrderRepository

	// Service layer
	UserService    userService.UserService
	ProductService productService.ProductService
	OrderService   orderService.OrderService
	PaymentService paymentService.PaymentService

	// Handler layer
	UserHandler    *userHandler.UserHandler
	ProductHandler *productHandler.ProductHandler
	OrderHandler   *orderHandler.OrderHandler
	PaymentHandler *paymentHandler.PaymentHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer initializes the whole dependency graph in order:
// config, infrastructure, repositories, services, handlers
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	log.Println("📋 Loading configuration...")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Init(cfg.App.Environment)
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	log.Println("🗄️  Connecting to PostgreSQL...")

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	log.Println("✅ Database connected")

	// ========================================
	// STEP 3: INITIALIZE CACHE
	// ========================================
	log.Println("🔴 Connecting to Redis...")

	redisCache := infraCache.NewRedisCache(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)

	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			// Redis failure is non-critical, catalog reads fall back to the DB
			log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
		} else {
			log.Println("✅ Redis connected")
		}
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(
		c.Config.JWT.Secret,
		time.Duration(c.Config.JWT.ExpiryHours)*time.Hour,
	)

	c.QueueClient = queue.NewClient(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)

	// ========================================
	// STEP 4: INITIALIZE REPOSITORIES
	// ========================================
	log.Println("📦 Initializing repositories...")

	c.UserRepo = userRepo.NewUserRepository(c.DB.Pool)
	c.ProductRepo = productRepo.NewProductRepository(c.DB.Pool)
	c.OrderRepo = orderRepo.NewOrderRepository(c.DB.Pool)

	log.Println("✅ Repositories initialized")

	// ========================================
	// STEP 5: INITIALIZE SERVICES
	// ========================================
	log.Println("⚙️  Initializing services...")

	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
	c.ProductService = productService.NewProductService(c.ProductRepo, c.Cache)
	c.OrderService = orderService.NewOrderService(c.OrderRepo, c.ProductRepo, c.UserRepo, c.QueueClient)
	c.PaymentService = paymentService.NewPaymentService(
		c.buildCheckoutGateway(),
		c.OrderService,
		c.Config.App.CORSOrigin+c.Config.Stripe.SuccessPath,
		c.Config.App.CORSOrigin+c.Config.Stripe.CancelPath,
	)

	log.Println("✅ Services initialized")

	// ========================================
	// STEP 6: INITIALIZE HANDLERS
	// ========================================
	log.Println("🎯 Initializing handlers...")

	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.ProductHandler = productHandler.NewProductHandler(c.ProductService)
	c.OrderHandler = orderHandler.NewOrderHandler(c.OrderService)
	c.PaymentHandler = paymentHandler.NewPaymentHandler(c.PaymentService)

	log.Println("✅ Handlers initialized")

	// ========================================
	// STEP 7: SEED ADMIN ACCOUNT
	// ========================================
	if c.Config.Admin.Email != "" {
		if err := c.UserService.SeedAdmin(context.Background(), c.Config.Admin.Email, c.Config.Admin.Password); err != nil {
			log.Printf("⚠️  Admin seed failed (non-critical): %v", err)
		}
	}

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// buildCheckoutGateway returns nil when Stripe is not configured.
// Payment endpoints then answer 503 instead of crashing at startup.
func (c *Container) buildCheckoutGateway() gateway.CheckoutGateway {
	if c.Config.Stripe.SecretKey == "" {
		log.Println("⚠️  Stripe not configured, checkout disabled")
		return nil
	}
	return stripeGateway.NewGateway(stripeGateway.Config{
		SecretKey:     c.Config.Stripe.SecretKey,
		WebhookSecret: c.Config.Stripe.WebhookSecret,
		Currency:      c.Config.Stripe.Currency,
	})
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases all infrastructure connections
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container...")

	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			log.Printf("⚠️  Failed to close queue client: %v", err)
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("⚠️  Failed to close Redis: %v", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Println("✅ Container cleaned up")
}
