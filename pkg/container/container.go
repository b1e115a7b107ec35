package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"bookreview-backend/internal/config"
	infraCache "bookreview-backend/internal/infrastructure/cache"
	"bookreview-backend/internal/infrastructure/database"
	"bookreview-backend/internal/infrastructure/queue"
	"bookreview-backend/internal/infrastructure/storage"
	"bookreview-backend/pkg/cache"
	"bookreview-backend/pkg/jwt"

	bookHandler "bookreview-backend/internal/domains/book/handler"
	bookJob "bookreview-backend/internal/domains/book/job"
	bookRepo "bookreview-backend/internal/domains/book/repository"
	bookService "bookreview-backend/internal/domains/book/service"
	reviewHandler "bookreview-backend/internal/domains/review/handler"
	reviewRepo "bookreview-backend/internal/domains/review/repository"
	reviewService "bookreview-backend/internal/domains/review/service"
	userHandler "bookreview-backend/internal/domains/user/handler"
	userRepo "bookreview-backend/internal/domains/user/repository"
	userService "bookreview-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup, in dependency order.
type Container struct {
	// Infrastructure - shared across all domains
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	Storage    *storage.MinIOStorage
	Queue      *queue.Client
	JWTManager *jwt.Manager

	// Repositories - data access
	UserRepo   userRepo.UserRepository
	BookRepo   bookRepo.BookRepository
	ReviewRepo reviewRepo.ReviewRepository

	// Services - business logic
	UserService   userService.ServiceInterface
	BookService   bookService.ServiceInterface
	ReviewService reviewService.ServiceInterface

	// Handlers - thin HTTP layer
	UserHandler   *userHandler.UserHandler
	BookHandler   *bookHandler.BookHandler
	ReviewHandler *reviewHandler.ReviewHandler

	// Worker task handlers
	ProcessCoverHandler *bookJob.ProcessCoverHandler
}

// NewContainer builds the whole dependency graph:
// config -> infrastructure -> repositories -> services -> handlers.
// Wrong order panics on a nil dependency, so the order is the contract.
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: DATABASE
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
	// STEP 3: CACHE
	// ========================================
	log.Println("🔴 Connecting to Redis...")

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			// Cache is best-effort; the app serves from Postgres without it.
			log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
		} else {
			log.Println("✅ Redis connected")
		}
	}
	c.Cache = redisCache

	// ========================================
	// STEP 4: OBJECT STORAGE + TASK QUEUE
	// ========================================
	log.Println("🪣 Connecting to MinIO...")

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init minio storage: %w", err)
	}
	c.Storage = minioStorage
	log.Println("✅ MinIO connected")

	c.Queue = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)

	// ========================================
	// STEP 5: REPOSITORIES
	// ========================================
	c.UserRepo = userRepo.NewPostgresUserRepository(db.Pool)
	c.BookRepo = bookRepo.NewPostgresBookRepository(db.Pool)
	c.ReviewRepo = reviewRepo.NewPostgresReviewRepository(db.Pool)

	// ========================================
	// STEP 6: SERVICES
	// ========================================
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
	c.BookService = bookService.NewBookService(
		c.BookRepo,
		c.ReviewRepo,
		c.Cache,
		c.Storage,
		storage.NewImageProcessor(),
		c.Queue,
	)
	c.ReviewService = reviewService.NewReviewService(
		c.ReviewRepo,
		c.BookRepo,
		c.UserRepo,
		c.Cache,
	)

	// ========================================
	// STEP 7: HANDLERS
	// ========================================
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.ReviewService)

	c.ProcessCoverHandler = bookJob.NewProcessCoverHandler(c.BookService)

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// Cleanup releases external resources. Called during graceful shutdown.
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			log.Printf("⚠️  Failed to close queue client: %v", err)
		}
	}

	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Pool.Close()
		log.Println("✅ Database connections closed")
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Printf("⚠️  Failed to close Redis: %v", err)
			} else {
				log.Println("✅ Redis connections closed")
			}
		}
	}

	log.Println("✅ Container cleanup completed")
}
