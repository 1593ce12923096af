package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/social-feed/internal/config"
	"github.com/iliyamo/social-feed/internal/database"
	"github.com/iliyamo/social-feed/internal/handler"
	"github.com/iliyamo/social-feed/internal/middleware"
	"github.com/iliyamo/social-feed/internal/queue"
	"github.com/iliyamo/social-feed/internal/repository"
	"github.com/iliyamo/social-feed/internal/router"
	queue_publisher "github.com/iliyamo/social-feed/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	users := repository.NewUserRepo(db)
	posts := repository.NewPostRepo(db)
	likes := repository.NewLikeRepo(db)
	comments := repository.NewCommentRepo(db)

	authH := handler.NewAuthHandler(cfg, users)
	postH := handler.NewPostHandler(posts, likes, comments, cfg.UploadDir)
	postH.Publish = queue_publisher.PublishActivity
	userH := handler.NewUserHandler(users, cfg.UploadDir)

	// Redis is optional: without it the limiter and cache become no-ops.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response cache disabled")
	}
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// Activity log consumer runs for the life of the process and survives
	// broker restarts on its own.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, limiter)
	router.RegisterFeed(e, authH, postH, userH, cfg.JWTSecret, cache)
	e.Static("/uploads", cfg.UploadDir)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
