package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/mdd-social/mdd-api/internal/auth"
	"github.com/mdd-social/mdd-api/internal/config"
	"github.com/mdd-social/mdd-api/internal/database"
	"github.com/mdd-social/mdd-api/internal/handler"
	"github.com/mdd-social/mdd-api/internal/middleware"
	"github.com/mdd-social/mdd-api/internal/queue"
	"github.com/mdd-social/mdd-api/internal/repository"
	"github.com/mdd-social/mdd-api/internal/router"
	"github.com/mdd-social/mdd-api/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("loaded configuration from .env")
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	tokens := auth.NewTokenProvider(cfg.JWTSecret, time.Duration(cfg.TokenTTLMin)*time.Minute)

	users := repository.NewUserRepo(db)
	subjects := repository.NewSubjectRepo(db)
	subscriptions := repository.NewSubscriptionRepo(db)
	posts := repository.NewPostRepo(db)
	comments := repository.NewCommentRepo(db)

	publisher := service.NewQueuePublisher()

	handlers := router.Handlers{
		Auth:          handler.NewAuthHandler(cfg, users, tokens),
		Users:         handler.NewUserHandler(cfg, users, subscriptions),
		Subjects:      handler.NewSubjectHandler(subjects, subscriptions),
		Subscriptions: handler.NewSubscriptionHandler(users, subjects, subscriptions),
		Posts:         handler.NewPostHandler(posts, subjects, users, publisher),
		Comments:      handler.NewCommentHandler(comments, posts, users),
	}

	// Response cache degrades to pass-through when Redis is absent.
	var cacheMW echo.MiddlewareFunc
	if rdb := config.NewRedisClient(); rdb != nil {
		cacheMW = middleware.ResponseCache(config.LoadCacheConfig(), rdb)
	} else {
		log.Println("redis unavailable, response cache disabled")
	}

	// Drain post.created events in the background; the consumer runs
	// its own reconnect loop.
	go func() {
		if err := queue.StartPostConsumer(); err != nil {
			log.Printf("post-consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.Register(e, handlers, tokens, cacheMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
