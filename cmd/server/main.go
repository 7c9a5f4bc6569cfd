package main

import (
	"log"
	"net/http"

	_ "catgw/docs" // swagger docs

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"catgw/internal/auth"
	"catgw/internal/catapi"
	"catgw/internal/config"
	"catgw/internal/db"
	"catgw/internal/errors"
	"catgw/internal/handler"
	"catgw/internal/model"
	"catgw/internal/repository"
	"catgw/internal/router"
	"catgw/internal/service"
)

// @title Cat Gateway API
// @version 1.0
// @description Cat breed lookup API behind JWT authentication.
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	e := echo.New()
	e.Use(echomw.RequestID())
	e.HTTPErrorHandler = errors.Handler(cfg.Development())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	userRepo := repository.NewUserRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	tokenStore := auth.NewTokenStore(redisClient)
	verifier := auth.NewVerifier(jwtService, userRepo)

	userService := service.NewUserService(userRepo, jwtService, tokenStore)
	catService := service.NewCatService(catapi.NewClient(cfg.CatAPIURL, cfg.CatAPIKey))

	userHandler := handler.NewUserHandler(userService)
	catHandler := handler.NewCatHandler(catService)

	router.Register(e, verifier, userHandler, catHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
