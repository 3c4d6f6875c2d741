package main

import (
	"context"
	"fmt"
	"log"

	"minishop-prototype/core"
)

func main() {
	cfg := core.Load()
	ctx := context.Background()

	logCloser, err := core.SetupLogging(cfg, "api.log")
	if err != nil {
		log.Fatalf("failed to setup logging: %v", err)
	}
	defer logCloser.Close()

	db, err := core.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer db.Close()

	if err := core.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}

	redisClient, err := core.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	defer redisClient.Close()

	userRepo := core.NewPgUserRepository(db)
	productRepo := core.NewPgProductRepository(db)
	cartRepo := core.NewPgCartRepository(db)
	catalogCache := core.NewRedisCatalogCache(redisClient)

	authService := core.NewRepositoryAuthService(userRepo, []byte(cfg.JWTSecret), cfg.BcryptCost)

	if err := core.SeedProducts(ctx, productRepo, catalogCache, cfg); err != nil {
		log.Fatalf("failed to seed products: %v", err)
	}

	router := core.NewRouter(cfg, authService, productRepo, cartRepo, catalogCache)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("starting api server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
