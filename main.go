package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ewaste/config"
	"ewaste/db"
	"ewaste/middlewares"
	"ewaste/models"
	"ewaste/routes"
	"ewaste/utils"
)

func main() {
	godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("config error:", err)
	}

	// Postgres: accounts + drop-off ledger
	sqldb, err := db.Open(cfg.PGDSN)
	if err != nil {
		log.Fatal("Postgres error:", err)
	}
	defer sqldb.Close()

	// Mongo: events
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mg, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("mongo.Connect error:", err)
	}
	if err := mg.Ping(ctx, nil); err != nil {
		log.Fatal("Mongo ping error:", err)
	}
	defer func() { _ = mg.Disconnect(context.Background()) }()

	eventsCol := mg.Database("ewaste").Collection("events")

	// Redis: response cache + quotas
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	inv := utils.NewCacheInvalidator(rdb)

	server := gin.Default()
	server.Use(middlewares.ResponseCache(rdb, cfg.CacheTTL))

	routes.RegisterRoutes(server,
		models.NewSQLUserRepository(sqldb),
		models.NewMongoEventRepository(eventsCol),
		models.NewSQLDropOffRepository(sqldb),
		rdb, inv)

	if err := server.Run(":" + cfg.Port); err != nil {
		log.Fatal("gin.Run error:", err)
	}
}
