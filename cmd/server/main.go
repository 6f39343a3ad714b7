package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/pumpcare/connect/internal/config"
	"github.com/pumpcare/connect/internal/database"
	"github.com/pumpcare/connect/internal/handler"
	"github.com/pumpcare/connect/internal/queue"
	"github.com/pumpcare/connect/internal/repository"
	"github.com/pumpcare/connect/internal/router"
	"github.com/pumpcare/connect/internal/service"
)

func main() {
	// A local .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	admins := repository.NewAdminRepo(db)
	panchayats := repository.NewPanchayatRepo(db)
	operators := repository.NewOperatorRepo(db)
	villagers := repository.NewVillagerRepo(db)
	sectors := repository.NewSectorRepo(db)
	feedback := repository.NewFeedbackRepo(db)

	h := router.Handlers{
		Auth:      handler.NewAuthHandler(cfg, admins, panchayats, operators, villagers),
		Panchayat: handler.NewPanchayatHandler(cfg, panchayats, feedback),
		Sector:    handler.NewSectorHandler(sectors),
		Operator:  handler.NewOperatorHandler(cfg, operators),
		Villager:  handler.NewVillagerHandler(cfg, villagers, feedback, service.FeedbackEvents{URL: cfg.AMQPURL}),
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; login rate limiting disabled")
	}

	// Notification trail for incoming complaints.
	go func() {
		if err := queue.StartFeedbackConsumer(cfg.AMQPURL); err != nil {
			log.Printf("feedback-consumer: %v", err)
		}
	}()

	e := echo.New()
	e.Use(echomw.Recover())
	router.Register(e, cfg, h, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
