package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/vehicle-rental-reservation/internal/booking"
	"github.com/iliyamo/vehicle-rental-reservation/internal/config"
	"github.com/iliyamo/vehicle-rental-reservation/internal/database"
	"github.com/iliyamo/vehicle-rental-reservation/internal/handler"
	"github.com/iliyamo/vehicle-rental-reservation/internal/middleware"
	"github.com/iliyamo/vehicle-rental-reservation/internal/payment"
	"github.com/iliyamo/vehicle-rental-reservation/internal/queue"
	"github.com/iliyamo/vehicle-rental-reservation/internal/repository"
	"github.com/iliyamo/vehicle-rental-reservation/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil when redis is unreachable; middleware fails open

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	vehicles := repository.NewVehicleRepo(db)
	reservations := repository.NewReservationRepo(db)

	flows := booking.NewFlowManager(reservations, vehicles)
	payments := payment.NewRouter()

	authH := handler.NewAuthHandler(cfg, users, tokens)
	vehicleH := handler.NewVehicleHandler(vehicles)
	clientH := handler.NewClientReservationHandler(flows, vehicles, reservations, payments)
	operatorH := handler.NewOperatorReservationHandler(reservations)

	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("queue: consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true

	rlCfg := config.LoadRateLimitConfig()
	if rlCfg.Enabled {
		e.Use(middleware.NewRateLimiter(rlCfg, rdb))
	}

	var cacheMW echo.MiddlewareFunc
	cacheCfg := config.LoadCacheConfig()
	if cacheCfg.Enabled && rdb != nil {
		cacheMW = middleware.NewResponseCache(cacheCfg, rdb)
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterVehicles(e, vehicleH, cfg.JWTSecret, cacheMW)
	router.RegisterReservations(e, clientH, operatorH, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
