package main

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"

    "github.com/iliyamo/hotel-admin/internal/config"
    "github.com/iliyamo/hotel-admin/internal/database"
    "github.com/iliyamo/hotel-admin/internal/handler"
    "github.com/iliyamo/hotel-admin/internal/middleware"
    "github.com/iliyamo/hotel-admin/internal/queue"
    "github.com/iliyamo/hotel-admin/internal/repository"
    "github.com/iliyamo/hotel-admin/internal/router"
    "github.com/iliyamo/hotel-admin/internal/settlement"
)

func main() {
    // .env is optional; real deployments set the environment directly.
    _ = godotenv.Load()

    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    // Redis is optional: without it the cache and rate limiter become
    // pass-through middleware.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Printf("redis unavailable; cache and rate limiting disabled")
    }

    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    roomTypes := repository.NewRoomTypeRepo(db)
    rooms := repository.NewRoomRepo(db)
    combos := repository.NewServiceComboRepo(db)
    reservations := repository.NewReservationRepo(db)

    calc := settlement.NewCalculator(rooms, 0)

    authH := handler.NewAuthHandler(cfg, users, tokens)
    userH := handler.NewUserHandler(cfg, users, tokens)
    roomTypeH := handler.NewRoomTypeHandler(roomTypes)
    roomH := handler.NewRoomHandler(rooms, roomTypes, combos)
    comboH := handler.NewServiceComboHandler(combos)
    deskH := handler.NewDeskHandler(reservations, rooms, roomTypes, combos, calc)
    chatH := handler.NewChatHandler(cfg)

    e := echo.New()
    e.HideBanner = true
    e.Use(echomw.Recover())
    e.Use(echomw.Logger())
    e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

    cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

    router.RegisterRoutes(e)
    router.RegisterAuth(e, authH, cfg.JWTSecret)
    router.RegisterAdmin(e, roomTypeH, roomH, comboH, userH, cfg.JWTSecret, cache)
    router.RegisterDesk(e, deskH, chatH, cfg.JWTSecret)

    // Audit consumer runs for the life of the process and reconnects on
    // broker failures.
    go func() {
        if err := queue.StartSettlementConsumer(); err != nil {
            log.Printf("settlement consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
