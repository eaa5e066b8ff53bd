package main // Entry point package

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/kerimd/service-booking-api/internal/config"
    "github.com/kerimd/service-booking-api/internal/database"
    "github.com/kerimd/service-booking-api/internal/handler"
    "github.com/kerimd/service-booking-api/internal/middleware"
    "github.com/kerimd/service-booking-api/internal/queue"
    "github.com/kerimd/service-booking-api/internal/repository"
    "github.com/kerimd/service-booking-api/internal/router"
)

func main() {
    // .env is optional; real deployments set the environment directly.
    _ = godotenv.Load()

    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("open database: %v", err)
    }
    defer db.Close()

    // Redis is optional: rate limiting and the response cache degrade
    // to pass-through when the client is nil.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Println("redis unavailable; rate limiting and response cache disabled")
    }

    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    services := repository.NewServiceRepo(db)
    bookings := repository.NewBookingRepo(db)
    reviews := repository.NewReviewRepo(db)

    h := router.Handlers{
        Auth:     handler.NewAuthHandler(cfg, users, tokens),
        Services: handler.NewServiceHandler(services),
        Bookings: handler.NewBookingHandler(bookings, services),
        Reviews:  handler.NewReviewHandler(reviews, bookings, services),
    }

    e := echo.New()
    e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

    router.RegisterRoutes(e)
    router.RegisterPublic(e, h, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
    router.RegisterAuth(e, h.Auth, cfg.JWTSecret)
    router.RegisterBookings(e, h, cfg.JWTSecret)

    // Background consumer keeps its own reconnect loop.
    go func() {
        if err := queue.StartBookingConsumer(); err != nil {
            log.Printf("booking consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)

    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
