package main

import (
    "flag"
    "fmt"
    "log"

    "github.com/joho/godotenv"
    "github.com/pressly/goose/v3"

    "github.com/kerimd/service-booking-api/internal/config"
    "github.com/kerimd/service-booking-api/internal/database"
)

func main() {
    if err := godotenv.Load(); err != nil {
        log.Printf("warning: .env not found, using system environment: %v", err)
    }

    cfg := config.Load()

    var migrationsDir string
    flag.StringVar(&migrationsDir, "dir", "./migrations", "directory with migration files")
    flag.Parse()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("goose: failed to connect to DB: %v\n", err)
    }
    defer func() {
        if err := db.Close(); err != nil {
            log.Fatalf("goose: failed to close DB: %v\n", err)
        }
    }()

    if err := goose.SetDialect("mysql"); err != nil {
        log.Fatalf("goose: set dialect: %v", err)
    }

    arguments := flag.Args()
    if len(arguments) == 0 {
        arguments = []string{"up"}
    }

    command := arguments[0]
    var args []string
    if len(arguments) > 1 {
        args = arguments[1:]
    }

    if err := goose.Run(command, db, migrationsDir, args...); err != nil {
        log.Fatalf("goose %v: %v", command, err)
    }

    fmt.Printf("goose %s success\n", command)
}
