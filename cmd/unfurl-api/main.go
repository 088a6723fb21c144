package main

import (
	"database/sql"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"unfurl/internal/config"
	server "unfurl/internal/http"
	"unfurl/internal/migrate"
	"unfurl/internal/store"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	cfg := config.Load(*configPath)

	// Lookup history is optional; skip migrations and the store entirely
	// when no DSN is configured.
	var st *store.Store
	if cfg.Database.DSN != "" {
		if err := migrate.Run(cfg.Database.DSN); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}

		db, err := sql.Open("pgx", cfg.Database.DSN)
		if err != nil {
			log.Fatalf("open db failed: %v", err)
		}
		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)

		st = store.New(db)
	}

	// Set up logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{}))

	s := server.NewServer(cfg, st, logger)
	if err := s.Listen(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
