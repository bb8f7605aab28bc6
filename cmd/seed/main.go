package main

import (
	"context"
	"database/sql"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/carehome-admin/config"
	"github.com/oksasatya/carehome-admin/internal/seed"
	"github.com/oksasatya/carehome-admin/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Dev tokens are only printed outside production.
	var jwt *helpers.JWTManager
	if cfg.Env != "production" {
		jwt = helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.AccessTTL)
	}
	if err := seed.Run(context.Background(), db, os.Stdout, jwt); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}
