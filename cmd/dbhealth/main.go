package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/inkform/inkform/internal/common"
	repo "github.com/inkform/inkform/internal/repository"
)

func main() {
	_ = godotenv.Load()
	cfg := common.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	db, err := repo.Open(ctx, repo.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		DialTimeout:     cfg.Database.DialTimeout,
	}, nil)
	if err != nil {
		log.Fatalf("opening DB: %v", err)
	}
	defer db.Close()

	if err := db.Ping(ctx, 1*time.Second); err != nil {
		log.Fatalf("DB health: FAIL (%v)", err)
	}
	log.Println("DB health: OK")

	records := repo.NewRecordRepository(db.Client, nil)
	recs, err := records.GetAll(ctx)
	if err != nil {
		log.Fatalf("listing records: %v", err)
	}

	log.Printf("record count: %d", len(recs))
	for _, r := range recs {
		log.Printf("- [%d] %s (%d fields)", r.ID, r.TaskID, len(r.RawJSON.Fields))
	}
}
