package main

import (
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"procurehub/db/migrations"
	"procurehub/internal/audit"
	bidding "procurehub/internal/bidService"
	"procurehub/internal/notify"
	"procurehub/internal/repository"
	"procurehub/internal/server"
	tender "procurehub/internal/tenderService"
)

func main() {
	tenderRepo, bidRepo, err := buildRepositories()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize storage: %v\n", err)
		os.Exit(1)
	}

	notifier := notify.NewLogNotifier()
	auditor := audit.NewLogAuditor()

	tenderSvc := tender.NewService(tenderRepo, bidRepo, notifier, auditor)
	bidSvc := bidding.NewService(tenderRepo, bidRepo, notifier, auditor)

	router := server.SetupRouter(tenderSvc, bidSvc)

	port := getPort()
	fmt.Printf("Starting procurement server on %s...\n", port)
	if err := router.Run(port); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// buildRepositories selects Postgres when DATABASE_URL is set and falls
// back to the in-memory store otherwise.
func buildRepositories() (repository.TenderDB, repository.BidDB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		repo := repository.NewMemoryRepo()
		return repo, repo, nil
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := migrations.Run(db.DB); err != nil {
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	repo := repository.NewPostgresRepo(db)
	return repo, repo, nil
}

// getPort returns the server port from env or defaults to ":8080"
func getPort() string {
	if p := os.Getenv("PORT"); p != "" {
		return fmt.Sprintf(":%s", p)
	}
	return ":8080"
}
