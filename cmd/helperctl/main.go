package main

import (
	"fmt"
	"os"

	"assignhelper/internal/cli"
	"assignhelper/internal/config"
	"assignhelper/internal/store"

	"github.com/joho/godotenv"
)

// Version is set at build time
var Version = "dev"

func main() {
	_ = godotenv.Load()

	// helperctl only needs the DB path, so a missing UPSTREAM_URL must not
	// block it; fall back to the DB_PATH default Load would have used.
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		if cfg, err := config.Load(); err == nil {
			dbPath = cfg.DBPath
		} else {
			dbPath = "./data/helper.db"
		}
	}

	repo, err := store.NewSQLite(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = repo.Close() }()

	rootCmd := cli.NewRootCommand(Version, repo)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
