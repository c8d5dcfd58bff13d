// Command seed loads the CSV data files into the configured database.
//
//	seed --data ./data --database-url postgres://... --users
//	seed --dry-run   # parse into memory and print the report only
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gamecatalog/backend/internal/auth"
	"gamecatalog/backend/internal/config"
	"gamecatalog/backend/internal/database"
	"gamecatalog/backend/internal/ingest"
	"gamecatalog/backend/internal/logging"
	"gamecatalog/backend/internal/repository"
	"gamecatalog/backend/internal/repository/gormrepo"
	"gamecatalog/backend/internal/repository/memory"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	flags := pflag.NewFlagSet("seed", pflag.ExitOnError)
	flags.String("data", "data", "directory holding games.csv and users.csv")
	flags.String("database-url", "", "database DSN; empty means a sqlite file in the data directory")
	flags.Bool("users", true, "also load users.csv")
	flags.String("log-level", "info", "log level")
	dryRun := flags.Bool("dry-run", false, "load into memory and print the report without touching the database")
	_ = flags.Parse(os.Args[1:])

	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName(".env")
	v.SetConfigType("env")
	for key, flag := range map[string]string{
		"DATA_PATH":    "data",
		"DATABASE_URL": "database-url",
		"SEED_USERS":   "users",
		"LOG_LEVEL":    "log-level",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	// Only the flags and DATA_PATH matter here; the server backend choice does not.
	v.Set("REPOSITORY", config.RepositoryDatabase)

	cfg, err := config.Load(v)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	var repo repository.Repository
	if *dryRun {
		repo = memory.New()
	} else {
		db, err := database.Connect(cfg.DatabaseURL, cfg.DataPath)
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to connect to database")
		}
		repo = gormrepo.New(db)
	}

	report, err := ingest.Populate(context.Background(), repo, cfg.DataPath, auth.NewBcryptHasher(), ingest.Options{Users: cfg.SeedUsers})
	if err != nil {
		logging.Fatal().Err(err).Str("data", cfg.DataPath).Msg("seeding failed")
	}

	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")
	_ = out.Encode(report)
}
