package main

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"

	"github.com/mroldan747/ai50/internal/config"
	"github.com/mroldan747/ai50/internal/database"
	"github.com/mroldan747/ai50/migrations"
)

func main() {
	config.Load()

	var logger *slog.Logger
	if config.Development() {
		logger = slog.New(tint.NewHandler(os.Stderr, nil))
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}

	url, err := config.DbURL()
	if err != nil {
		logger.Error("failed to resolve database url", slog.Any("error", err))
		os.Exit(1)
	}

	migrator, err := database.Migrate(url, migrations.Files)
	if err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}

	version, dirty, err := migrator.Version()
	if err != nil {
		logger.Error("failed to check migration version", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info(
		"migration successful",
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty),
	)
}
