package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	accountStore "github.com/rmarques/smartbooks/internal/account/store"
	categoryStore "github.com/rmarques/smartbooks/internal/category/store"
	ledgerStore "github.com/rmarques/smartbooks/internal/ledger/store"

	"github.com/rmarques/smartbooks/internal/account"
	"github.com/rmarques/smartbooks/internal/category"
	"github.com/rmarques/smartbooks/internal/config"
	"github.com/rmarques/smartbooks/internal/database"
	"github.com/rmarques/smartbooks/internal/export"
	smartbooksHttp "github.com/rmarques/smartbooks/internal/http"
	accountHandler "github.com/rmarques/smartbooks/internal/http/account"
	categoryHandler "github.com/rmarques/smartbooks/internal/http/category"
	exportHandler "github.com/rmarques/smartbooks/internal/http/export"
	importHandler "github.com/rmarques/smartbooks/internal/http/importcsv"
	txHandler "github.com/rmarques/smartbooks/internal/http/ledger"
	"github.com/rmarques/smartbooks/internal/importer"
	"github.com/rmarques/smartbooks/internal/ledger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	var (
		transactionService = ledger.NewService(ledgerStore.New(db))
		accountService     = account.NewService(accountStore.New(db))
		categoryService    = category.NewService(categoryStore.New(db))
		importService      = importer.NewService()
		exportService      = export.NewService(transactionService)
	)

	var (
		transactionH = txHandler.NewHandler(transactionService)
		accountH     = accountHandler.NewHandler(accountService)
		categoryH    = categoryHandler.NewHandler(categoryService)
		importH      = importHandler.NewHandler(importService, transactionService)
		exportH      = exportHandler.NewHandler(exportService)
	)

	router := smartbooksHttp.New(transactionH, accountH, categoryH, importH, exportH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
