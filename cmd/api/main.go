package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/elcarbonero/brasa/internal/audit"
	auditStore "github.com/elcarbonero/brasa/internal/audit/store"
	"github.com/elcarbonero/brasa/internal/collection"
	collectionStore "github.com/elcarbonero/brasa/internal/collection/store"
	"github.com/elcarbonero/brasa/internal/config"
	"github.com/elcarbonero/brasa/internal/currency"
	"github.com/elcarbonero/brasa/internal/customer"
	customerStore "github.com/elcarbonero/brasa/internal/customer/store"
	"github.com/elcarbonero/brasa/internal/database"
	brasaHttp "github.com/elcarbonero/brasa/internal/http"
	auditHandler "github.com/elcarbonero/brasa/internal/http/audit"
	collectionHandler "github.com/elcarbonero/brasa/internal/http/collection"
	customerHandler "github.com/elcarbonero/brasa/internal/http/customer"
	productHandler "github.com/elcarbonero/brasa/internal/http/product"
	saleHandler "github.com/elcarbonero/brasa/internal/http/sale"
	settingsHandler "github.com/elcarbonero/brasa/internal/http/settings"
	"github.com/elcarbonero/brasa/internal/product"
	productStore "github.com/elcarbonero/brasa/internal/product/store"
	"github.com/elcarbonero/brasa/internal/sale"
	saleStore "github.com/elcarbonero/brasa/internal/sale/store"
	"github.com/elcarbonero/brasa/internal/settings"
	settingsStore "github.com/elcarbonero/brasa/internal/settings/store"
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

	rates := currency.NewService(cfg.Currency.APIURL)

	var (
		auditService      = audit.NewService(auditStore.New(db))
		productService    = product.NewService(productStore.New(db), rates)
		customerService   = customer.NewService(customerStore.New(db))
		collectionService = collection.NewService(collectionStore.New(db), rates)
		settingsService   = settings.NewService(settingsStore.New(db))
		saleService       = sale.NewService(saleStore.New(db), productService, rates, collectionService, auditService)
	)

	var (
		salesH       = saleHandler.NewHandler(saleService)
		productsH    = productHandler.NewHandler(productService)
		customersH   = customerHandler.NewHandler(customerService)
		collectionsH = collectionHandler.NewHandler(collectionService)
		settingsH    = settingsHandler.NewHandler(settingsService)
		logsH        = auditHandler.NewHandler(auditService)
	)

	router := brasaHttp.New(salesH, productsH, customersH, collectionsH, settingsH, logsH, brasaHttp.Options{
		JWTSecret:      cfg.Auth.JWTSecret,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
