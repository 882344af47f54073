package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"outillage/internal/alerts"
	"outillage/internal/api"
	"outillage/internal/catalog"
	"outillage/internal/config"
	"outillage/internal/database"
	"outillage/internal/ledger"
	"outillage/internal/metrics"
	"outillage/internal/monitoring"

	"github.com/gin-gonic/gin"
)

var configFile = flag.String("config", "configs/config.yaml", "Path to configuration file")

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	store, err := database.Open(cfg.DBPath, cfg.DBLogMode)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Build the catalog: seed the database from the YAML catalog on first
	// run, then load whatever the database holds.
	cat, err := initializeCatalog(cfg, store)
	if err != nil {
		log.Fatalf("Failed to initialize catalog: %v", err)
	}

	// Initialize core components
	led := ledger.New(cat, store)
	aggregator := alerts.New(store)
	monitor := monitoring.NewMonitor()
	monitor.RecordMetric("db_path", cfg.DBPath)

	collector := metrics.NewCollector()
	for _, item := range cat.All() {
		collector.SetStock(item.Mabic, item.Quantity)
	}
	collector.UpdateAlerts(aggregator.Refresh(cat.All()))

	// Initialize API server
	server := api.NewServer(cat, led, aggregator, monitor, collector)

	// Start metrics server
	go startMetricsServer(cfg.MetricsPort, collector)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.APIPort),
		Handler: server.Router(),
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}()

	// Start server
	log.Printf("Starting API server on port %d", cfg.APIPort)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

func initializeCatalog(cfg *config.Config, store *database.Store) (*catalog.Catalog, error) {
	seed, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	if err := store.SeedItems(seed.All()); err != nil {
		return nil, err
	}

	items, err := store.LoadItems()
	if err != nil {
		return nil, err
	}
	return catalog.New(items)
}

func startMetricsServer(port int, collector *metrics.Collector) {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(collector.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
