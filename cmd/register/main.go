package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lanepos/register/config"
	httpDelivery "github.com/lanepos/register/internal/delivery/http"
	"github.com/lanepos/register/internal/domain"
	"github.com/lanepos/register/internal/infrastructure/cache"
	"github.com/lanepos/register/internal/infrastructure/catalog"
	"github.com/lanepos/register/internal/infrastructure/snapshot"
	"github.com/lanepos/register/internal/search"
	"github.com/lanepos/register/internal/ui"
	"github.com/lanepos/register/internal/usecase"
)

func main() {
	serve := flag.Bool("serve", false, "run the lane HTTP API instead of the interactive register")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Lane Register v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Backend: %s", cfg.Backend.BaseURL)
	log.Printf("Snapshot cache TTL: %s", cfg.Cache.TTL)

	// Initialize infrastructure dependencies
	snapshotCache := cache.NewSnapshotCache(cfg.Cache.TTL)

	backendClient := catalog.NewClient(cfg.Backend.BaseURL, cfg.Backend.Token, cfg.Backend.Timeout)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		backendClient.SetDebug(true)
		log.Printf("Backend client debug mode enabled")
	}

	store, err := snapshot.New(cfg.Snapshot.Path)
	if err != nil {
		log.Printf("WARNING: local snapshot store unavailable (%v), offline fallback disabled", err)
		store = nil
	} else {
		defer store.Close()
		log.Printf("Local snapshot store: %s", cfg.Snapshot.Path)
	}

	// Initialize usecase layer
	catalogService := usecase.NewCatalogService(
		backendClient,
		backendClient,
		storeOrNil(store),
		snapshotCache,
		usecase.CatalogServiceConfig{
			Search: search.Config{
				NameExactOffset:     cfg.Search.NameExactOffset,
				CategoryExactOffset: cfg.Search.CategoryExactOffset,
				BarcodeExactOffset:  cfg.Search.BarcodeExactOffset,
				NameFuzzyOffset:     cfg.Search.NameFuzzyOffset,
				CategoryFuzzyOffset: cfg.Search.CategoryFuzzyOffset,
				FuzzyFloor:          cfg.Search.FuzzyFloor,
				HighlightFloor:      cfg.Search.HighlightFloor,
				MinFuzzyQueryLen:    cfg.Search.MinFuzzyQueryLen,
				MaxResults:          cfg.Search.MaxResults,
				EnableDebugLogging:  cfg.Search.EnableDebugLogging,
			},
			EnableCartAdd:      cfg.UI.EnableCartAdd,
			EnableDebugLogging: cfg.Search.EnableDebugLogging,
		},
	)

	log.Printf("Search: max_results=%d, fuzzy_floor=%.0f, debounce=%s",
		cfg.Search.MaxResults,
		cfg.Search.FuzzyFloor,
		cfg.UI.Debounce)

	if *serve {
		runServer(cfg, catalogService)
		return
	}

	runRegister(cfg, catalogService)
}

// runServer runs the lane HTTP API for sibling lane devices
func runServer(cfg *config.Config, service *usecase.CatalogService) {
	handler := httpDelivery.NewHandler(service)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Lane API listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// runRegister runs the interactive register on the lane terminal
func runRegister(cfg *config.Config, service *usecase.CatalogService) {
	model := ui.New(service, service, cfg.UI.Debounce)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Register terminated: %v", err)
	}
}

// storeOrNil keeps a nil *snapshot.Store from becoming a non-nil interface
func storeOrNil(s *snapshot.Store) domain.CatalogStore {
	if s == nil {
		return nil
	}
	return s
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
