package app

import (
	"context"
	"fmt"

	"nse-screener/config"
	"nse-screener/models"
	"nse-screener/observability"
	"nse-screener/scanner"
	"nse-screener/services"
	"nse-screener/store"
)

// ScannerInterface defines the scanner operations needed by App
type ScannerInterface interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	TriggerManualScan() error
	Status() models.ScannerStatus
}

// App struct holds application dependencies using interfaces for testability
type App struct {
	cfg      *config.Config
	store    *store.Store
	source   services.QuoteSourceInterface
	scanner  ScannerInterface
	breakers *services.CircuitBreakerRegistry
}

// New builds the application graph from configuration: the scan universe,
// the simulated quote source, the snapshot store and the scanner on top.
func New(cfg *config.Config) (*App, error) {
	universe := services.DefaultUniverse()
	if cfg.HasUniverseFile() {
		loaded, err := services.LoadUniverse(cfg.Source.UniverseFile)
		if err != nil {
			return nil, fmt.Errorf("loading universe: %w", err)
		}
		universe = loaded
	}

	source := services.NewSimulatedQuoteSource(universe, cfg.Source.FailureRate)
	st := store.New(cfg.ScanInterval(), cfg.Scanner.MaxHistoryItems)
	sc := scanner.New(scanner.Config{
		Interval:        cfg.ScanInterval(),
		MarketHoursOnly: cfg.Scanner.MarketHoursOnly,
		MarketMIC:       cfg.Scanner.MarketMIC,
	}, st, source)

	return &App{
		cfg:      cfg,
		store:    st,
		source:   source,
		scanner:  sc,
		breakers: services.GetGlobalRegistry(),
	}, nil
}

// Startup starts the background scanner. The first scan cycle runs before
// this returns, so a healthy startup already has a snapshot.
func (a *App) Startup(ctx context.Context) error {
	if a.scanner == nil {
		return fmt.Errorf("scanner not initialized")
	}
	return a.scanner.Start(ctx)
}

// Shutdown stops the scanner, waiting for an in-flight cycle within the
// context budget
func (a *App) Shutdown(ctx context.Context) {
	if a.scanner == nil {
		return
	}
	if err := a.scanner.Stop(ctx); err != nil {
		observability.Warn("scanner shutdown", "error", err)
	}
}

// Store returns the snapshot store for API handlers
func (a *App) Store() *store.Store {
	return a.store
}

// Source returns the quote source the scanner reads from
func (a *App) Source() services.QuoteSourceInterface {
	return a.source
}

// Breakers returns the circuit breaker registry for health reporting
func (a *App) Breakers() *services.CircuitBreakerRegistry {
	return a.breakers
}

// SetScanner replaces the scanner (for testing)
func (a *App) SetScanner(sc ScannerInterface) {
	a.scanner = sc
}

// LatestSnapshot returns the most recent snapshot; ok is false until the
// first successful scan
func (a *App) LatestSnapshot() (models.Snapshot, bool) {
	if a.store == nil {
		return nil, false
	}
	return a.store.Latest()
}

// ScanHistory returns scan summaries oldest first. A positive limit keeps
// only the most recent entries.
func (a *App) ScanHistory(limit int) []models.ScanSummary {
	if a.store == nil {
		return nil
	}
	history := a.store.History()
	if limit > 0 && limit < len(history) {
		history = history[len(history)-limit:]
	}
	return history
}

// TriggerScan schedules an immediate scan cycle without resetting the timer
func (a *App) TriggerScan() error {
	if a.scanner == nil {
		return fmt.Errorf("scanner not initialized")
	}
	return a.scanner.TriggerManualScan()
}

// ScannerStatus reports the scanner's running state and scan counters
func (a *App) ScannerStatus() models.ScannerStatus {
	if a.scanner == nil {
		return models.ScannerStatus{}
	}
	return a.scanner.Status()
}
