package scanner

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"nse-screener/models"
	"nse-screener/observability"
	"nse-screener/services"
	"nse-screener/store"
)

// Scan trigger labels used in logs and metrics
const (
	TriggerStartup = "startup"
	TriggerTimer   = "timer"
	TriggerManual  = "manual"
)

// marketSchedule reports whether the tracked exchange is open at a given time
type marketSchedule interface {
	IsOpen(t time.Time) bool
}

// Config holds scanner configuration
type Config struct {
	Interval        time.Duration // time between scheduled scan cycles
	ScanTimeout     time.Duration // fetch budget for one scan cycle
	MarketHoursOnly bool          // skip scheduled cycles while the market is closed
	MarketMIC       string        // ISO 10383 MIC for the market hours calendar
}

// DefaultConfig returns sensible scanner defaults
func DefaultConfig() Config {
	return Config{
		Interval:    15 * time.Minute,
		ScanTimeout: 30 * time.Second,
	}
}

// Scanner owns the recurring scan timer. Each cycle fetches quotes from the
// source, replaces the snapshot held by the store and appends a summary to
// the scan history. A manual trigger runs a cycle out of band without
// resetting the timer; concurrent cycles are not serialized, the store's
// atomic replacement is what keeps readers consistent and the last write
// wins.
type Scanner struct {
	interval    time.Duration
	scanTimeout time.Duration
	store       *store.Store
	source      services.QuoteSourceInterface
	hours       marketSchedule

	mu      sync.Mutex
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	totalScans atomic.Int64
}

// New creates a scanner over the given store and quote source
func New(cfg Config, st *store.Store, source services.QuoteSourceInterface) *Scanner {
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Minute
	}
	if cfg.ScanTimeout <= 0 {
		cfg.ScanTimeout = 30 * time.Second
	}

	var hours marketSchedule
	if cfg.MarketHoursOnly {
		hours = NewMarketHours(cfg.MarketMIC)
	}

	return &Scanner{
		interval:    cfg.Interval,
		scanTimeout: cfg.ScanTimeout,
		store:       st,
		source:      source,
		hours:       hours,
	}
}

// Start transitions the scanner to running, performs the first scan cycle
// synchronously and then begins the periodic timer. The passed context bounds
// the scanner's lifetime: canceling it halts future cycles.
func (s *Scanner) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("scanner already running")
	}
	s.running = true
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	s.mu.Unlock()

	observability.Info("scanner starting",
		"interval", s.interval,
		"market_hours_only", s.hours != nil)
	observability.GetMetrics().SetScannerRunning(true)

	// First cycle runs before the timer begins
	s.scheduledScan(TriggerStartup)

	go s.run()

	return nil
}

// run is the periodic scan loop
func (s *Scanner) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.scheduledScan(TriggerTimer)
		}
	}
}

// scheduledScan applies the market hours gate that manual triggers bypass
func (s *Scanner) scheduledScan(trigger string) {
	if s.hours != nil && !s.hours.IsOpen(time.Now()) {
		observability.Debug("market closed, skipping scheduled scan", "trigger", trigger)
		observability.GetMetrics().RecordScanSkipped("market_closed")
		return
	}
	s.scan(trigger)
}

// scan executes one fetch-and-store cycle. A failed fetch appends an error
// summary and changes nothing else; an empty fetch leaves both the snapshot
// and the history untouched. Cycles already in flight when the scanner stops
// still complete and their results are kept.
func (s *Scanner) scan(trigger string) {
	metrics := observability.GetMetrics()
	timer := metrics.NewTimer()
	scanTime := time.Now()

	observability.Info("scan started", "trigger", trigger)

	ctx, cancel := context.WithTimeout(context.Background(), s.scanTimeout)
	defer cancel()

	records, err := s.source.Fetch(ctx)
	if err != nil {
		observability.Error("scan failed", "trigger", trigger, "error", err)
		s.store.AppendHistory(models.NewErrorSummary(scanTime, err))
		metrics.RecordScan(trigger, "error", timer.Duration())
		return
	}

	if len(records) == 0 {
		observability.Warn("scan returned no quotes, keeping previous snapshot", "trigger", trigger)
		metrics.RecordScanSkipped("empty_fetch")
		return
	}

	snapshot := models.Snapshot(records)
	s.store.Store(snapshot, scanTime)
	s.totalScans.Add(1)
	s.store.AppendHistory(models.NewSuccessSummary(scanTime, snapshot))

	metrics.RecordScan(trigger, "success", timer.Duration())
	metrics.SetSnapshotSize(len(snapshot))

	observability.Info("scan completed",
		"trigger", trigger,
		"stocks", len(snapshot),
		"gainers", snapshot.CountGainers(),
		"losers", snapshot.CountLosers(),
		"duration", timer.Duration())
}

// TriggerManualScan runs one scan cycle in the background, outside the
// periodic schedule. The timer phase is unaffected and the market hours gate
// does not apply. Returns an error if the scanner is not running.
func (s *Scanner) TriggerManualScan() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return fmt.Errorf("scanner is not running")
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.scan(TriggerManual)
	}()

	return nil
}

// Stop halts future scan cycles and waits for any in-flight cycle to finish.
// The passed context bounds the wait. Stopping a stopped scanner is a no-op.
func (s *Scanner) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.cancel()
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		observability.Info("scanner stopped", "total_scans", s.totalScans.Load())
		observability.GetMetrics().SetScannerRunning(false)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status returns a point-in-time view of the scanner. The timestamps come
// from the store, so a cycle landing between two reads shows up there first.
func (s *Scanner) Status() models.ScannerStatus {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()

	return models.ScannerStatus{
		Running:      running,
		TotalScans:   s.totalScans.Load(),
		LastScanTime: s.store.LastScanTime(),
		NextScanTime: s.store.NextScanTime(),
	}
}
