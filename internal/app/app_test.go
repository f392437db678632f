package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"nse-screener/config"
	"nse-screener/models"
	"nse-screener/services"
)

// testConfig returns a test configuration
func testConfig() *config.Config {
	return config.NewTestConfig()
}

// MockScanner is a configurable test double for ScannerInterface
type MockScanner struct {
	StartFunc   func(ctx context.Context) error
	StopFunc    func(ctx context.Context) error
	TriggerFunc func() error
	StatusFunc  func() models.ScannerStatus
}

func (m *MockScanner) Start(ctx context.Context) error {
	if m.StartFunc != nil {
		return m.StartFunc(ctx)
	}
	return nil
}

func (m *MockScanner) Stop(ctx context.Context) error {
	if m.StopFunc != nil {
		return m.StopFunc(ctx)
	}
	return nil
}

func (m *MockScanner) TriggerManualScan() error {
	if m.TriggerFunc != nil {
		return m.TriggerFunc()
	}
	return nil
}

func (m *MockScanner) Status() models.ScannerStatus {
	if m.StatusFunc != nil {
		return m.StatusFunc()
	}
	return models.ScannerStatus{}
}

// Compile-time interface verification
var _ ScannerInterface = (*MockScanner)(nil)

func TestNew_DefaultUniverse(t *testing.T) {
	a, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	source, ok := a.Source().(*services.SimulatedQuoteSource)
	if !ok {
		t.Fatalf("expected simulated quote source, got %T", a.Source())
	}
	if len(source.Universe()) != 20 {
		t.Errorf("expected built-in universe of 20, got %d", len(source.Universe()))
	}
	if a.Store() == nil {
		t.Error("expected store to be wired")
	}
}

func TestNew_UniverseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "universe.yaml")
	data := `- symbol: IRCTC
  name: Indian Railway Catering and Tourism Corporation Ltd
  sector: Auto
  market_cap: Mid Cap
- symbol: PAYTM
  name: One97 Communications Ltd
  sector: IT
  market_cap: Mid Cap
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("writing universe file: %v", err)
	}

	cfg := testConfig()
	cfg.Source.UniverseFile = path

	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	source := a.Source().(*services.SimulatedQuoteSource)
	universe := source.Universe()
	if len(universe) != 2 {
		t.Fatalf("expected 2 universe entries, got %d", len(universe))
	}
	if universe[0].Symbol != "IRCTC" || universe[1].Symbol != "PAYTM" {
		t.Errorf("unexpected universe symbols: %s, %s", universe[0].Symbol, universe[1].Symbol)
	}
}

func TestNew_UniverseFileMissing(t *testing.T) {
	cfg := testConfig()
	cfg.Source.UniverseFile = filepath.Join(t.TempDir(), "nope.yaml")

	if _, err := New(cfg); err == nil {
		t.Error("expected error for missing universe file")
	}
}

func TestApp_StartupShutdown(t *testing.T) {
	ctx := context.Background()
	a, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := a.Startup(ctx); err != nil {
		t.Fatalf("Startup() error = %v", err)
	}

	// The first scan cycle completes before Startup returns
	snapshot, ok := a.LatestSnapshot()
	if !ok {
		t.Fatal("expected a snapshot after startup")
	}
	if len(snapshot) != 20 {
		t.Errorf("expected 20 quotes, got %d", len(snapshot))
	}

	status := a.ScannerStatus()
	if !status.Running {
		t.Error("expected scanner to be running")
	}
	if status.TotalScans != 1 {
		t.Errorf("expected 1 total scan, got %d", status.TotalScans)
	}

	a.Shutdown(ctx)

	if a.ScannerStatus().Running {
		t.Error("expected scanner to be stopped after shutdown")
	}
}

func TestApp_Startup_NotInitialized(t *testing.T) {
	a := &App{}
	if err := a.Startup(context.Background()); err == nil {
		t.Error("expected error when scanner is nil")
	}
}

func TestApp_Shutdown_NotInitialized(t *testing.T) {
	a := &App{}
	a.Shutdown(context.Background()) // Should not panic
}

func TestApp_Shutdown_StopError(t *testing.T) {
	a, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	a.SetScanner(&MockScanner{
		StopFunc: func(ctx context.Context) error {
			return errors.New("wait deadline exceeded")
		},
	})

	a.Shutdown(context.Background()) // Error is logged, not returned
}

func TestApp_TriggerScan(t *testing.T) {
	t.Run("delegates to scanner", func(t *testing.T) {
		a, err := New(testConfig())
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		triggered := false
		a.SetScanner(&MockScanner{
			TriggerFunc: func() error {
				triggered = true
				return nil
			},
		})

		if err := a.TriggerScan(); err != nil {
			t.Fatalf("TriggerScan() error = %v", err)
		}
		if !triggered {
			t.Error("expected trigger to reach the scanner")
		}
	})

	t.Run("scanner not initialized", func(t *testing.T) {
		a := &App{}
		if err := a.TriggerScan(); err == nil {
			t.Error("expected error when scanner is nil")
		}
	})
}

func TestApp_LatestSnapshot_Empty(t *testing.T) {
	a, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if snapshot, ok := a.LatestSnapshot(); ok || snapshot != nil {
		t.Errorf("expected no snapshot before the first scan, got ok=%v len=%d", ok, len(snapshot))
	}
}

func TestApp_ScanHistory(t *testing.T) {
	a, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	base := time.Now()
	for _, msg := range []string{"first", "second", "third"} {
		a.Store().AppendHistory(models.NewErrorSummary(base, errors.New(msg)))
	}

	t.Run("no limit returns all", func(t *testing.T) {
		if got := a.ScanHistory(0); len(got) != 3 {
			t.Errorf("expected 3 entries, got %d", len(got))
		}
	})

	t.Run("limit keeps most recent", func(t *testing.T) {
		got := a.ScanHistory(2)
		if len(got) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(got))
		}
		if got[0].Error != "second" || got[1].Error != "third" {
			t.Errorf("expected the two newest entries, got %q, %q", got[0].Error, got[1].Error)
		}
	})

	t.Run("limit beyond length returns all", func(t *testing.T) {
		if got := a.ScanHistory(10); len(got) != 3 {
			t.Errorf("expected 3 entries, got %d", len(got))
		}
	})
}

func TestApp_ScannerStatus(t *testing.T) {
	a, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	last := time.Now()
	a.SetScanner(&MockScanner{
		StatusFunc: func() models.ScannerStatus {
			return models.ScannerStatus{Running: true, TotalScans: 7, LastScanTime: &last}
		},
	})

	status := a.ScannerStatus()
	if !status.Running || status.TotalScans != 7 {
		t.Errorf("unexpected status: %+v", status)
	}

	t.Run("scanner not initialized", func(t *testing.T) {
		empty := (&App{}).ScannerStatus()
		if empty.Running || empty.TotalScans != 0 {
			t.Errorf("expected zero status, got %+v", empty)
		}
	})
}
