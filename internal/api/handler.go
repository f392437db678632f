package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"nse-screener/config"
	"nse-screener/internal/app"
	"nse-screener/models"
	"nse-screener/screener"

	"github.com/shopspring/decimal"
)

// Handler handles HTTP API requests
type Handler struct {
	app *app.App
	cfg *config.Config
}

// NewHandler creates a new Handler
func NewHandler(application *app.App, cfg *config.Config) *Handler {
	return &Handler{app: application, cfg: cfg}
}

// HandleHealth returns the health status of the application
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	scannerStatus := h.app.ScannerStatus()

	status := map[string]interface{}{
		"status": "ok",
		"scanner": map[string]interface{}{
			"running":     scannerStatus.Running,
			"total_scans": scannerStatus.TotalScans,
		},
	}
	if !scannerStatus.Running {
		status["status"] = "degraded"
	}

	// Add circuit breaker status
	cbStatus := h.app.Breakers().Status()
	status["circuit_breakers"] = cbStatus

	// Check if any breakers are open (degraded state)
	for _, cb := range cbStatus {
		if cb.State == "open" {
			status["status"] = "degraded"
			break
		}
	}

	h.jsonResponse(w, status)
}

// HandleLatestQuotes returns the snapshot from the most recent successful
// scan. Before the first scan the snapshot is null and available is false;
// clients poll rather than getting a 404.
func (h *Handler) HandleLatestQuotes(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.app.LatestSnapshot()
	scannerStatus := h.app.ScannerStatus()

	h.jsonResponse(w, map[string]interface{}{
		"available":      ok,
		"count":          len(snapshot),
		"quotes":         snapshot,
		"last_scan_time": scannerStatus.LastScanTime,
		"next_scan_time": scannerStatus.NextScanTime,
	})
}

// HandleFilterQuotes returns the latest snapshot narrowed by the query
// parameters market_cap, sector, min_price and max_price
func (h *Handler) HandleFilterQuotes(w http.ResponseWriter, r *http.Request) {
	filters, err := parseFilters(r)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	snapshot, ok := h.app.LatestSnapshot()
	if !ok {
		h.jsonResponse(w, map[string]interface{}{
			"available": false,
			"count":     0,
			"quotes":    nil,
		})
		return
	}

	filtered := screener.Filter(snapshot, filters)
	h.jsonResponse(w, map[string]interface{}{
		"available": true,
		"count":     len(filtered),
		"quotes":    filtered,
	})
}

// HandleStatistics returns summary statistics over the latest snapshot,
// narrowed by the same filters the filter endpoint accepts
func (h *Handler) HandleStatistics(w http.ResponseWriter, r *http.Request) {
	filters, err := parseFilters(r)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	snapshot, ok := h.app.LatestSnapshot()
	stats := screener.Statistics(screener.Filter(snapshot, filters))

	h.jsonResponse(w, map[string]interface{}{
		"available": ok,
		"stats":     stats,
	})
}

// HandleMovers returns the top gainers and losers of the latest snapshot
func (h *Handler) HandleMovers(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimitParam(r, 5)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	snapshot, ok := h.app.LatestSnapshot()
	h.jsonResponse(w, map[string]interface{}{
		"available": ok,
		"gainers":   screener.TopGainers(snapshot, limit),
		"losers":    screener.TopLosers(snapshot, limit),
	})
}

// HandleScanHistory returns scan summaries oldest first, optionally capped
// to the most recent entries via the limit parameter
func (h *Handler) HandleScanHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimitParam(r, 0)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	history := h.app.ScanHistory(limit)
	h.jsonResponse(w, map[string]interface{}{
		"count":   len(history),
		"history": history,
	})
}

// HandleScannerStatus returns the scanner's running state and scan times
func (h *Handler) HandleScannerStatus(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, h.app.ScannerStatus())
}

// HandleTriggerScan schedules an immediate scan cycle outside the periodic
// timer. Returns 409 when the scanner is not running.
func (h *Handler) HandleTriggerScan(w http.ResponseWriter, r *http.Request) {
	if err := h.app.TriggerScan(); err != nil {
		h.jsonError(w, err.Error(), http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"status": "accepted"})
}

// Helper functions

// parseFilters builds quote filters from query parameters, rejecting unknown
// categories, negative prices and inverted price ranges
func parseFilters(r *http.Request) (screener.Filters, error) {
	q := r.URL.Query()
	var f screener.Filters

	if v := q.Get("market_cap"); v != "" {
		if v != screener.FilterAll && !models.MarketCap(v).IsValid() {
			return f, fmt.Errorf("invalid market_cap %q", v)
		}
		f.MarketCap = v
	}

	if v := q.Get("sector"); v != "" {
		if v != screener.FilterAll && !models.Sector(v).IsValid() {
			return f, fmt.Errorf("invalid sector %q", v)
		}
		f.Sector = v
	}

	if v := q.Get("min_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil || d.IsNegative() {
			return f, fmt.Errorf("min_price must be a non-negative number, got %q", v)
		}
		f.MinPrice = &d
	}

	if v := q.Get("max_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil || d.IsNegative() {
			return f, fmt.Errorf("max_price must be a non-negative number, got %q", v)
		}
		f.MaxPrice = &d
	}

	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return f, fmt.Errorf("min_price must not exceed max_price")
	}

	return f, nil
}

// parseLimitParam parses the optional limit query parameter
func parseLimitParam(r *http.Request, defaultLimit int) (int, error) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return defaultLimit, nil
	}

	l, err := strconv.Atoi(limitStr)
	if err != nil || l <= 0 {
		return 0, fmt.Errorf("limit must be a positive integer, got %q", limitStr)
	}
	return l, nil
}

func (h *Handler) jsonResponse(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
