package services

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"nse-screener/models"

	"github.com/shopspring/decimal"
)

// errFeedUnavailable is the injected failure returned when the configured
// failure rate fires.
var errFeedUnavailable = errors.New("quote feed unavailable")

// SimulatedQuoteSource generates realistic quotes for a fixed universe of NSE
// stocks. It stands in for a live exchange feed: prices, moves and volumes are
// drawn fresh on every fetch, so consecutive scans see different market data.
type SimulatedQuoteSource struct {
	universe    []UniverseEntry
	failureRate float64
}

// NewSimulatedQuoteSource creates a source over the given universe. A nil or
// empty universe falls back to DefaultUniverse. failureRate is the probability
// in [0, 1] that a fetch fails, used to exercise error handling downstream.
func NewSimulatedQuoteSource(universe []UniverseEntry, failureRate float64) *SimulatedQuoteSource {
	if len(universe) == 0 {
		universe = DefaultUniverse()
	}
	return &SimulatedQuoteSource{
		universe:    universe,
		failureRate: failureRate,
	}
}

// Fetch returns one quote per universe entry, all stamped with the same scan
// time. Calls run through the quote_source circuit breaker so a failing feed
// is backed off instead of hammered.
func (s *SimulatedQuoteSource) Fetch(ctx context.Context) ([]models.QuoteRecord, error) {
	return WithCircuitBreaker(ctx, BreakerQuoteSource, func() ([]models.QuoteRecord, error) {
		return s.generate()
	})
}

func (s *SimulatedQuoteSource) generate() ([]models.QuoteRecord, error) {
	if s.failureRate > 0 && rand.Float64() < s.failureRate {
		return nil, errFeedUnavailable
	}

	scanTime := time.Now()
	records := make([]models.QuoteRecord, 0, len(s.universe))
	for _, entry := range s.universe {
		records = append(records, models.QuoteRecord{
			Symbol:        entry.Symbol,
			Name:          entry.Name,
			Price:         decimal.NewFromFloat(100 + rand.Float64()*2900).Round(2),
			ChangePercent: decimal.NewFromFloat(-5 + rand.Float64()*10).Round(2),
			Volume:        100000 + rand.Int63n(9900001),
			MarketCap:     entry.MarketCap,
			Sector:        entry.Sector,
			ScanTime:      scanTime,
		})
	}

	return records, nil
}

// Universe returns the entries this source generates quotes for
func (s *SimulatedQuoteSource) Universe() []UniverseEntry {
	return s.universe
}
