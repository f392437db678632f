package services

import (
	"context"

	"nse-screener/models"
)

// QuoteSourceInterface defines the interface for fetching quotes for the scan universe
type QuoteSourceInterface interface {
	// Fetch returns one quote per universe entry, all stamped with the same
	// scan time. A nil slice with a nil error means the feed had nothing.
	Fetch(ctx context.Context) ([]models.QuoteRecord, error)
}

// Compile-time interface verification
var _ QuoteSourceInterface = (*SimulatedQuoteSource)(nil)
