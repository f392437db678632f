package screener

import (
	"nse-screener/models"

	"github.com/shopspring/decimal"
)

// FilterAll is the wildcard value accepted by the categorical filters
const FilterAll = "All"

// Filters narrows a snapshot to the records matching every predicate.
// Zero values (empty or "All" categories, nil price bounds) match everything.
type Filters struct {
	MarketCap string           // exact market cap bucket, or "All"
	Sector    string           // exact sector, or "All"
	MinPrice  *decimal.Decimal // inclusive lower price bound
	MaxPrice  *decimal.Decimal // inclusive upper price bound
}

// matches reports whether one record passes every predicate. Categories are
// compared by exact string match, so an unknown category matches nothing.
func (f Filters) matches(q models.QuoteRecord) bool {
	if f.MarketCap != "" && f.MarketCap != FilterAll && string(q.MarketCap) != f.MarketCap {
		return false
	}
	if f.Sector != "" && f.Sector != FilterAll && string(q.Sector) != f.Sector {
		return false
	}
	if f.MinPrice != nil && q.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && q.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}

// Filter returns the records passing all predicates, preserving input order.
// The input snapshot is never modified.
func Filter(snapshot models.Snapshot, f Filters) models.Snapshot {
	out := make(models.Snapshot, 0, len(snapshot))
	for _, q := range snapshot {
		if f.matches(q) {
			out = append(out, q)
		}
	}
	return out
}
