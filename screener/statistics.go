package screener

import (
	"nse-screener/models"
)

// Stats summarizes one snapshot, or a filtered view of it
type Stats struct {
	TotalStocks int                 `json:"total_stocks"`
	Gainers     int                 `json:"gainers"`
	Losers      int                 `json:"losers"`
	AvgVolume   float64             `json:"avg_volume"`
	TopGainer   *models.QuoteRecord `json:"top_gainer"`
	TopLoser    *models.QuoteRecord `json:"top_loser"`
}

// Statistics computes summary stats over the given records. The extrema are
// the records with the highest and lowest change percent regardless of sign;
// ties keep the first occurrence. An empty input yields zero counts and no
// extrema.
func Statistics(snapshot models.Snapshot) Stats {
	stats := Stats{TotalStocks: len(snapshot)}
	if len(snapshot) == 0 {
		return stats
	}

	var totalVolume int64
	topGainer := snapshot[0]
	topLoser := snapshot[0]

	for _, q := range snapshot {
		if q.IsGainer() {
			stats.Gainers++
		}
		if q.IsLoser() {
			stats.Losers++
		}
		totalVolume += q.Volume

		if q.ChangePercent.GreaterThan(topGainer.ChangePercent) {
			topGainer = q
		}
		if q.ChangePercent.LessThan(topLoser.ChangePercent) {
			topLoser = q
		}
	}

	stats.AvgVolume = float64(totalVolume) / float64(len(snapshot))
	stats.TopGainer = &topGainer
	stats.TopLoser = &topLoser

	return stats
}
