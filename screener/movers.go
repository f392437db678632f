package screener

import (
	"sort"

	"nse-screener/models"
)

// TopGainers returns the n records with the highest positive change, ranked
// descending. Records that did not gain are excluded; n <= 0 means no cap.
func TopGainers(snapshot models.Snapshot, n int) models.Snapshot {
	gainers := make(models.Snapshot, 0, len(snapshot))
	for _, q := range snapshot {
		if q.IsGainer() {
			gainers = append(gainers, q)
		}
	}

	sort.SliceStable(gainers, func(i, j int) bool {
		return gainers[i].ChangePercent.GreaterThan(gainers[j].ChangePercent)
	})

	if n > 0 && n < len(gainers) {
		return gainers[:n]
	}
	return gainers
}

// TopLosers returns the n records with the lowest negative change, ranked
// worst first. Records that did not lose are excluded; n <= 0 means no cap.
func TopLosers(snapshot models.Snapshot, n int) models.Snapshot {
	losers := make(models.Snapshot, 0, len(snapshot))
	for _, q := range snapshot {
		if q.IsLoser() {
			losers = append(losers, q)
		}
	}

	sort.SliceStable(losers, func(i, j int) bool {
		return losers[i].ChangePercent.LessThan(losers[j].ChangePercent)
	})

	if n > 0 && n < len(losers) {
		return losers[:n]
	}
	return losers
}
