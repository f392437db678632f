package scanner

import (
	"time"

	"nse-screener/observability"

	"github.com/scmhub/calendar"
)

// MarketHours reports whether the tracked exchange is open for trading.
// It wraps the exchange calendar for the configured MIC and falls back to a
// fixed Mon-Fri 09:15-15:30 IST window when no calendar exists for the MIC.
type MarketHours struct {
	cal      *calendar.Calendar
	fallback bool
	loc      *time.Location
}

// NewMarketHours builds a market hours checker for the given ISO 10383 MIC
func NewMarketHours(mic string) *MarketHours {
	cal := calendar.GetCalendar(mic)
	if cal == nil {
		observability.Warn("no exchange calendar for MIC, using fixed NSE session hours", "mic", mic)
		loc, err := time.LoadLocation("Asia/Kolkata")
		if err != nil {
			loc = time.FixedZone("IST", 5*3600+30*60)
		}
		return &MarketHours{fallback: true, loc: loc}
	}
	return &MarketHours{cal: cal, loc: cal.Loc}
}

// IsOpen reports whether the market is open at t
func (m *MarketHours) IsOpen(t time.Time) bool {
	t = t.In(m.loc)

	if m.fallback {
		weekday := t.Weekday()
		if weekday == time.Saturday || weekday == time.Sunday {
			return false
		}
		// NSE regular session runs 09:15 to 15:30 local time
		afterOpen := t.Hour() > 9 || (t.Hour() == 9 && t.Minute() >= 15)
		beforeClose := t.Hour() < 15 || (t.Hour() == 15 && t.Minute() < 30)
		return afterOpen && beforeClose
	}

	return m.cal.IsOpen(t)
}
