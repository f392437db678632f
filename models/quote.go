package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketCap classifies a stock by market capitalization bucket
type MarketCap string

const (
	MarketCapLarge MarketCap = "Large Cap"
	MarketCapMid   MarketCap = "Mid Cap"
	MarketCapSmall MarketCap = "Small Cap"
)

// IsValid returns true if the market cap is a known bucket
func (m MarketCap) IsValid() bool {
	switch m {
	case MarketCapLarge, MarketCapMid, MarketCapSmall:
		return true
	}
	return false
}

// Sector classifies a stock by industry sector
type Sector string

const (
	SectorBanking Sector = "Banking"
	SectorIT      Sector = "IT"
	SectorPharma  Sector = "Pharma"
	SectorAuto    Sector = "Auto"
	SectorFMCG    Sector = "FMCG"
	SectorEnergy  Sector = "Energy"
)

// IsValid returns true if the sector is a known classification
func (s Sector) IsValid() bool {
	switch s {
	case SectorBanking, SectorIT, SectorPharma, SectorAuto, SectorFMCG, SectorEnergy:
		return true
	}
	return false
}

// QuoteRecord represents one stock quote within a snapshot
type QuoteRecord struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	Volume        int64           `json:"volume"`
	MarketCap     MarketCap       `json:"market_cap"`
	Sector        Sector          `json:"sector"`
	ScanTime      time.Time       `json:"scan_time"`
}

// IsGainer returns true if the quote closed up on the day
func (q QuoteRecord) IsGainer() bool {
	return q.ChangePercent.IsPositive()
}

// IsLoser returns true if the quote closed down on the day
func (q QuoteRecord) IsLoser() bool {
	return q.ChangePercent.IsNegative()
}

// Snapshot is the ordered set of quotes produced by one scan cycle.
// It is replaced wholesale by the next scan, never merged incrementally.
type Snapshot []QuoteRecord

// Copy returns an independent copy of the snapshot
func (s Snapshot) Copy() Snapshot {
	if s == nil {
		return nil
	}
	out := make(Snapshot, len(s))
	copy(out, s)
	return out
}

// CountGainers returns the number of records with positive change
func (s Snapshot) CountGainers() int {
	n := 0
	for _, q := range s {
		if q.IsGainer() {
			n++
		}
	}
	return n
}

// CountLosers returns the number of records with negative change
func (s Snapshot) CountLosers() int {
	n := 0
	for _, q := range s {
		if q.IsLoser() {
			n++
		}
	}
	return n
}
