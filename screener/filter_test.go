package screener

import (
	"testing"

	"nse-screener/models"

	"github.com/shopspring/decimal"
)

func pricePtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func quote(symbol string, sector models.Sector, marketCap models.MarketCap, price, change float64, volume int64) models.QuoteRecord {
	return models.QuoteRecord{
		Symbol:        symbol,
		Name:          symbol,
		Price:         decimal.NewFromFloat(price),
		ChangePercent: decimal.NewFromFloat(change),
		Volume:        volume,
		MarketCap:     marketCap,
		Sector:        sector,
	}
}

func sampleSnapshot() models.Snapshot {
	return models.Snapshot{
		quote("HDFCBANK", models.SectorBanking, models.MarketCapLarge, 1650.00, 1.5, 2000000),
		quote("INFY", models.SectorIT, models.MarketCapLarge, 1420.50, -2.1, 1500000),
		quote("ZOMATO", models.SectorIT, models.MarketCapMid, 95.00, 3.2, 5000000),
		quote("TATAMOTORS", models.SectorAuto, models.MarketCapLarge, 620.75, -0.5, 3000000),
		quote("SUZLON", models.SectorEnergy, models.MarketCapSmall, 42.30, 0, 8000000),
	}
}

func symbols(s models.Snapshot) []string {
	out := make([]string, len(s))
	for i, q := range s {
		out[i] = q.Symbol
	}
	return out
}

func assertSymbols(t *testing.T, got models.Snapshot, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d records %v, got %d %v", len(want), want, len(got), symbols(got))
	}
	for i, symbol := range want {
		if got[i].Symbol != symbol {
			t.Errorf("position %d: expected %s, got %s", i, symbol, got[i].Symbol)
		}
	}
}

func TestFilter_NoFiltersReturnsAll(t *testing.T) {
	snapshot := sampleSnapshot()
	got := Filter(snapshot, Filters{})
	assertSymbols(t, got, "HDFCBANK", "INFY", "ZOMATO", "TATAMOTORS", "SUZLON")
}

func TestFilter_AllWildcards(t *testing.T) {
	snapshot := sampleSnapshot()
	got := Filter(snapshot, Filters{MarketCap: FilterAll, Sector: FilterAll})
	assertSymbols(t, got, "HDFCBANK", "INFY", "ZOMATO", "TATAMOTORS", "SUZLON")
}

func TestFilter_ByMarketCap(t *testing.T) {
	got := Filter(sampleSnapshot(), Filters{MarketCap: "Large Cap"})
	assertSymbols(t, got, "HDFCBANK", "INFY", "TATAMOTORS")
}

func TestFilter_BySector(t *testing.T) {
	got := Filter(sampleSnapshot(), Filters{Sector: "IT"})
	assertSymbols(t, got, "INFY", "ZOMATO")
}

func TestFilter_ByPriceRange(t *testing.T) {
	got := Filter(sampleSnapshot(), Filters{MinPrice: pricePtr(100), MaxPrice: pricePtr(2000)})
	assertSymbols(t, got, "HDFCBANK", "INFY", "TATAMOTORS")
}

func TestFilter_PriceBoundsInclusive(t *testing.T) {
	got := Filter(sampleSnapshot(), Filters{MinPrice: pricePtr(95), MaxPrice: pricePtr(95)})
	assertSymbols(t, got, "ZOMATO")
}

func TestFilter_MinPriceOnly(t *testing.T) {
	got := Filter(sampleSnapshot(), Filters{MinPrice: pricePtr(1000)})
	assertSymbols(t, got, "HDFCBANK", "INFY")
}

func TestFilter_MaxPriceOnly(t *testing.T) {
	got := Filter(sampleSnapshot(), Filters{MaxPrice: pricePtr(100)})
	assertSymbols(t, got, "ZOMATO", "SUZLON")
}

func TestFilter_Combined(t *testing.T) {
	got := Filter(sampleSnapshot(), Filters{MarketCap: "Large Cap", Sector: "IT"})
	assertSymbols(t, got, "INFY")

	got = Filter(sampleSnapshot(), Filters{Sector: "IT", MaxPrice: pricePtr(100)})
	assertSymbols(t, got, "ZOMATO")
}

func TestFilter_UnknownCategoryMatchesNothing(t *testing.T) {
	if got := Filter(sampleSnapshot(), Filters{Sector: "Telecom"}); len(got) != 0 {
		t.Errorf("expected no matches for unknown sector, got %v", symbols(got))
	}
	if got := Filter(sampleSnapshot(), Filters{MarketCap: "Mega Cap"}); len(got) != 0 {
		t.Errorf("expected no matches for unknown market cap, got %v", symbols(got))
	}
}

func TestFilter_InvertedPriceRangeMatchesNothing(t *testing.T) {
	got := Filter(sampleSnapshot(), Filters{MinPrice: pricePtr(2000), MaxPrice: pricePtr(100)})
	if len(got) != 0 {
		t.Errorf("expected no matches for inverted range, got %v", symbols(got))
	}
}

func TestFilter_EmptySnapshot(t *testing.T) {
	got := Filter(nil, Filters{Sector: "IT"})
	if len(got) != 0 {
		t.Errorf("expected empty result, got %d records", len(got))
	}
}

func TestFilter_CheapStockOnly(t *testing.T) {
	snapshot := models.Snapshot{
		quote("SUZLON", models.SectorEnergy, models.MarketCapSmall, 50, 2, 1000000),
		quote("MRF", models.SectorAuto, models.MarketCapLarge, 5000, -1, 200000),
	}

	got := Filter(snapshot, Filters{MinPrice: pricePtr(0), MaxPrice: pricePtr(100)})
	assertSymbols(t, got, "SUZLON")
}

func TestFilter_InputNotModified(t *testing.T) {
	snapshot := sampleSnapshot()
	_ = Filter(snapshot, Filters{Sector: "IT"})
	assertSymbols(t, snapshot, "HDFCBANK", "INFY", "ZOMATO", "TATAMOTORS", "SUZLON")
}
