package services

import (
	"fmt"
	"os"

	"nse-screener/models"

	"gopkg.in/yaml.v3"
)

// UniverseEntry describes one stock the scanner covers
type UniverseEntry struct {
	Symbol    string           `yaml:"symbol" json:"symbol"`
	Name      string           `yaml:"name" json:"name"`
	Sector    models.Sector    `yaml:"sector" json:"sector"`
	MarketCap models.MarketCap `yaml:"market_cap" json:"market_cap"`
}

// Validate checks that the entry is complete and uses known classifications
func (e UniverseEntry) Validate() error {
	if e.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if e.Name == "" {
		return fmt.Errorf("name is required for %s", e.Symbol)
	}
	if !e.Sector.IsValid() {
		return fmt.Errorf("invalid sector %q for %s", e.Sector, e.Symbol)
	}
	if !e.MarketCap.IsValid() {
		return fmt.Errorf("invalid market cap %q for %s", e.MarketCap, e.Symbol)
	}
	return nil
}

// DefaultUniverse returns the built-in NSE large cap universe, used when no
// universe file is configured.
func DefaultUniverse() []UniverseEntry {
	return []UniverseEntry{
		{Symbol: "RELIANCE", Name: "Reliance Industries Ltd", Sector: models.SectorEnergy, MarketCap: models.MarketCapLarge},
		{Symbol: "TCS", Name: "Tata Consultancy Services", Sector: models.SectorIT, MarketCap: models.MarketCapLarge},
		{Symbol: "HDFCBANK", Name: "HDFC Bank Ltd", Sector: models.SectorBanking, MarketCap: models.MarketCapLarge},
		{Symbol: "INFY", Name: "Infosys Ltd", Sector: models.SectorIT, MarketCap: models.MarketCapLarge},
		{Symbol: "HINDUNILVR", Name: "Hindustan Unilever Ltd", Sector: models.SectorFMCG, MarketCap: models.MarketCapLarge},
		{Symbol: "ICICIBANK", Name: "ICICI Bank Ltd", Sector: models.SectorBanking, MarketCap: models.MarketCapLarge},
		{Symbol: "KOTAKBANK", Name: "Kotak Mahindra Bank", Sector: models.SectorBanking, MarketCap: models.MarketCapLarge},
		{Symbol: "BAJFINANCE", Name: "Bajaj Finance Ltd", Sector: models.SectorBanking, MarketCap: models.MarketCapLarge},
		{Symbol: "MARUTI", Name: "Maruti Suzuki India Ltd", Sector: models.SectorAuto, MarketCap: models.MarketCapLarge},
		{Symbol: "SUNPHARMA", Name: "Sun Pharmaceutical Industries", Sector: models.SectorPharma, MarketCap: models.MarketCapLarge},
		{Symbol: "WIPRO", Name: "Wipro Ltd", Sector: models.SectorIT, MarketCap: models.MarketCapLarge},
		{Symbol: "TECHM", Name: "Tech Mahindra Ltd", Sector: models.SectorIT, MarketCap: models.MarketCapLarge},
		{Symbol: "HCLTECH", Name: "HCL Technologies Ltd", Sector: models.SectorIT, MarketCap: models.MarketCapLarge},
		{Symbol: "DRREDDY", Name: "Dr Reddys Laboratories", Sector: models.SectorPharma, MarketCap: models.MarketCapLarge},
		{Symbol: "CIPLA", Name: "Cipla Ltd", Sector: models.SectorPharma, MarketCap: models.MarketCapLarge},
		{Symbol: "TATAMOTORS", Name: "Tata Motors Ltd", Sector: models.SectorAuto, MarketCap: models.MarketCapLarge},
		{Symbol: "BAJAJFINSV", Name: "Bajaj Finserv Ltd", Sector: models.SectorBanking, MarketCap: models.MarketCapLarge},
		{Symbol: "NESTLEIND", Name: "Nestle India Ltd", Sector: models.SectorFMCG, MarketCap: models.MarketCapLarge},
		{Symbol: "TITAN", Name: "Titan Company Ltd", Sector: models.SectorFMCG, MarketCap: models.MarketCapLarge},
		{Symbol: "ASIANPAINT", Name: "Asian Paints Ltd", Sector: models.SectorFMCG, MarketCap: models.MarketCapLarge},
	}
}

// LoadUniverse reads a universe definition from a YAML file. The file holds a
// list of entries with symbol, name, sector and market_cap keys.
func LoadUniverse(path string) ([]UniverseEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read universe file: %w", err)
	}

	var universe []UniverseEntry
	if err := yaml.Unmarshal(data, &universe); err != nil {
		return nil, fmt.Errorf("failed to parse universe file: %w", err)
	}

	if len(universe) == 0 {
		return nil, fmt.Errorf("universe file %s contains no entries", path)
	}

	seen := make(map[string]bool, len(universe))
	for i, entry := range universe {
		if err := entry.Validate(); err != nil {
			return nil, fmt.Errorf("universe entry %d: %w", i, err)
		}
		if seen[entry.Symbol] {
			return nil, fmt.Errorf("universe entry %d: duplicate symbol %s", i, entry.Symbol)
		}
		seen[entry.Symbol] = true
	}

	return universe, nil
}
