package repository

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"PriceCast/internal/domain/models"
	domrepo "PriceCast/internal/domain/repository"
)

// StaticCatalog is an immutable symbol table. Safe for concurrent reads.
type StaticCatalog struct {
	bySymbol map[string]models.Instrument
	ordered  []models.Instrument
}

type catalogFile struct {
	Instruments []struct {
		Symbol    string  `yaml:"symbol"`
		Name      string  `yaml:"name"`
		BasePrice float64 `yaml:"base_price"`
	} `yaml:"instruments"`
}

// NewStaticCatalog indexes the given instruments. Symbols are upper-cased; later duplicates win.
func NewStaticCatalog(instruments []models.Instrument) *StaticCatalog {
	c := &StaticCatalog{bySymbol: make(map[string]models.Instrument, len(instruments))}
	for _, in := range instruments {
		in.Symbol = strings.ToUpper(strings.TrimSpace(in.Symbol))
		if in.Symbol == "" {
			continue
		}
		c.bySymbol[in.Symbol] = in
	}
	c.ordered = make([]models.Instrument, 0, len(c.bySymbol))
	for _, in := range c.bySymbol {
		c.ordered = append(c.ordered, in)
	}
	sort.Slice(c.ordered, func(i, j int) bool { return c.ordered[i].Symbol < c.ordered[j].Symbol })
	return c
}

// LoadCatalog reads a YAML instrument table. An empty path yields the built-in table.
func LoadCatalog(path string) (*StaticCatalog, error) {
	if path == "" {
		return NewStaticCatalog(DefaultInstruments()), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	out := make([]models.Instrument, 0, len(f.Instruments))
	for i, e := range f.Instruments {
		if e.Symbol == "" || e.BasePrice <= 0 {
			return nil, fmt.Errorf("catalog %s: entry %d: symbol and positive base_price required", path, i)
		}
		out = append(out, models.Instrument{Symbol: e.Symbol, Name: e.Name, BasePrice: e.BasePrice})
	}
	return NewStaticCatalog(out), nil
}

func (c *StaticCatalog) BasePrice(symbol string) (float64, bool) {
	in, ok := c.Lookup(symbol)
	return in.BasePrice, ok
}

func (c *StaticCatalog) Lookup(symbol string) (models.Instrument, bool) {
	in, ok := c.bySymbol[strings.ToUpper(symbol)]
	return in, ok
}

// Instruments returns a copy sorted by symbol.
func (c *StaticCatalog) Instruments() []models.Instrument {
	out := make([]models.Instrument, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// DefaultInstruments is the built-in demo table.
func DefaultInstruments() []models.Instrument {
	return []models.Instrument{
		{Symbol: "AAPL", Name: "Apple Inc.", BasePrice: 150},
		{Symbol: "GOOGL", Name: "Alphabet Inc.", BasePrice: 2800},
		{Symbol: "TSLA", Name: "Tesla Inc.", BasePrice: 200},
		{Symbol: "MSFT", Name: "Microsoft Corporation", BasePrice: 300},
		{Symbol: "AMZN", Name: "Amazon.com Inc.", BasePrice: 3200},
		{Symbol: "NVDA", Name: "NVIDIA Corporation", BasePrice: 800},
		{Symbol: "META", Name: "Meta Platforms Inc.", BasePrice: 350},
		{Symbol: "NFLX", Name: "Netflix Inc.", BasePrice: 450},
		{Symbol: "AMD", Name: "Advanced Micro Devices", BasePrice: 120},
		{Symbol: "CRM", Name: "Salesforce Inc.", BasePrice: 220},
		{Symbol: "ORCL", Name: "Oracle Corporation", BasePrice: 110},
		{Symbol: "ADBE", Name: "Adobe Inc.", BasePrice: 500},
		{Symbol: "PYPL", Name: "PayPal Holdings", BasePrice: 80},
		{Symbol: "INTC", Name: "Intel Corporation", BasePrice: 45},
		{Symbol: "CSCO", Name: "Cisco Systems", BasePrice: 50},
		{Symbol: "IBM", Name: "IBM Corporation", BasePrice: 140},
		{Symbol: "UBER", Name: "Uber Technologies", BasePrice: 65},
		{Symbol: "SPOT", Name: "Spotify Technology", BasePrice: 180},
		{Symbol: "ZOOM", Name: "Zoom Video Communications", BasePrice: 70},
		{Symbol: "SQ", Name: "Block Inc.", BasePrice: 90},
	}
}

var _ domrepo.InstrumentCatalog = (*StaticCatalog)(nil)
