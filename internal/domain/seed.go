package domain

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedData []byte

type seed struct {
	Rates    []ServiceRate   `yaml:"rates"`
	Settings PricingSettings `yaml:"settings"`
	Brands   []Brand         `yaml:"brands"`
}

func loadSeed() (*seed, error) {
	var s seed
	if err := yaml.Unmarshal(seedData, &s); err != nil {
		return nil, fmt.Errorf("decode seed data: %w", err)
	}
	return &s, nil
}

func mustSeed() *seed {
	s, err := loadSeed()
	if err != nil {
		panic(err)
	}
	return s
}

// DefaultRates returns a fresh copy of the catalog used when nothing is stored yet.
func DefaultRates() []ServiceRate {
	return mustSeed().Rates
}

func DefaultSettings() PricingSettings {
	return mustSeed().Settings
}

// DefaultBrands returns the starter brand list.
func DefaultBrands() []Brand {
	brands := mustSeed().Brands
	for i := range brands {
		if brands[i].LearnedRates == nil {
			brands[i].LearnedRates = []ServiceRate{}
		}
	}
	return brands
}
