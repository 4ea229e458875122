package cmd

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/debt-sim/sim"
)

// Scenario is a named parameter preset in scenarios.yaml.
// A key the preset omits is nil and keeps the flag value.
type Scenario struct {
	Villagers       *int     `yaml:"villagers,omitempty"`
	LoanPerVillager *float64 `yaml:"loan_per_villager,omitempty"`
	InterestRate    *float64 `yaml:"interest_rate,omitempty"`
	Years           *int     `yaml:"years,omitempty"`
	Seed            *int64   `yaml:"seed,omitempty"`
}

// Apply overlays the preset onto params and seed. Keys for which
// explicit(flagName) reports true are left alone.
func (s Scenario) Apply(params sim.Params, seed int64, explicit func(flagName string) bool) (sim.Params, int64) {
	if s.Villagers != nil && !explicit("villagers") {
		params.Villagers = *s.Villagers
	}
	if s.LoanPerVillager != nil && !explicit("loan") {
		params.LoanPerVillager = *s.LoanPerVillager
	}
	if s.InterestRate != nil && !explicit("interest-rate") {
		params.InterestRate = *s.InterestRate
	}
	if s.Years != nil && !explicit("years") {
		params.Years = *s.Years
	}
	if s.Seed != nil && !explicit("seed") {
		seed = *s.Seed
	}
	return params, seed
}

// Config represents the full scenarios.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Version   string              `yaml:"version"`
	Scenarios map[string]Scenario `yaml:"scenarios"`
}

// loadScenariosConfig parses scenarios.yaml into a Config.
// Uses strict field checking: typos in preset keys are errors.
func loadScenariosConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenarios file: %w", err)
	}
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing scenarios file %s: %w", path, err)
	}
	return &cfg, nil
}

// Lookup returns the named preset.
func (c *Config) Lookup(name string) (Scenario, error) {
	if s, ok := c.Scenarios[name]; ok {
		return s, nil
	}
	names := make([]string, 0, len(c.Scenarios))
	for n := range c.Scenarios {
		names = append(names, n)
	}
	sort.Strings(names)
	return Scenario{}, fmt.Errorf("unknown scenario %q; valid: %v", name, names)
}
