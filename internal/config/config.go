// Package config defines the data structures for YAML model definitions
// and includes functions for loading, validating, and exporting them.
// Formula line items beyond the declarative sum/growth forms are registered
// in code by the host; the config surface covers periods, assumptions,
// fixed lines, and debt issuance families.
package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// ModelDefinition holds one complete model definition.
type ModelDefinition struct {
	Periods     PeriodsConfig      `yaml:"periods"`
	Assumptions []AssumptionConfig `yaml:"assumptions,omitempty"`
	LineItems   []LineItemConfig   `yaml:"lineItems,omitempty"`
	Debt        []DebtConfig       `yaml:"debt,omitempty"`
	Logging     LoggingConfig      `yaml:"logging,omitempty"`
	Output      OutputConfig       `yaml:"output,omitempty"`
}

// PeriodsConfig declares the model's period sequence either as an explicit
// list or as a start year plus count.
type PeriodsConfig struct {
	Start int   `yaml:"start,omitempty"`
	Count int   `yaml:"count,omitempty"`
	List  []int `yaml:"list,omitempty"`
}

// Expand returns the declared period sequence.
func (p PeriodsConfig) Expand() []int {
	if len(p.List) > 0 {
		return append([]int(nil), p.List...)
	}
	periods := make([]int, 0, p.Count)
	for i := 0; i < p.Count; i++ {
		periods = append(periods, p.Start+i)
	}
	return periods
}

// AssumptionConfig declares one assumption: a scalar default, per-period
// values, or both.
type AssumptionConfig struct {
	Name   string          `yaml:"name"`
	Value  *float64        `yaml:"value,omitempty"`
	Values map[int]float64 `yaml:"values,omitempty"`
}

// LineItemConfig declares one line item. Values alone makes a fixed line;
// Sum makes a formula totalling the named items (Values then acts as
// per-period overrides); Growth makes a formula compounding the item's own
// prior value by a rate assumption.
type LineItemConfig struct {
	Name   string          `yaml:"name"`
	Label  string          `yaml:"label,omitempty"`
	Tags   []string        `yaml:"tags,omitempty"`
	Format FormatConfig    `yaml:"format,omitempty"`
	Values map[int]float64 `yaml:"values,omitempty"`
	Sum    []string        `yaml:"sum,omitempty"`
	Growth *GrowthConfig   `yaml:"growth,omitempty"`
}

// GrowthConfig parameterizes a growth formula line.
type GrowthConfig struct {
	Initial float64 `yaml:"initial"`
	Rate    string  `yaml:"rate"` // assumption name holding the rate fraction
}

// FormatConfig declares the presentational format of a line item.
type FormatConfig struct {
	Kind     string `yaml:"kind,omitempty"` // number, currency, percent
	Decimals *int   `yaml:"decimals,omitempty"`
}

// DebtConfig declares one family of bond issuances driven by a par amount
// line item.
type DebtConfig struct {
	Name         string   `yaml:"name"`
	ParItem      string   `yaml:"parItem"`
	InterestRate float64  `yaml:"interestRate"` // annual fraction, 0.05 = 5%
	Term         int      `yaml:"term"`
	Tags         []string `yaml:"tags,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoadModelDefinition takes a file path as input and loads the
// YAML-formatted model definition there.
func LoadModelDefinition(configPath string) (*ModelDefinition, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading model definition, %s", err)
	}

	var definition ModelDefinition
	// Period-keyed value maps arrive as string keys from viper; weak typing
	// lets mapstructure coerce them back to ints.
	err := v.Unmarshal(&definition, func(dc *mapstructure.DecoderConfig) {
		dc.WeaklyTypedInput = true
	})
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &definition, nil
}
