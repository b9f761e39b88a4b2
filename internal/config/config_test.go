package config

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

const testDefinition = `---
periods:
  start: 2024
  count: 3

assumptions:
  - name: growth
    value: 0.10
  - name: subsidy
    values:
      2025: 500

lineItems:
  - name: revenue
    label: Revenue
    tags: [income]
    growth:
      initial: 1000
      rate: growth
  - name: expenses
    label: Expenses
    tags: [expense]
    values:
      2024: 600
      2025: 620
      2026: 640
  - name: bonds
    values:
      2024: 1000
  - name: debt_service
    tags: [expense]
    sum: [series_principal, series_interest]

debt:
  - name: series
    parItem: bonds
    interestRate: 0.05
    term: 3
    tags: [debt]

logging:
  level: debug
  format: console

output:
  format: csv
`

func writeDefinition(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write test definition: %v", err)
	}
	return path
}

func TestLoadModelDefinition(t *testing.T) {
	definition, err := LoadModelDefinition(writeDefinition(t, testDefinition))
	if err != nil {
		t.Fatalf("LoadModelDefinition() error = %v", err)
	}

	periods := definition.Periods.Expand()
	if len(periods) != 3 || periods[0] != 2024 || periods[2] != 2026 {
		t.Errorf("Periods.Expand() = %v, expected [2024 2025 2026]", periods)
	}

	if len(definition.Assumptions) != 2 {
		t.Fatalf("parsed %d assumptions, expected 2", len(definition.Assumptions))
	}
	if definition.Assumptions[0].Value == nil || *definition.Assumptions[0].Value != 0.10 {
		t.Errorf("assumption growth value = %v, expected 0.10", definition.Assumptions[0].Value)
	}
	if definition.Assumptions[1].Values[2025] != 500 {
		t.Errorf("assumption subsidy 2025 = %v, expected 500", definition.Assumptions[1].Values)
	}

	if len(definition.LineItems) != 4 {
		t.Fatalf("parsed %d line items, expected 4", len(definition.LineItems))
	}
	if definition.LineItems[1].Values[2025] != 620 {
		t.Errorf("expenses 2025 = %v, expected 620", definition.LineItems[1].Values)
	}
	if definition.LineItems[0].Growth == nil || definition.LineItems[0].Growth.Rate != "growth" {
		t.Errorf("revenue growth config = %+v, expected rate assumption growth", definition.LineItems[0].Growth)
	}

	if len(definition.Debt) != 1 || definition.Debt[0].ParItem != "bonds" || definition.Debt[0].Term != 3 {
		t.Errorf("debt config = %+v, expected par item bonds with term 3", definition.Debt)
	}

	if definition.Logging.Level != "debug" || definition.Output.Format != "csv" {
		t.Errorf("logging/output = %+v / %+v", definition.Logging, definition.Output)
	}
}

func TestLoadModelDefinitionMissingFile(t *testing.T) {
	if _, err := LoadModelDefinition(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Errorf("LoadModelDefinition() expected error for missing file, got nil")
	}
}

func TestBuildModelAndEvaluate(t *testing.T) {
	definition, err := LoadModelDefinition(writeDefinition(t, testDefinition))
	if err != nil {
		t.Fatalf("LoadModelDefinition() error = %v", err)
	}

	model, err := definition.BuildModel(nil)
	if err != nil {
		t.Fatalf("BuildModel() error = %v", err)
	}
	if err := model.Evaluate(); err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	revenue, err := model.Value("revenue", 2025)
	if err != nil {
		t.Fatalf("Value(revenue, 2025) error = %v", err)
	}
	if math.Abs(revenue-1100) > 1e-9 {
		t.Errorf("revenue 2025 = %f, expected 1100", revenue)
	}

	// Debt service equals the level annual payment of the 2024 issuance.
	service, err := model.Value("debt_service", 2024)
	if err != nil {
		t.Fatalf("Value(debt_service, 2024) error = %v", err)
	}
	principal, err := model.Value("series_principal", 2024)
	if err != nil {
		t.Fatalf("Value(series_principal, 2024) error = %v", err)
	}
	interest, err := model.Value("series_interest", 2024)
	if err != nil {
		t.Fatalf("Value(series_interest, 2024) error = %v", err)
	}
	if math.Abs(service-(principal+interest)) > 1e-9 {
		t.Errorf("debt_service 2024 = %f, expected %f", service, principal+interest)
	}

	// Expense tag covers the fixed line plus the sum line.
	total, err := model.SumByTag("expense", 2024)
	if err != nil {
		t.Fatalf("SumByTag(expense, 2024) error = %v", err)
	}
	if math.Abs(total-(600+service)) > 1e-9 {
		t.Errorf("SumByTag(expense, 2024) = %f, expected %f", total, 600+service)
	}
}

func TestValidateConfigurationWarnings(t *testing.T) {
	tests := []struct {
		name       string
		definition ModelDefinition
		expected   int
	}{
		{
			name:       "Empty model",
			definition: ModelDefinition{},
			expected:   1, // no periods
		},
		{
			name: "Clean definition",
			definition: ModelDefinition{
				Periods: PeriodsConfig{Start: 2024, Count: 2},
				LineItems: []LineItemConfig{
					{Name: "a", Values: map[int]float64{2024: 1}},
				},
			},
			expected: 0,
		},
		{
			name: "Value outside periods",
			definition: ModelDefinition{
				Periods: PeriodsConfig{Start: 2024, Count: 2},
				LineItems: []LineItemConfig{
					{Name: "a", Values: map[int]float64{2030: 1}},
				},
			},
			expected: 1,
		},
		{
			name: "Sum over unknown item",
			definition: ModelDefinition{
				Periods: PeriodsConfig{Start: 2024, Count: 2},
				LineItems: []LineItemConfig{
					{Name: "a", Sum: []string{"ghost"}},
				},
			},
			expected: 1,
		},
		{
			name: "Sum over debt fields is known",
			definition: ModelDefinition{
				Periods: PeriodsConfig{Start: 2024, Count: 2},
				LineItems: []LineItemConfig{
					{Name: "par", Values: map[int]float64{2024: 1}},
					{Name: "a", Sum: []string{"series_principal"}},
				},
				Debt: []DebtConfig{
					{Name: "series", ParItem: "par", InterestRate: 0.05, Term: 2},
				},
			},
			expected: 0,
		},
		{
			name: "Percent-points rate",
			definition: ModelDefinition{
				Periods: PeriodsConfig{Start: 2024, Count: 2},
				LineItems: []LineItemConfig{
					{Name: "par", Values: map[int]float64{2024: 1}},
				},
				Debt: []DebtConfig{
					{Name: "series", ParItem: "par", InterestRate: 5.0, Term: 2},
				},
			},
			expected: 1,
		},
		{
			name: "Debt watching unknown par item",
			definition: ModelDefinition{
				Periods: PeriodsConfig{Start: 2024, Count: 2},
				Debt: []DebtConfig{
					{Name: "series", ParItem: "ghost", InterestRate: 0.05, Term: 2},
				},
			},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := tt.definition.ValidateConfiguration()
			if len(warnings) != tt.expected {
				t.Errorf("ValidateConfiguration() = %v, expected %d warnings", warnings, tt.expected)
			}
		})
	}
}

func TestExportRoundTrip(t *testing.T) {
	definition, err := LoadModelDefinition(writeDefinition(t, testDefinition))
	if err != nil {
		t.Fatalf("LoadModelDefinition() error = %v", err)
	}

	var buf bytes.Buffer
	if err := definition.Export(&buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var restored ModelDefinition
	if err := yaml.Unmarshal(buf.Bytes(), &restored); err != nil {
		t.Fatalf("failed to parse exported definition: %v", err)
	}

	if len(restored.LineItems) != len(definition.LineItems) {
		t.Errorf("round trip lost line items: %d vs %d", len(restored.LineItems), len(definition.LineItems))
	}
	if restored.Debt[0].InterestRate != definition.Debt[0].InterestRate {
		t.Errorf("round trip changed interest rate: %f vs %f",
			restored.Debt[0].InterestRate, definition.Debt[0].InterestRate)
	}
	if restored.LineItems[1].Values[2025] != 620 {
		t.Errorf("round trip lost expenses values: %v", restored.LineItems[1].Values)
	}
}
