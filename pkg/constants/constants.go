// Package constants provides shared constants for the proforma engine.
package constants

// Financial constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// AmortizationTolerance is the tolerance used when checking that an
	// amortization schedule fully retires its principal
	AmortizationTolerance = 1e-6

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default model definition file name
	DefaultConfigFile = "model.yaml"

	// ExampleConfigFile is the example model definition file name
	ExampleConfigFile = "model.yaml.example"
)

// Debt generator field names. Field line items are registered under
// {generator name}_{field name}.
const (
	FieldPrincipal       = "principal"
	FieldInterest        = "interest"
	FieldDebtOutstanding = "debt_outstanding"
	FieldProceeds        = "proceeds"
)
