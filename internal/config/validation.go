package config

import (
	"fmt"

	"github.com/iwvelando/proforma/pkg/constants"
)

// ValidateConfiguration performs general validation of the model definition
// and returns warnings. Hard errors (duplicate names, missing formulas) are
// left to model construction; warnings flag definitions that are legal but
// probably not what the author meant.
func (d *ModelDefinition) ValidateConfiguration() []string {
	var warnings []string

	periods := d.Periods.Expand()
	if len(periods) == 0 {
		warnings = append(warnings, "no periods declared; the model cannot evaluate")
	}
	periodSet := make(map[int]bool, len(periods))
	for _, period := range periods {
		periodSet[period] = true
	}

	names := make(map[string]bool, len(d.LineItems))
	for _, item := range d.LineItems {
		if item.Name == "" {
			warnings = append(warnings, "a line item has no name")
			continue
		}
		names[item.Name] = true

		for period := range item.Values {
			if !periodSet[period] {
				warnings = append(warnings, fmt.Sprintf(
					"line item %s declares a value for period %d outside the model's periods", item.Name, period))
			}
		}
	}

	// Debt configs register field line items; those names are referenceable
	// from sums.
	for _, debtConfig := range d.Debt {
		for _, field := range []string{
			constants.FieldPrincipal,
			constants.FieldInterest,
			constants.FieldDebtOutstanding,
			constants.FieldProceeds,
		} {
			names[debtConfig.Name+"_"+field] = true
		}
	}

	for _, item := range d.LineItems {
		for _, ref := range item.Sum {
			if !names[ref] {
				warnings = append(warnings, fmt.Sprintf(
					"line item %s sums over %s which is not a declared line item", item.Name, ref))
			}
		}
		if item.Growth != nil && item.Growth.Rate == "" {
			warnings = append(warnings, fmt.Sprintf(
				"line item %s declares growth without a rate assumption", item.Name))
		}
	}

	assumptionNames := make(map[string]bool, len(d.Assumptions))
	for _, assumption := range d.Assumptions {
		if assumption.Value == nil && len(assumption.Values) == 0 {
			warnings = append(warnings, fmt.Sprintf(
				"assumption %s declares neither a scalar default nor period values", assumption.Name))
		}
		assumptionNames[assumption.Name] = true
	}
	for _, item := range d.LineItems {
		if item.Growth != nil && item.Growth.Rate != "" && !assumptionNames[item.Growth.Rate] {
			warnings = append(warnings, fmt.Sprintf(
				"line item %s grows by assumption %s which is not declared", item.Name, item.Growth.Rate))
		}
	}

	for _, debtConfig := range d.Debt {
		if !names[debtConfig.ParItem] {
			warnings = append(warnings, fmt.Sprintf(
				"debt %s watches par amount line item %s which is not a declared line item",
				debtConfig.Name, debtConfig.ParItem))
		}
		// Rates are fractions; a value above 1 almost certainly means
		// percent points were entered.
		if debtConfig.InterestRate > 1 {
			warnings = append(warnings, fmt.Sprintf(
				"debt %s has interest rate %.2f; rates are fractions (0.05 = 5%%)",
				debtConfig.Name, debtConfig.InterestRate))
		}
	}

	return warnings
}
