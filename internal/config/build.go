package config

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/iwvelando/proforma/internal/engine"
	"github.com/iwvelando/proforma/pkg/assumptions"
	"github.com/iwvelando/proforma/pkg/debt"
	"github.com/iwvelando/proforma/pkg/format"
	"github.com/iwvelando/proforma/pkg/lineitem"
)

// BuildModel converts a model definition into an evaluable engine model:
// assumption store, line item specs in declaration order, and debt line
// generators appended after the declared items.
func (d *ModelDefinition) BuildModel(logger *zap.Logger) (*engine.Model, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	store := assumptions.NewStore()
	for _, assumption := range d.Assumptions {
		if assumption.Value != nil {
			store.SetScalar(assumption.Name, *assumption.Value)
		}
		for period, value := range assumption.Values {
			store.SetForPeriod(assumption.Name, period, value)
		}
	}

	specs := make([]lineitem.Spec, 0, len(d.LineItems)+4*len(d.Debt))
	names := make(map[string]bool, len(d.LineItems))
	for _, item := range d.LineItems {
		spec, err := item.toSpec()
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
		names[spec.Name] = true
	}

	for _, debtConfig := range d.Debt {
		if !names[debtConfig.ParItem] {
			return nil, fmt.Errorf("debt config %s watches par amount line item %s which is not declared",
				debtConfig.Name, debtConfig.ParItem)
		}
		_, debtSpecs, err := debt.NewDebtLines(logger, debt.Config{
			Name:         debtConfig.Name,
			ParItem:      debtConfig.ParItem,
			InterestRate: debtConfig.InterestRate,
			Term:         debtConfig.Term,
			Tags:         debtConfig.Tags,
		})
		if err != nil {
			return nil, fmt.Errorf("debt config %s: %w", debtConfig.Name, err)
		}
		specs = append(specs, debtSpecs...)
	}

	return engine.NewModel(logger, d.Periods.Expand(), specs, store)
}

func (item LineItemConfig) toSpec() (lineitem.Spec, error) {
	var spec lineitem.Spec
	switch {
	case item.Sum != nil && item.Growth != nil:
		return spec, fmt.Errorf("line item %s declares both sum and growth", item.Name)
	case item.Sum != nil:
		spec = lineitem.NewFormula(item.Name, lineitem.Sum(item.Sum...)).
			WithOverrides(item.Values)
	case item.Growth != nil:
		spec = lineitem.NewFormula(item.Name,
			lineitem.Growth(item.Name, item.Growth.Initial, item.Growth.Rate)).
			WithOverrides(item.Values)
	default:
		spec = lineitem.NewFixed(item.Name, item.Values)
	}

	formatSpec, err := item.Format.toSpec()
	if err != nil {
		return spec, fmt.Errorf("line item %s: %w", item.Name, err)
	}

	return spec.
		WithLabel(item.Label).
		WithTags(item.Tags...).
		WithFormat(formatSpec), nil
}

func (f FormatConfig) toSpec() (format.Spec, error) {
	var spec format.Spec
	switch format.Kind(f.Kind) {
	case "":
		spec = format.Default()
	case format.KindNumber:
		spec = format.Number(0)
	case format.KindCurrency:
		spec = format.Currency()
	case format.KindPercent:
		spec = format.Percent(1)
	default:
		return spec, fmt.Errorf("unsupported format kind %q", f.Kind)
	}
	if f.Decimals != nil {
		spec.Decimals = *f.Decimals
	}
	return spec, spec.Validate()
}
