// Package format provides presentational value formatting. The engine
// carries a Spec per line item but never interprets it; rendering happens
// entirely in output code.
package format

import (
	"fmt"

	"golang.org/x/text/message"

	"github.com/iwvelando/proforma/pkg/constants"
)

// Kind identifies how a line item value should be rendered.
type Kind string

const (
	// KindNumber renders a plain number with thousands separators.
	KindNumber Kind = "number"

	// KindCurrency renders a dollar amount (e.g., "-$1,234.56").
	KindCurrency Kind = "currency"

	// KindPercent renders a fraction as a percentage (0.05 -> "5.0%").
	KindPercent Kind = "percent"
)

// Spec describes the presentation of a line item's values.
type Spec struct {
	Kind     Kind
	Decimals int
}

// Number returns a plain-number spec with the given decimal places.
func Number(decimals int) Spec {
	return Spec{Kind: KindNumber, Decimals: decimals}
}

// Currency returns a currency spec with two decimal places.
func Currency() Spec {
	return Spec{Kind: KindCurrency, Decimals: 2}
}

// Percent returns a percentage spec with the given decimal places.
func Percent(decimals int) Spec {
	return Spec{Kind: KindPercent, Decimals: decimals}
}

// Default is the spec applied to line items that declare no format.
func Default() Spec {
	return Currency()
}

// Render formats a value according to the spec using the supplied printer
// for locale-aware thousands separators.
func (s Spec) Render(p *message.Printer, value float64) string {
	switch s.Kind {
	case KindCurrency:
		if value < 0 {
			return p.Sprintf("-$%.*f", s.Decimals, -value)
		}
		return p.Sprintf("$%.*f", s.Decimals, value)
	case KindPercent:
		return p.Sprintf("%.*f%%", s.Decimals, value*constants.PercentageMultiplier)
	default:
		return p.Sprintf("%.*f", s.Decimals, value)
	}
}

// Validate checks that the spec describes a supported rendering.
func (s Spec) Validate() error {
	switch s.Kind {
	case KindNumber, KindCurrency, KindPercent, "":
	default:
		return fmt.Errorf("unsupported format kind %q", s.Kind)
	}
	if s.Decimals < 0 {
		return fmt.Errorf("negative decimal places %d", s.Decimals)
	}
	return nil
}
