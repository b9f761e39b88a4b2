package lineitem

import "errors"

// Sum returns a formula that totals the named line items at the current
// period. Items with no value for the period contribute zero.
func Sum(names ...string) FormulaFunc {
	return func(_ AssumptionReader, values ValueReader, _ int) (float64, error) {
		total := 0.00
		for _, name := range names {
			value, err := values.OffsetOr(name, 0, 0)
			if err != nil {
				return 0, err
			}
			total += value
		}
		return total, nil
	}
}

// Scale returns a formula that multiplies another line item's current value
// by a constant factor.
func Scale(name string, factor float64) FormulaFunc {
	return func(_ AssumptionReader, values ValueReader, _ int) (float64, error) {
		value, err := values.Current(name)
		if err != nil {
			return 0, err
		}
		return value * factor, nil
	}
}

// Growth returns a formula for a line item that compounds its own prior
// value by a rate assumption (a fraction, 0.05 = 5%). itemName must be the
// name the spec is registered under; the first period starts from initial.
func Growth(itemName string, initial float64, rateAssumption string) FormulaFunc {
	return func(assume AssumptionReader, values ValueReader, _ int) (float64, error) {
		prior, err := values.Offset(itemName, -1)
		if err != nil {
			var missing *MissingValueError
			if errors.As(err, &missing) &&
				(missing.Reason == ReasonOutOfRange || missing.Reason == ReasonNoValue) {
				// No prior period: report the initial value before growth applies.
				return initial, nil
			}
			return 0, err
		}
		rate, err := assume.Value(rateAssumption)
		if err != nil {
			return 0, err
		}
		return prior * (1 + rate), nil
	}
}
