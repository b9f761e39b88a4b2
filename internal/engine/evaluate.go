package engine

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/iwvelando/proforma/pkg/lineitem"
)

// Evaluate computes every line item's value for every period. Periods are
// processed strictly in ascending order; within a period, line items are
// taken in declaration order with same-period dependencies resolved
// recursively. Any error aborts the pass and leaves the model unusable.
func (m *Model) Evaluate() error {
	for _, period := range m.periods {
		m.logger.Debug(fmt.Sprintf("evaluating period %d", period),
			zap.String("op", "engine.Evaluate"),
		)
		for _, spec := range m.specs {
			if _, _, err := m.resolve(spec.Name, period, nil); err != nil {
				return fmt.Errorf("evaluating %s at period %d: %w", spec.Name, period, err)
			}
		}
	}
	return nil
}

// resolve drives the per-cell state machine. It returns the cell's value
// and whether a value exists; a false hasValue is a recorded absence, not
// an error. The chain carries the same-period resolution path for cycle
// reporting.
func (m *Model) resolve(name string, period int, chain []string) (float64, bool, error) {
	idx, ok := m.index[name]
	if !ok {
		return 0, false, &lineitem.UnknownReferenceError{Ref: name, Kind: "line item"}
	}

	c, err := m.store.cellFor(name, period)
	if err != nil {
		return 0, false, err
	}

	switch c.state {
	case stateResolved:
		return c.value, c.hasValue, nil
	case stateResolving:
		return 0, false, &CycleError{Period: period, Chain: append(copyChain(chain), name)}
	}

	c.state = stateResolving
	chain = append(copyChain(chain), name)

	spec := m.specs[idx]
	var value float64
	var hasValue bool

	switch spec.Kind {
	case lineitem.KindFixed:
		value, hasValue = spec.Values[period]

	case lineitem.KindFormula:
		if override, ok := spec.Values[period]; ok {
			m.logger.Debug(fmt.Sprintf("%d: using override %.2f for %s", period, override, spec.Name),
				zap.String("op", "engine.resolve"),
			)
			value, hasValue = override, true
			break
		}
		value, err = spec.Formula(
			&assumptionReader{model: m, period: period},
			&valueReader{model: m, period: period, chain: chain},
			period,
		)
		hasValue = err == nil

	case lineitem.KindGenerator:
		state := m.generators[spec.Generator.Name()]
		if err = m.advanceGenerator(state, period, chain); err == nil {
			value, hasValue = state.gen.FieldValue(spec.Field, period)
		}
	}

	if err != nil {
		c.state = stateUnresolved
		return 0, false, err
	}

	if err := m.store.finalize(name, period, value, hasValue); err != nil {
		return 0, false, err
	}
	return value, hasValue, nil
}

// advanceGenerator advances a generator through the given period, one
// period at a time in model order. Already-advanced periods are never
// re-processed, so querying any field of a generator repeatedly within a
// period advances its state exactly once.
func (m *Model) advanceGenerator(state *generatorState, period int, chain []string) error {
	for _, p := range m.periods {
		if p > period {
			break
		}
		if state.advanced[p] {
			continue
		}
		reader := &valueReader{model: m, period: p, chain: chain}
		if err := state.gen.Advance(p, reader); err != nil {
			return err
		}
		state.advanced[p] = true
	}
	return nil
}

func copyChain(chain []string) []string {
	return append([]string(nil), chain...)
}

// assumptionReader resolves assumptions at the period being evaluated.
type assumptionReader struct {
	model  *Model
	period int
}

func (r *assumptionReader) Value(name string) (float64, error) {
	return r.model.assume.Value(name, r.period)
}

func (r *assumptionReader) ValueAt(name string, period int) (float64, error) {
	return r.model.assume.Value(name, period)
}

// valueReader is the read-only line item accessor handed to formulas and
// generators during evaluation. Current participates in same-period
// dependency resolution; Offset only reads finalized prior periods.
type valueReader struct {
	model  *Model
	period int
	chain  []string
}

func (r *valueReader) Current(name string) (float64, error) {
	value, hasValue, err := r.model.resolve(name, r.period, r.chain)
	if err != nil {
		return 0, err
	}
	if !hasValue {
		return 0, &lineitem.MissingValueError{Name: name, Period: r.period, Reason: lineitem.ReasonNoValue}
	}
	return value, nil
}

func (r *valueReader) Offset(name string, offset int) (float64, error) {
	if offset == 0 {
		return r.Current(name)
	}
	if _, ok := r.model.index[name]; !ok {
		return 0, &lineitem.UnknownReferenceError{Ref: name, Kind: "line item"}
	}
	target := r.period + offset
	if offset > 0 {
		// Forward reads would require out-of-order evaluation.
		return 0, &lineitem.MissingValueError{Name: name, Period: target, Reason: lineitem.ReasonNotComputed}
	}
	return r.model.store.read(name, target)
}

func (r *valueReader) OffsetOr(name string, offset int, fallback float64) (float64, error) {
	value, err := r.Offset(name, offset)
	if err != nil {
		var missing *lineitem.MissingValueError
		if errors.As(err, &missing) &&
			(missing.Reason == lineitem.ReasonNoValue || missing.Reason == lineitem.ReasonOutOfRange) {
			return fallback, nil
		}
		return 0, err
	}
	return value, nil
}
