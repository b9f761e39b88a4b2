package engine

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/iwvelando/proforma/pkg/assumptions"
	"github.com/iwvelando/proforma/pkg/format"
	"github.com/iwvelando/proforma/pkg/lineitem"
)

// generatorState pairs a generator with the set of periods it has been
// advanced through. All field specs referencing the same generator share
// one state so their values always reflect an identical set of issuances.
type generatorState struct {
	gen      lineitem.Generator
	advanced map[int]bool
}

// Model is one evaluable model instance: an ordered set of line item specs
// over an ordered period sequence, with its own value store and generator
// state. A Model is intended for single-owner, sequential use.
type Model struct {
	logger     *zap.Logger
	periods    []int
	specs      []lineitem.Spec
	index      map[string]int
	assume     *assumptions.Store
	store      *valueStore
	generators map[string]*generatorState
	tagIndex   map[string][]string
}

// NewModel validates the specs and builds a model instance ready for
// Evaluate. Definition problems (duplicate names, non-increasing periods,
// formula specs without callbacks, inconsistent generator sharing) surface
// as DefinitionError.
// If logger is nil, it will use a no-op logger to prevent panics.
func NewModel(logger *zap.Logger, periods []int, specs []lineitem.Spec, assume *assumptions.Store) (*Model, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if assume == nil {
		assume = assumptions.NewStore()
	}

	if len(periods) == 0 {
		return nil, &DefinitionError{Reason: "model requires at least one period"}
	}
	for i := 1; i < len(periods); i++ {
		if periods[i] <= periods[i-1] {
			return nil, &DefinitionError{Reason: fmt.Sprintf(
				"periods must be strictly increasing, got %d after %d", periods[i], periods[i-1])}
		}
	}

	m := &Model{
		logger:     logger,
		periods:    append([]int(nil), periods...),
		specs:      append([]lineitem.Spec(nil), specs...),
		index:      make(map[string]int, len(specs)),
		assume:     assume,
		generators: make(map[string]*generatorState),
		tagIndex:   make(map[string][]string),
	}

	names := make([]string, 0, len(specs))
	for i, spec := range m.specs {
		if spec.Name == "" {
			return nil, &DefinitionError{Reason: fmt.Sprintf("line item at position %d has no name", i)}
		}
		if _, exists := m.index[spec.Name]; exists {
			return nil, &DefinitionError{Reason: fmt.Sprintf("duplicate line item name %s", spec.Name)}
		}

		switch spec.Kind {
		case lineitem.KindFixed:
		case lineitem.KindFormula:
			if spec.Formula == nil {
				return nil, &DefinitionError{Reason: fmt.Sprintf("line item %s declares a formula but no callable", spec.Name)}
			}
		case lineitem.KindGenerator:
			if spec.Generator == nil {
				return nil, &DefinitionError{Reason: fmt.Sprintf("line item %s declares a generator field but no generator", spec.Name)}
			}
			if !fieldKnown(spec.Generator, spec.Field) {
				return nil, &DefinitionError{Reason: fmt.Sprintf(
					"line item %s references unknown generator field %s", spec.Name, spec.Field)}
			}
			genName := spec.Generator.Name()
			if existing, ok := m.generators[genName]; ok {
				if existing.gen != spec.Generator {
					return nil, &DefinitionError{Reason: fmt.Sprintf(
						"generator %s is backed by more than one instance; field lines must share a single calculator", genName)}
				}
			} else {
				m.generators[genName] = &generatorState{gen: spec.Generator, advanced: make(map[int]bool)}
			}
		default:
			return nil, &DefinitionError{Reason: fmt.Sprintf("line item %s has unknown kind %d", spec.Name, spec.Kind)}
		}

		m.index[spec.Name] = i
		names = append(names, spec.Name)
		for _, tag := range spec.Tags {
			m.tagIndex[tag] = append(m.tagIndex[tag], spec.Name)
		}
	}

	m.store = newValueStore(names, m.periods)
	return m, nil
}

func fieldKnown(gen lineitem.Generator, field string) bool {
	for _, name := range gen.FieldNames() {
		if name == field {
			return true
		}
	}
	return false
}

// Periods returns the model's ordered period sequence.
func (m *Model) Periods() []int {
	return append([]int(nil), m.periods...)
}

// Names returns all line item names in declaration order.
func (m *Model) Names() []string {
	names := make([]string, len(m.specs))
	for i, spec := range m.specs {
		names[i] = spec.Name
	}
	return names
}

func (m *Model) spec(name string) (*lineitem.Spec, error) {
	idx, ok := m.index[name]
	if !ok {
		return nil, &lineitem.UnknownReferenceError{Ref: name, Kind: "line item"}
	}
	return &m.specs[idx], nil
}

// Value returns the computed value for a line item at a period. It fails
// with UnknownReferenceError for unknown names and MissingValueError for
// unresolved, absent, or out-of-range periods.
func (m *Model) Value(name string, period int) (float64, error) {
	if _, err := m.spec(name); err != nil {
		return 0, err
	}
	return m.store.read(name, period)
}

// HasValue reports whether a line item carries a value at a period,
// distinguishing recorded absence (false, nil) from unknown names and
// unresolved periods (error).
func (m *Model) HasValue(name string, period int) (bool, error) {
	if _, err := m.spec(name); err != nil {
		return false, err
	}
	_, err := m.store.read(name, period)
	if err != nil {
		var missing *lineitem.MissingValueError
		if errors.As(err, &missing) && missing.Reason == lineitem.ReasonNoValue {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Label returns the line item's display label, empty if unset.
func (m *Model) Label(name string) (string, error) {
	spec, err := m.spec(name)
	if err != nil {
		return "", err
	}
	return spec.Label, nil
}

// Tags returns the line item's grouping tags.
func (m *Model) Tags(name string) ([]string, error) {
	spec, err := m.spec(name)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), spec.Tags...), nil
}

// Format returns the line item's presentational value format.
func (m *Model) Format(name string) (format.Spec, error) {
	spec, err := m.spec(name)
	if err != nil {
		return format.Spec{}, err
	}
	return spec.Format, nil
}

// SelectByTag returns the names of all line items carrying the tag, in
// declaration order.
func (m *Model) SelectByTag(tag string) ([]string, error) {
	names, ok := m.tagIndex[tag]
	if !ok {
		return nil, &lineitem.UnknownReferenceError{Ref: tag, Kind: "tag"}
	}
	return append([]string(nil), names...), nil
}

// SumByTag sums the values of all line items carrying the tag at a period.
// Line items with a recorded absence for the period contribute zero; any
// other lookup failure aborts the sum.
func (m *Model) SumByTag(tag string, period int) (float64, error) {
	names, err := m.SelectByTag(tag)
	if err != nil {
		return 0, err
	}

	total := 0.00
	for _, name := range names {
		value, err := m.store.read(name, period)
		if err != nil {
			var missing *lineitem.MissingValueError
			if errors.As(err, &missing) && missing.Reason == lineitem.ReasonNoValue {
				continue
			}
			return 0, err
		}
		total += value
	}
	return total, nil
}
