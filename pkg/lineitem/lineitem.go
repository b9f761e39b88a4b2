// Package lineitem defines the declarative building blocks of a pro-forma
// model: fixed value maps, formula callbacks, and multi-field generators.
// Specs are static descriptions; all evaluation happens in the engine.
package lineitem

import "github.com/iwvelando/proforma/pkg/format"

// Kind identifies how a line item's values are produced.
type Kind int

const (
	// KindFixed takes values from an explicit period->value map.
	KindFixed Kind = iota

	// KindFormula computes values from a callback, subject to overrides.
	KindFormula

	// KindGenerator exposes one named field of a shared generator.
	KindGenerator
)

// AssumptionReader is the read capability handed to formulas for resolving
// assumptions. Value resolves at the period being evaluated; ValueAt allows
// an explicit period.
type AssumptionReader interface {
	Value(name string) (float64, error)
	ValueAt(name string, period int) (float64, error)
}

// ValueReader is the read-only line item accessor handed to formulas and
// generators. Current reads another line item at the period being evaluated
// and participates in same-period dependency resolution; Offset reads at a
// relative period (negative offsets read finalized prior periods). OffsetOr
// behaves like Offset but substitutes the fallback when the target period
// legitimately has no value or lies outside the model range.
type ValueReader interface {
	Current(name string) (float64, error)
	Offset(name string, offset int) (float64, error)
	OffsetOr(name string, offset int, fallback float64) (float64, error)
}

// FormulaFunc computes a line item's value for one period. Implementations
// must be pure: all inputs arrive through the readers and the period.
type FormulaFunc func(assume AssumptionReader, values ValueReader, period int) (float64, error)

// Generator produces multiple named fields per period from shared internal
// state. The engine advances a generator exactly once per period, in
// ascending period order; FieldValue is only consulted for periods the
// generator has been advanced through. The bool result distinguishes a
// legitimate "no value for this period" from a zero value.
type Generator interface {
	Name() string
	FieldNames() []string
	Advance(period int, values ValueReader) error
	FieldValue(field string, period int) (float64, bool)
}

// Spec describes one line item. Exactly one producing mechanism applies,
// selected by Kind; Values doubles as the fixed value map for KindFixed and
// the per-period override map for KindFormula.
type Spec struct {
	Name      string
	Label     string
	Tags      []string
	Format    format.Spec
	Kind      Kind
	Values    map[int]float64
	Formula   FormulaFunc
	Generator Generator
	Field     string
}

// NewFixed creates a fixed line item from an explicit period->value map.
// Periods absent from the map have no value, which is distinct from zero.
func NewFixed(name string, values map[int]float64) Spec {
	return Spec{
		Name:   name,
		Kind:   KindFixed,
		Values: values,
		Format: format.Default(),
	}
}

// NewFormula creates a formula-driven line item.
func NewFormula(name string, fn FormulaFunc) Spec {
	return Spec{
		Name:    name,
		Kind:    KindFormula,
		Formula: fn,
		Format:  format.Default(),
	}
}

// NewGeneratorField creates a line item exposing one field of a generator.
// The item is named {generator name}_{field name}.
func NewGeneratorField(gen Generator, field string) Spec {
	return Spec{
		Name:      gen.Name() + "_" + field,
		Kind:      KindGenerator,
		Generator: gen,
		Field:     field,
		Format:    format.Default(),
	}
}

// WithLabel returns a copy of the spec with a display label.
func (s Spec) WithLabel(label string) Spec {
	s.Label = label
	return s
}

// WithTags returns a copy of the spec with grouping tags.
func (s Spec) WithTags(tags ...string) Spec {
	s.Tags = tags
	return s
}

// WithFormat returns a copy of the spec with a value format.
func (s Spec) WithFormat(f format.Spec) Spec {
	s.Format = f
	return s
}

// WithOverrides returns a copy of a formula spec whose callback is
// superseded by explicit values at the given periods.
func (s Spec) WithOverrides(values map[int]float64) Spec {
	s.Values = values
	return s
}

// HasTag reports whether the spec carries the given tag.
func (s Spec) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// DisplayLabel returns the label if set, else the name.
func (s Spec) DisplayLabel() string {
	if s.Label != "" {
		return s.Label
	}
	return s.Name
}
