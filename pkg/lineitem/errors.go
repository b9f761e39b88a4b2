package lineitem

import "fmt"

// UnknownReferenceError reports a reference to a line item or tag that does
// not exist in the model.
type UnknownReferenceError struct {
	Ref  string
	Kind string // "line item" or "tag"
}

func (e *UnknownReferenceError) Error() string {
	kind := e.Kind
	if kind == "" {
		kind = "line item"
	}
	return fmt.Sprintf("unknown %s %s", kind, e.Ref)
}

// MissingReason identifies why a value lookup failed.
type MissingReason int

const (
	// ReasonNotComputed means the (name, period) cell has not been
	// resolved; outside a running evaluation this indicates an
	// evaluation-order bug or a read before Evaluate.
	ReasonNotComputed MissingReason = iota

	// ReasonNoValue means the cell resolved to a legitimate absence: a
	// fixed line gap or a generator field with no active issuance.
	ReasonNoValue

	// ReasonOutOfRange means the period lies outside the model's period
	// sequence.
	ReasonOutOfRange
)

func (r MissingReason) String() string {
	switch r {
	case ReasonNoValue:
		return "no data"
	case ReasonOutOfRange:
		return "period out of model range"
	default:
		return "not computed"
	}
}

// MissingValueError reports that a (name, period) value is unavailable,
// with the reason distinguishing evaluation-order bugs from legitimate
// absences.
type MissingValueError struct {
	Name   string
	Period int
	Reason MissingReason
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("no value for line item %s at period %d: %s", e.Name, e.Period, e.Reason)
}
