// Package engine implements the dependency-resolving evaluation core: it
// computes every line item's value for every period of a model, respecting
// same-period formula dependencies, prior-period references, and stateful
// generators. Reader-contract errors (MissingValueError,
// UnknownReferenceError) are defined alongside the reader interfaces in
// pkg/lineitem; the errors below are specific to model construction and
// evaluation.
package engine

import (
	"fmt"
	"strings"
)

// DefinitionError reports an invalid model definition detected at
// construction time (duplicate names, missing formula callbacks, invalid
// period sequences).
type DefinitionError struct {
	Reason string
}

func (e *DefinitionError) Error() string {
	return "model definition: " + e.Reason
}

// CycleError reports a same-period circular dependency between line items.
// Chain holds the names involved, in resolution order, ending with the
// revisited item.
type CycleError struct {
	Period int
	Chain  []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("same-period dependency cycle at period %d: %s",
		e.Period, strings.Join(e.Chain, " -> "))
}
