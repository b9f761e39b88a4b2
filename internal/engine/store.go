package engine

import (
	"fmt"

	"github.com/iwvelando/proforma/pkg/lineitem"
)

// cellState tracks the resolution state machine per (name, period):
// unresolved -> resolving -> resolved.
type cellState int

const (
	stateUnresolved cellState = iota
	stateResolving
	stateResolved
)

// cell holds one (name, period) slot. A resolved cell either carries a
// value or records an explicit absence (hasValue false), which is how fixed
// line gaps and pre-issuance generator fields are distinguished from
// evaluation-order bugs.
type cell struct {
	state    cellState
	value    float64
	hasValue bool
}

// valueStore caches computed values keyed by line item name and period.
// Cells are written exactly once per evaluation pass.
type valueStore struct {
	periods map[int]bool
	cells   map[string]map[int]*cell
}

func newValueStore(names []string, periods []int) *valueStore {
	store := &valueStore{
		periods: make(map[int]bool, len(periods)),
		cells:   make(map[string]map[int]*cell, len(names)),
	}
	for _, period := range periods {
		store.periods[period] = true
	}
	for _, name := range names {
		row := make(map[int]*cell, len(periods))
		for _, period := range periods {
			row[period] = &cell{}
		}
		store.cells[name] = row
	}
	return store
}

// cellFor returns the cell for a known line item, or a MissingValueError
// when the period is outside the model range. Callers are responsible for
// name existence checks.
func (s *valueStore) cellFor(name string, period int) (*cell, error) {
	if !s.periods[period] {
		return nil, &lineitem.MissingValueError{Name: name, Period: period, Reason: lineitem.ReasonOutOfRange}
	}
	return s.cells[name][period], nil
}

// finalize writes a resolved value into a cell. Overwriting an already
// resolved cell is an internal consistency violation.
func (s *valueStore) finalize(name string, period int, value float64, hasValue bool) error {
	c, err := s.cellFor(name, period)
	if err != nil {
		return err
	}
	if c.state == stateResolved {
		return fmt.Errorf("value for %s at period %d already finalized", name, period)
	}
	c.state = stateResolved
	c.value = value
	c.hasValue = hasValue
	return nil
}

// read returns a finalized value. It fails with the appropriate
// MissingValueError reason for unresolved cells, recorded absences, and
// out-of-range periods.
func (s *valueStore) read(name string, period int) (float64, error) {
	c, err := s.cellFor(name, period)
	if err != nil {
		return 0, err
	}
	if c.state != stateResolved {
		return 0, &lineitem.MissingValueError{Name: name, Period: period, Reason: lineitem.ReasonNotComputed}
	}
	if !c.hasValue {
		return 0, &lineitem.MissingValueError{Name: name, Period: period, Reason: lineitem.ReasonNoValue}
	}
	return c.value, nil
}
