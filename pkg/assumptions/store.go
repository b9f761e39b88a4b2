// Package assumptions holds scalar and period-varying input constants that
// are independent of line items. The store is read-only once a model starts
// evaluating; resolution for a period prefers a period-specific entry over
// the scalar default.
package assumptions

import "fmt"

// NotFoundError reports a lookup of an assumption that has neither a
// period-specific entry nor a scalar default.
type NotFoundError struct {
	Name   string
	Period int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("assumption %s not found for period %d", e.Name, e.Period)
}

// Store maps assumption names to their scalar defaults and per-period
// overrides.
type Store struct {
	scalars  map[string]float64
	byPeriod map[string]map[int]float64
}

// NewStore creates an empty assumption store.
func NewStore() *Store {
	return &Store{
		scalars:  make(map[string]float64),
		byPeriod: make(map[string]map[int]float64),
	}
}

// SetScalar sets the default value for an assumption across all periods.
func (s *Store) SetScalar(name string, value float64) {
	s.scalars[name] = value
}

// SetForPeriod sets the value for an assumption at one specific period,
// taking precedence over any scalar default.
func (s *Store) SetForPeriod(name string, period int, value float64) {
	periods, ok := s.byPeriod[name]
	if !ok {
		periods = make(map[int]float64)
		s.byPeriod[name] = periods
	}
	periods[period] = value
}

// Has reports whether the assumption is defined at all.
func (s *Store) Has(name string) bool {
	if _, ok := s.scalars[name]; ok {
		return true
	}
	_, ok := s.byPeriod[name]
	return ok
}

// Value resolves an assumption for a period: the period-specific entry if
// present, else the scalar default, else NotFoundError.
func (s *Store) Value(name string, period int) (float64, error) {
	if periods, ok := s.byPeriod[name]; ok {
		if value, ok := periods[period]; ok {
			return value, nil
		}
	}
	if value, ok := s.scalars[name]; ok {
		return value, nil
	}
	return 0, &NotFoundError{Name: name, Period: period}
}
