// Package debt provides level annual debt service amortization and the
// generator that layers bond issuance schedules into a model.
package debt

import (
	"math"

	"github.com/iwvelando/proforma/pkg/constants"
)

// Payment holds the values for one scheduled annual payment.
type Payment struct {
	Period        int
	Payment       float64
	Principal     float64
	Interest      float64
	BalanceBefore float64
	BalanceAfter  float64
}

// Issuance is one bond issuance and its full amortization schedule.
type Issuance struct {
	Period   int
	Par      float64
	Schedule []Payment
}

// CalculateAnnualPayment calculates the level annual payment for a debt
// issuance using the standard amortization formula. The rate is an annual
// fraction (0.05 = 5%).
func CalculateAnnualPayment(par, rate float64, term int) float64 {
	if rate == 0 {
		// For zero interest, simply divide the par amount by term
		return par / float64(term)
	}

	power := math.Pow(1.00+rate, float64(term))
	discountFactor := (power - 1.00) / power
	return par * rate / discountFactor
}

// CalculateInterestPayment calculates the interest portion of an annual
// payment on the remaining balance.
func CalculateInterestPayment(balance, rate float64) float64 {
	return balance * rate
}

// BuildSchedule generates the full amortization schedule for one issuance
// of the given par amount starting at startPeriod. The final payment's
// principal is forced to the remaining balance so the issuance retires
// exactly, absorbing floating-point drift.
func BuildSchedule(par, rate float64, term, startPeriod int) []Payment {
	annualPayment := CalculateAnnualPayment(par, rate, term)

	schedule := make([]Payment, 0, term)
	balance := par
	for i := 0; i < term; i++ {
		var payment Payment
		payment.Period = startPeriod + i
		payment.BalanceBefore = balance
		payment.Interest = CalculateInterestPayment(balance, rate)
		if i == term-1 {
			payment.Principal = balance
		} else {
			payment.Principal = annualPayment - payment.Interest
		}
		payment.Payment = payment.Principal + payment.Interest
		balance -= payment.Principal
		payment.BalanceAfter = balance
		schedule = append(schedule, payment)
	}

	// Guard against residual drift below the amortization tolerance.
	if math.Abs(schedule[term-1].BalanceAfter) < constants.AmortizationTolerance {
		schedule[term-1].BalanceAfter = 0.00
	}

	return schedule
}

// ScheduledPrincipal returns the total principal due across all issuances
// at the given period.
func ScheduledPrincipal(issuances []Issuance, period int) (float64, bool) {
	return sumScheduled(issuances, period, func(p Payment) float64 { return p.Principal })
}

// ScheduledInterest returns the total interest due across all issuances at
// the given period.
func ScheduledInterest(issuances []Issuance, period int) (float64, bool) {
	return sumScheduled(issuances, period, func(p Payment) float64 { return p.Interest })
}

func sumScheduled(issuances []Issuance, period int, extract func(Payment) float64) (float64, bool) {
	total := 0.00
	found := false
	for _, issuance := range issuances {
		for _, payment := range issuance.Schedule {
			if payment.Period == period {
				total += extract(payment)
				found = true
			}
		}
	}
	return total, found
}

// OutstandingBalance returns the remaining principal across all issuances
// issued at or before the given period, measured after that period's
// principal payments. The bool result is false when no issuance has
// occurred yet.
func OutstandingBalance(issuances []Issuance, period int) (float64, bool) {
	total := 0.00
	found := false
	for _, issuance := range issuances {
		if issuance.Period > period {
			continue
		}
		found = true
		last := issuance.Schedule[len(issuance.Schedule)-1]
		if period >= last.Period {
			// Fully retired; contributes nothing going forward.
			continue
		}
		for _, payment := range issuance.Schedule {
			if payment.Period == period {
				total += payment.BalanceAfter
				break
			}
		}
	}
	return total, found
}
