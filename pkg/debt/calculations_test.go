package debt

import (
	"math"
	"testing"

	"github.com/iwvelando/proforma/pkg/constants"
)

func TestCalculateAnnualPayment(t *testing.T) {
	tests := []struct {
		name          string
		par           float64
		rate          float64
		term          int
		expectedRange []float64 // [min, max] expected range
	}{
		{
			name:          "Three year bond at 5%",
			par:           1000,
			rate:          0.05,
			term:          3,
			expectedRange: []float64{367, 368}, // Around $367.21
		},
		{
			name:          "Five year bond at 5%",
			par:           500000,
			rate:          0.05,
			term:          5,
			expectedRange: []float64{115000, 116000}, // Around $115,487
		},
		{
			name:          "Zero interest",
			par:           12000,
			rate:          0.0,
			term:          6,
			expectedRange: []float64{2000, 2000}, // Exactly $2000
		},
		{
			name:          "High rate short term",
			par:           10000,
			rate:          0.18,
			term:          3,
			expectedRange: []float64{4590, 4610}, // Around $4599
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateAnnualPayment(tt.par, tt.rate, tt.term)

			if result < tt.expectedRange[0] || result > tt.expectedRange[1] {
				t.Errorf("CalculateAnnualPayment() = %.2f, expected range [%.2f, %.2f]",
					result, tt.expectedRange[0], tt.expectedRange[1])
			}
		})
	}
}

func TestBuildSchedulePrincipalSumsToPar(t *testing.T) {
	tests := []struct {
		name string
		par  float64
		rate float64
		term int
	}{
		{
			name: "Short term",
			par:  1000,
			rate: 0.05,
			term: 3,
		},
		{
			name: "Long term",
			par:  750000,
			rate: 0.045,
			term: 30,
		},
		{
			name: "Awkward par amount",
			par:  333333.33,
			rate: 0.0725,
			term: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule := BuildSchedule(tt.par, tt.rate, tt.term, 2024)

			if len(schedule) != tt.term {
				t.Fatalf("BuildSchedule() produced %d payments, expected %d", len(schedule), tt.term)
			}

			totalPrincipal := 0.0
			for _, payment := range schedule {
				totalPrincipal += payment.Principal
			}
			if math.Abs(totalPrincipal-tt.par) > constants.AmortizationTolerance {
				t.Errorf("total principal = %.8f, expected %.8f (tolerance %g)",
					totalPrincipal, tt.par, float64(constants.AmortizationTolerance))
			}

			final := schedule[len(schedule)-1]
			if final.BalanceAfter != 0 {
				t.Errorf("final BalanceAfter = %.8f, expected exactly 0", final.BalanceAfter)
			}
		})
	}
}

func TestBuildScheduleZeroRate(t *testing.T) {
	par := 1200.0
	term := 4
	schedule := BuildSchedule(par, 0, term, 2025)

	for i, payment := range schedule {
		if math.Abs(payment.Principal-par/float64(term)) > constants.AmortizationTolerance {
			t.Errorf("payment %d principal = %.4f, expected %.4f", i, payment.Principal, par/float64(term))
		}
		if payment.Interest != 0 {
			t.Errorf("payment %d interest = %.4f, expected 0", i, payment.Interest)
		}
	}
}

func TestBuildScheduleLevelPayments(t *testing.T) {
	schedule := BuildSchedule(1000, 0.05, 3, 2024)

	// Every payment except possibly the last equals the level annual payment.
	annual := CalculateAnnualPayment(1000, 0.05, 3)
	for i, payment := range schedule {
		if math.Abs(payment.Payment-annual) > 1e-6 {
			t.Errorf("payment %d total = %.6f, expected level payment %.6f", i, payment.Payment, annual)
		}
	}

	// Interest declines as the balance amortizes.
	for i := 1; i < len(schedule); i++ {
		if schedule[i].Interest >= schedule[i-1].Interest {
			t.Errorf("interest did not decline: payment %d = %.4f, payment %d = %.4f",
				i-1, schedule[i-1].Interest, i, schedule[i].Interest)
		}
	}
}

func TestOutstandingBalance(t *testing.T) {
	issuances := []Issuance{
		{Period: 2024, Par: 1000, Schedule: BuildSchedule(1000, 0.05, 2, 2024)},
		{Period: 2025, Par: 500, Schedule: BuildSchedule(500, 0.05, 2, 2025)},
	}

	tests := []struct {
		name      string
		period    int
		wantFound bool
		expected  float64
	}{
		{
			name:      "Before any issuance",
			period:    2023,
			wantFound: false,
		},
		{
			name:      "First issuance only",
			period:    2024,
			wantFound: true,
			expected:  issuances[0].Schedule[0].BalanceAfter,
		},
		{
			name:      "Overlap period sums both",
			period:    2025,
			wantFound: true,
			expected:  issuances[1].Schedule[0].BalanceAfter, // first issuance retires in 2025
		},
		{
			name:      "All retired",
			period:    2026,
			wantFound: true,
			expected:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balance, found := OutstandingBalance(issuances, tt.period)
			if found != tt.wantFound {
				t.Fatalf("OutstandingBalance(%d) found = %v, expected %v", tt.period, found, tt.wantFound)
			}
			if found && math.Abs(balance-tt.expected) > constants.AmortizationTolerance {
				t.Errorf("OutstandingBalance(%d) = %.6f, expected %.6f", tt.period, balance, tt.expected)
			}
		})
	}
}

func TestScheduledTotalsAcrossIssuances(t *testing.T) {
	issuances := []Issuance{
		{Period: 2024, Par: 1000, Schedule: BuildSchedule(1000, 0.05, 2, 2024)},
		{Period: 2025, Par: 500, Schedule: BuildSchedule(500, 0.05, 2, 2025)},
	}

	// 2025 carries the first issuance's payoff tail plus the second
	// issuance's first payment.
	principal, found := ScheduledPrincipal(issuances, 2025)
	if !found {
		t.Fatalf("ScheduledPrincipal(2025) found = false, expected true")
	}
	expected := issuances[0].Schedule[1].Principal + issuances[1].Schedule[0].Principal
	if math.Abs(principal-expected) > constants.AmortizationTolerance {
		t.Errorf("ScheduledPrincipal(2025) = %.6f, expected %.6f", principal, expected)
	}

	if _, found := ScheduledInterest(issuances, 2027); found {
		t.Errorf("ScheduledInterest(2027) found = true, expected false after all schedules end")
	}
}
