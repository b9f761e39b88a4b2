package debt

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/iwvelando/proforma/pkg/constants"
	"github.com/iwvelando/proforma/pkg/format"
	"github.com/iwvelando/proforma/pkg/lineitem"
	"github.com/iwvelando/proforma/pkg/mathutil"
)

// Config describes one family of bond issuances sharing a common interest
// rate and term. A new issuance is detected whenever the par amount line
// item reports a positive value for a period.
type Config struct {
	// Name prefixes the generated field line items ({name}_{field}).
	Name string

	// ParItem is the line item reporting new par amounts per period.
	ParItem string

	// InterestRate is the annual rate as a fraction (0.05 = 5%).
	InterestRate float64

	// Term is the number of annual payments per issuance.
	Term int

	// Tags are applied to every generated field line item.
	Tags []string
}

// Calculator tracks bond issuances and their amortization schedules. It
// implements lineitem.Generator; all field line items derived from one
// config share a single Calculator so they always reflect an identical set
// of issuances.
type Calculator struct {
	logger    *zap.Logger
	cfg       Config
	issuances []Issuance
	processed map[int]bool
}

// NewCalculator creates a calculator for the given config.
// If logger is nil, it will use a no-op logger to prevent panics.
func NewCalculator(logger *zap.Logger, cfg Config) (*Calculator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Name == "" {
		return nil, fmt.Errorf("debt config requires a name")
	}
	if cfg.ParItem == "" {
		return nil, fmt.Errorf("debt config %s requires a par amount line item", cfg.Name)
	}
	if cfg.Term <= 0 {
		return nil, fmt.Errorf("debt config %s requires a positive term, got %d", cfg.Name, cfg.Term)
	}
	if cfg.InterestRate < 0 {
		return nil, fmt.Errorf("debt config %s requires a non-negative interest rate, got %f", cfg.Name, cfg.InterestRate)
	}
	return &Calculator{
		logger:    logger,
		cfg:       cfg,
		processed: make(map[int]bool),
	}, nil
}

// Name returns the generator name used to prefix field line items.
func (c *Calculator) Name() string {
	return c.cfg.Name
}

// FieldNames returns the fields this generator produces.
func (c *Calculator) FieldNames() []string {
	return []string{
		constants.FieldPrincipal,
		constants.FieldInterest,
		constants.FieldDebtOutstanding,
		constants.FieldProceeds,
	}
}

// Advance processes one period: it reads the par amount line item and, on a
// positive value, layers a new amortization schedule starting at that
// period. Advancing the same period twice is a no-op, so the same issuance
// is never double-counted.
func (c *Calculator) Advance(period int, values lineitem.ValueReader) error {
	if c.processed[period] {
		return nil
	}

	par, err := values.OffsetOr(c.cfg.ParItem, 0, 0)
	if err != nil {
		return err
	}

	if mathutil.IsPositive(par) {
		c.logger.Debug(fmt.Sprintf("%d: issuing %.2f of debt for %s over %d periods",
			period, par, c.cfg.Name, c.cfg.Term),
			zap.String("op", "debt.Advance"),
		)
		c.issuances = append(c.issuances, Issuance{
			Period:   period,
			Par:      par,
			Schedule: BuildSchedule(par, c.cfg.InterestRate, c.cfg.Term, period),
		})
	}

	c.processed[period] = true
	return nil
}

// FieldValue returns the field's value at the given period, summed over
// every issuance whose schedule covers it. The bool result is false when no
// issuance contributes, which is a legitimate absence rather than zero.
func (c *Calculator) FieldValue(field string, period int) (float64, bool) {
	switch field {
	case constants.FieldPrincipal:
		return ScheduledPrincipal(c.issuances, period)
	case constants.FieldInterest:
		return ScheduledInterest(c.issuances, period)
	case constants.FieldDebtOutstanding:
		return OutstandingBalance(c.issuances, period)
	case constants.FieldProceeds:
		total := 0.00
		found := false
		for _, issuance := range c.issuances {
			if issuance.Period == period {
				total += issuance.Par
				found = true
			}
		}
		return total, found
	}
	return 0, false
}

// Issuances returns the issuances detected so far, in issue order.
func (c *Calculator) Issuances() []Issuance {
	return c.issuances
}

// NewDebtLines creates the shared calculator for a debt config along with
// its field line item specs (principal, interest, debt_outstanding,
// proceeds), named {config name}_{field}.
func NewDebtLines(logger *zap.Logger, cfg Config) (*Calculator, []lineitem.Spec, error) {
	calc, err := NewCalculator(logger, cfg)
	if err != nil {
		return nil, nil, err
	}

	labels := map[string]string{
		constants.FieldPrincipal:       "Principal",
		constants.FieldInterest:        "Interest",
		constants.FieldDebtOutstanding: "Debt Outstanding",
		constants.FieldProceeds:        "Bond Proceeds",
	}

	specs := make([]lineitem.Spec, 0, len(calc.FieldNames()))
	for _, field := range calc.FieldNames() {
		spec := lineitem.NewGeneratorField(calc, field).
			WithLabel(fmt.Sprintf("%s %s", cfg.Name, labels[field])).
			WithTags(cfg.Tags...).
			WithFormat(format.Currency())
		specs = append(specs, spec)
	}

	return calc, specs, nil
}
