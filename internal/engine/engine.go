package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/iwvelando/mortgage-engine/pkg/constants"
	"github.com/iwvelando/mortgage-engine/pkg/datetime"
	"github.com/iwvelando/mortgage-engine/pkg/format"
	"github.com/iwvelando/mortgage-engine/pkg/loans"
	"github.com/iwvelando/mortgage-engine/pkg/mathutil"
	"github.com/iwvelando/mortgage-engine/pkg/optimization"
	"go.uber.org/zap"
)

// Engine runs simulations for a single configuration. It holds no mutable
// state, so one Engine may serve concurrent callers.
type Engine struct {
	logger *zap.Logger
	config Config
}

// New constructs an Engine. A zero StartDate defaults to today at midnight.
// Slices in cfg are copied so later changes by the caller have no effect.
func New(logger *zap.Logger, cfg Config) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.StartDate.IsZero() {
		cfg.StartDate = datetime.StartOfDay(time.Now())
	}
	if cfg.Strategy == "" {
		cfg.Strategy = ReduceTerm
	}
	cfg.Prepayments = append([]loans.Prepayment(nil), cfg.Prepayments...)
	cfg.RefinancingEvents = append([]RefinancingEvent(nil), cfg.RefinancingEvents...)
	return &Engine{logger: logger, config: cfg}
}

// Config returns the normalized configuration.
func (e *Engine) Config() Config {
	cfg := e.config
	cfg.Prepayments = append([]loans.Prepayment(nil), cfg.Prepayments...)
	cfg.RefinancingEvents = append([]RefinancingEvent(nil), cfg.RefinancingEvents...)
	return cfg
}

// baselineConfig strips every borrower action except refinancing.
func (e *Engine) baselineConfig() Config {
	cfg := e.config
	cfg.Prepayments = nil
	cfg.Strategy = ReduceTerm
	cfg.IntelligentStrategy = false
	return cfg
}

// Calculate runs the baseline and the configured simulation and reconciles
// them row by row into interest savings and the strategy impact.
func (e *Engine) Calculate() Result {
	baseline := e.simulate(e.baselineConfig())
	schedule := e.simulate(e.config)

	for i := range schedule {
		if i < len(baseline) {
			schedule[i].InterestSavings = math.Max(0, mathutil.Round(baseline[i].Interest-schedule[i].Interest))
		} else {
			schedule[i].InterestSavings = 0
		}
	}

	baselineTotals := SumSchedule(baseline)
	totals := SumSchedule(schedule)

	result := Result{
		Schedule: schedule,
		Totals:   totals,
		StrategyImpact: StrategyImpact{
			OriginalInterest: baselineTotals.TotalInterest,
			SavedInterest:    math.Max(0, mathutil.Round(baselineTotals.TotalInterest-totals.TotalInterest)),
			SavedMonths:      max(0, e.config.MaxMonths()-len(schedule)),
			NewEndDate:       e.endDate(schedule),
			OriginalEndDate:  e.endDate(baseline),
		},
		Affordability: e.affordability(schedule),
	}

	e.logger.Debug("simulation complete",
		zap.String("op", "engine.Calculate"),
		zap.Int("months", len(schedule)),
		zap.Int("baselineMonths", len(baseline)),
		zap.Float64("savedInterest", result.StrategyImpact.SavedInterest),
		zap.Int("savedMonths", result.StrategyImpact.SavedMonths),
	)

	return result
}

func (e *Engine) endDate(schedule []ScheduleRow) time.Time {
	if len(schedule) == 0 {
		return e.config.StartDate
	}
	return schedule[len(schedule)-1].PaymentDate
}

func (e *Engine) affordability(schedule []ScheduleRow) *Affordability {
	if e.config.MonthlySalary <= 0 {
		return nil
	}
	a := &Affordability{
		LoanAmount:            e.config.LoanAmount(),
		DownPaymentPercentage: mathutil.CalculatePercentage(e.config.DownPayment, e.config.Price),
	}
	if len(schedule) > 0 {
		a.FirstInstallment = schedule[0].Installment()
	}
	a.SalaryPercentage = mathutil.CalculatePercentage(a.FirstInstallment, e.config.MonthlySalary)
	a.Risky = a.SalaryPercentage > constants.AffordabilityRiskThreshold
	return a
}

// CalculateOptimalMonthlyExtra returns the minimum recurring monthly extra
// payment that brings the first crossover to targetMonth or earlier.
func (e *Engine) CalculateOptimalMonthlyExtra(targetMonth int) float64 {
	return e.OptimalMonthlyExtra(targetMonth).Value
}

// OptimalMonthlyExtra is CalculateOptimalMonthlyExtra with the search details.
func (e *Engine) OptimalMonthlyExtra(targetMonth int) optimization.Summary {
	upper := e.config.Price
	summary := optimization.Summary{
		Field:       optimization.FieldMonthlyExtra,
		TargetMonth: targetMonth,
		LowerBound:  0,
		UpperBound:  upper,
	}

	feasible := func(amount float64) bool {
		return e.reachesCrossover(amount, targetMonth)
	}

	if feasible(0) {
		summary.Value = 0
		summary.Converged = true
		summary.ValueDisplay = format.Currency(0)
		e.logger.Debug("crossover target met without extra payments",
			zap.String("op", "engine.OptimalMonthlyExtra"),
			zap.Int("targetMonth", targetMonth),
		)
		return summary
	}

	outcome := optimization.Bisect(0, upper, constants.OptimalExtraIterations, feasible)
	summary.Iterations = outcome.Iterations

	if outcome.Found {
		summary.Value = mathutil.Round(outcome.Value)
		summary.Converged = true
	} else {
		// Best effort: the search settles on the upper bound.
		summary.Value = mathutil.Round(upper)
		summary.Converged = feasible(upper)
		if !summary.Converged {
			summary.Notes = append(summary.Notes, fmt.Sprintf(
				"unable to reach crossover by month %d within bounds %s to %s",
				targetMonth, format.Currency(0), format.Currency(upper)))
		}
	}
	summary.ValueDisplay = format.Currency(summary.Value)

	e.logger.Debug("optimal monthly extra search finished",
		zap.String("op", "engine.OptimalMonthlyExtra"),
		zap.Int("targetMonth", targetMonth),
		zap.Float64("value", summary.Value),
		zap.Int("iterations", summary.Iterations),
		zap.Bool("converged", summary.Converged),
	)
	return summary
}

// reachesCrossover runs a trial with a single recurring monthly prepayment of
// amount and reports whether the first crossover lands by targetMonth.
func (e *Engine) reachesCrossover(amount float64, targetMonth int) bool {
	cfg := e.config
	cfg.Prepayments = []loans.Prepayment{loans.MonthlyRecurring(amount)}
	cfg.Strategy = ReduceTerm
	cfg.IntelligentStrategy = false

	row, ok := firstCrossover(e.simulate(cfg))
	return ok && row.Month <= targetMonth
}
