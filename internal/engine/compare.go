package engine

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// StrategyOutcome summarizes one strategy's run for a side-by-side view.
type StrategyOutcome struct {
	Strategy      Strategy  `json:"strategy"`
	TotalInterest float64   `json:"totalInterest"`
	SavedInterest float64   `json:"savedInterest"`
	SavedMonths   int       `json:"savedMonths"`
	Months        int       `json:"months"`
	EndDate       time.Time `json:"endDate"`
}

// Comparison contrasts reduce_term and reduce_payment on the same prepayments.
type Comparison struct {
	ReduceTerm    StrategyOutcome `json:"reduceTerm"`
	ReducePayment StrategyOutcome `json:"reducePayment"`
	// PrepaymentMonth is the first month reduce_payment applied extra capital.
	PrepaymentMonth int `json:"prepaymentMonth,omitempty"`
	// PostPrepaymentInstallment is the reduce_payment installment of the row
	// right after PrepaymentMonth; nil when no such row exists.
	PostPrepaymentInstallment *float64 `json:"postPrepaymentInstallment,omitempty"`
}

// Compare runs cfg under both strategies concurrently.
func Compare(ctx context.Context, logger *zap.Logger, cfg Config) (Comparison, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	// Both runs must share one start date.
	cfg = New(logger, cfg).Config()

	var termResult, paymentResult Result
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		c := cfg
		c.Strategy = ReduceTerm
		termResult = New(logger, c).Calculate()
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		c := cfg
		c.Strategy = ReducePayment
		paymentResult = New(logger, c).Calculate()
		return nil
	})
	if err := g.Wait(); err != nil {
		return Comparison{}, err
	}

	comparison := Comparison{
		ReduceTerm:    outcomeOf(ReduceTerm, termResult),
		ReducePayment: outcomeOf(ReducePayment, paymentResult),
	}

	for i, row := range paymentResult.Schedule {
		if !row.HasPrepayment {
			continue
		}
		comparison.PrepaymentMonth = row.Month
		if i+1 < len(paymentResult.Schedule) {
			installment := paymentResult.Schedule[i+1].Installment()
			comparison.PostPrepaymentInstallment = &installment
		}
		break
	}

	logger.Debug("strategy comparison complete",
		zap.String("op", "engine.Compare"),
		zap.Float64("reduceTermSaved", comparison.ReduceTerm.SavedInterest),
		zap.Float64("reducePaymentSaved", comparison.ReducePayment.SavedInterest),
	)

	return comparison, nil
}

func outcomeOf(strategy Strategy, result Result) StrategyOutcome {
	return StrategyOutcome{
		Strategy:      strategy,
		TotalInterest: result.Totals.TotalInterest,
		SavedInterest: result.StrategyImpact.SavedInterest,
		SavedMonths:   result.StrategyImpact.SavedMonths,
		Months:        len(result.Schedule),
		EndDate:       result.StrategyImpact.NewEndDate,
	}
}
