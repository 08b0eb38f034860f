package engine

import (
	"math"

	"github.com/iwvelando/mortgage-engine/internal/strategy"
	"github.com/iwvelando/mortgage-engine/pkg/constants"
	"github.com/iwvelando/mortgage-engine/pkg/datetime"
	"github.com/iwvelando/mortgage-engine/pkg/loans"
	"github.com/iwvelando/mortgage-engine/pkg/mathutil"
	"github.com/iwvelando/mortgage-engine/pkg/rates"
	"go.uber.org/zap"
)

// rateState is the rate regime currently in force.
type rateState struct {
	annual  float64
	monthly float64
	daily   float64
}

func newRateState(annual float64) rateState {
	return rateState{
		annual:  annual,
		monthly: rates.ToMonthlyRate(annual),
		daily:   rates.ToDailyRate(annual),
	}
}

// simulate runs the month loop for cfg. It stops at the contractual term or
// as soon as the balance falls to the payoff epsilon, whichever comes first.
func (e *Engine) simulate(cfg Config) []ScheduleRow {
	maxMonths := cfg.MaxMonths()
	loanAmount := cfg.LoanAmount()
	fireInsurance := mathutil.Round(mathutil.ApplyPercentage(cfg.Price, cfg.FireInsuranceRate))
	plan := NewRefinancingPlan(cfg.RefinancingEvents)
	machine := strategy.NewMachine(cfg.IntelligentStrategy, cfg.AggressiveContinuity)

	rate := newRateState(cfg.AnnualRate)
	balance := loanAmount
	quota := loans.CalculateQuota(loanAmount, rate.monthly, maxMonths)

	schedule := make([]ScheduleRow, 0, max(maxMonths, 0))
	previousDate := cfg.StartDate
	var periodLabel string

	for month := 1; month <= maxMonths; month++ {
		if balance <= constants.PayoffEpsilon {
			break
		}

		paymentDate := datetime.AddMonths(cfg.StartDate, month)
		days := datetime.DaysBetween(previousDate, paymentDate)
		previousDate = paymentDate

		var attached *RefinancingEvent
		if event, ok := plan.EventForMonth(month); ok {
			rate = newRateState(event.NewRate)
			// The quota is set on the balance before closing costs; the costs
			// then accrue interest with the rest of the balance.
			quota = loans.CalculateQuota(balance, rate.monthly, maxMonths-month+1)
			balance += event.ClosingCosts
			periodLabel = event.DisplayLabel()
			attached = &event

			e.logger.Debug("applying refinancing event",
				zap.String("op", "engine.simulate"),
				zap.Int("month", month),
				zap.Float64("newRate", event.NewRate),
				zap.Float64("closingCosts", event.ClosingCosts),
				zap.Float64("quota", quota),
			)
		}

		interest := mathutil.Round(balance * rates.PeriodFactor(rate.daily, days))
		desgravamen := mathutil.Round(mathutil.ApplyPercentage(balance, cfg.DesgravamenRate))

		amortization := mathutil.Round(quota - interest)
		if amortization > balance {
			// Last payment correction.
			amortization = balance
			quota = amortization + interest
		}

		// Month 1 never counts as the equilibrium crossover.
		crossover := month > 1 && amortization > interest
		wasInEquilibrium := machine.State().InEquilibrium()
		extraCapital, status := machine.Step(crossover, loans.ExtraCapitalFor(month, cfg.Prepayments))
		if !wasInEquilibrium && machine.State().InEquilibrium() {
			e.logger.Debug("equilibrium reached",
				zap.String("op", "engine.simulate"),
				zap.Int("month", month),
				zap.Stringer("state", machine.State()),
			)
		}

		if amortization+extraCapital > balance {
			extraCapital = math.Max(0, balance-amortization)
		}

		totalAmortization := amortization + extraCapital
		balanceEnd := math.Max(0, mathutil.Round(balance-totalAmortization))

		basePayment := interest + amortization + desgravamen + fireInsurance
		taxBase := mathutil.Round(basePayment * constants.TransactionTaxRate)
		taxExtra := mathutil.Round(extraCapital * constants.TransactionTaxRate)
		tax := taxBase + taxExtra

		schedule = append(schedule, ScheduleRow{
			Month:               month,
			PaymentDate:         paymentDate,
			DaysInPeriod:        days,
			AnnualRate:          rate.annual,
			DailyRate:           rate.daily,
			BalanceStart:        balance,
			Interest:            interest,
			Desgravamen:         desgravamen,
			FireInsurance:       fireInsurance,
			FinancialPayment:    quota,
			Amortization:        amortization,
			ExtraCapital:        extraCapital,
			TotalAmortization:   totalAmortization,
			TransactionTax:      tax,
			TransactionTaxBase:  taxBase,
			TransactionTaxExtra: taxExtra,
			Payment:             basePayment + extraCapital + tax,
			BalanceEnd:          balanceEnd,
			HasPrepayment:       extraCapital > 0,
			IsCrossover:         totalAmortization > interest,
			Status:              status,
			RefinancingEvent:    attached,
			BackgroundColor:     plan.ColorForMonth(month),
			PeriodLabel:         periodLabel,
		})

		balance = balanceEnd

		if cfg.Strategy == ReducePayment && extraCapital > 0 && balance > 0 {
			if remaining := maxMonths - month; remaining > 0 {
				quota = loans.CalculateQuota(balance, rate.monthly, remaining)
			}
		}
	}

	return schedule
}
