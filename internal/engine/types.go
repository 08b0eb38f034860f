// Package engine computes French-system (constant quota) amortization
// schedules with variable rate periods, prepayments, the intelligent payoff
// strategy, refinancing and the ITF transaction tax.
package engine

import (
	"time"

	"github.com/iwvelando/mortgage-engine/internal/strategy"
	"github.com/iwvelando/mortgage-engine/pkg/loans"
)

// Strategy selects how extra principal is absorbed by the schedule.
type Strategy string

const (
	// ReduceTerm keeps the quota and shortens the schedule.
	ReduceTerm Strategy = "reduce_term"
	// ReducePayment keeps the schedule length and lowers the quota.
	ReducePayment Strategy = "reduce_payment"
)

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	return s == ReduceTerm || s == ReducePayment
}

// Config is the input of a simulation. Rates are percentages: AnnualRate is
// the TEA, DesgravamenRate is monthly on the outstanding balance and
// FireInsuranceRate is monthly on the price.
type Config struct {
	Price                float64            `json:"price"`
	DownPayment          float64            `json:"downPayment"`
	AnnualRate           float64            `json:"annualRate"`
	TermYears            int                `json:"termYears"`
	DesgravamenRate      float64            `json:"desgravamenRate"`
	FireInsuranceRate    float64            `json:"fireInsuranceRate"`
	Prepayments          []loans.Prepayment `json:"prepayments,omitempty"`
	Strategy             Strategy           `json:"strategy"`
	StartDate            time.Time          `json:"startDate"`
	MonthlySalary        float64            `json:"monthlySalary,omitempty"`
	IntelligentStrategy  bool               `json:"intelligentStrategy,omitempty"`
	AggressiveContinuity bool               `json:"aggressiveContinuity,omitempty"`
	RefinancingEvents    []RefinancingEvent `json:"refinancingEvents,omitempty"`
}

// LoanAmount is the financed principal.
func (c Config) LoanAmount() float64 {
	return c.Price - c.DownPayment
}

// MaxMonths bounds the number of simulated periods.
func (c Config) MaxMonths() int {
	return c.TermYears * 12
}

// ScheduleRow is one elapsed month of the schedule.
type ScheduleRow struct {
	Month        int       `json:"month"`
	PaymentDate  time.Time `json:"paymentDate"`
	DaysInPeriod int       `json:"daysInPeriod"`
	AnnualRate   float64   `json:"tea"`
	DailyRate    float64   `json:"ted"`

	BalanceStart  float64 `json:"balanceStart"`
	Interest      float64 `json:"interest"`
	Desgravamen   float64 `json:"desgravamen"`
	FireInsurance float64 `json:"fireInsurance"`

	// FinancialPayment is the standing quota (capital plus interest) in force.
	FinancialPayment  float64 `json:"financialPayment"`
	Amortization      float64 `json:"amortization"`
	ExtraCapital      float64 `json:"extraCapital"`
	TotalAmortization float64 `json:"totalAmortization"`

	TransactionTax      float64 `json:"itf"`
	TransactionTaxBase  float64 `json:"itfBase"`
	TransactionTaxExtra float64 `json:"itfExtra"`
	Payment             float64 `json:"payment"`
	BalanceEnd          float64 `json:"balanceEnd"`

	HasPrepayment   bool            `json:"hasPrepayment"`
	IsCrossover     bool            `json:"isCrossover"`
	InterestSavings float64         `json:"interestSavings"`
	Status          strategy.Status `json:"status"`

	RefinancingEvent *RefinancingEvent `json:"refinancingEvent,omitempty"`
	BackgroundColor  string            `json:"backgroundColor,omitempty"`
	PeriodLabel      string            `json:"periodLabel,omitempty"`
}

// Installment is the recurring amount owed excluding extra capital and tax.
func (r ScheduleRow) Installment() float64 {
	return r.FinancialPayment + r.Desgravamen + r.FireInsurance
}

// Totals aggregates a schedule.
type Totals struct {
	TotalInterest  float64 `json:"totalInterest"`
	TotalCapital   float64 `json:"totalCapital"`
	TotalExtra     float64 `json:"totalExtra"`
	TotalInsurance float64 `json:"totalInsurance"`
	TotalPayment   float64 `json:"totalPayment"`
	TotalITF       float64 `json:"totalITF"`
}

// Add folds a row into the totals.
func (t Totals) Add(row ScheduleRow) Totals {
	t.TotalInterest += row.Interest
	t.TotalCapital += row.TotalAmortization
	t.TotalExtra += row.ExtraCapital
	t.TotalInsurance += row.Desgravamen + row.FireInsurance
	t.TotalPayment += row.Payment
	t.TotalITF += row.TransactionTax
	return t
}

// SumSchedule folds every row of a schedule into Totals.
func SumSchedule(schedule []ScheduleRow) Totals {
	var totals Totals
	for _, row := range schedule {
		totals = totals.Add(row)
	}
	return totals
}

// StrategyImpact compares the configured run against the unassisted baseline.
type StrategyImpact struct {
	OriginalInterest float64   `json:"originalInterest"`
	SavedInterest    float64   `json:"savedInterest"`
	SavedMonths      int       `json:"savedMonths"`
	NewEndDate       time.Time `json:"newEndDate"`
	OriginalEndDate  time.Time `json:"originalEndDate"`
}

// Affordability relates the first installment to the borrower's salary.
type Affordability struct {
	LoanAmount            float64 `json:"loanAmount"`
	DownPaymentPercentage float64 `json:"downPaymentPercentage"`
	FirstInstallment      float64 `json:"firstInstallment"`
	SalaryPercentage      float64 `json:"salaryPercentage"`
	Risky                 bool    `json:"risky"`
}

// Result is the output of Engine.Calculate.
type Result struct {
	Schedule       []ScheduleRow  `json:"schedule"`
	Totals         Totals         `json:"totals"`
	StrategyImpact StrategyImpact `json:"strategyImpact"`
	Affordability  *Affordability `json:"affordability,omitempty"`
}

// FirstCrossover returns the first row flagged as a crossover, if any.
func (r Result) FirstCrossover() (ScheduleRow, bool) {
	return firstCrossover(r.Schedule)
}

func firstCrossover(schedule []ScheduleRow) (ScheduleRow, bool) {
	for _, row := range schedule {
		if row.IsCrossover {
			return row, true
		}
	}
	return ScheduleRow{}, false
}
