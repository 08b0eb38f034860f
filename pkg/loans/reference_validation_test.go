package loans

import (
	"testing"

	"github.com/iwvelando/mortgage-engine/pkg/mathutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ReferencePayment represents a single payment from the reference schedule
type ReferencePayment struct {
	Month            int
	Payment          float64
	PrincipalPayment float64
	Interest         float64
	LoanBalance      float64
}

// getReferenceSchedule returns an authoritative amortization schedule.
// Loan amount 175,000, nominal rate 4.5% (0.375% per month), 360 months.
func getReferenceSchedule() []ReferencePayment {
	return []ReferencePayment{
		{1, 886.70, 230.45, 656.25, 174769.55},
		{2, 886.70, 231.31, 655.39, 174538.24},
		{3, 886.70, 232.18, 654.52, 174306.06},
		{12, 886.70, 240.14, 646.56, 172176.85},
		{24, 886.70, 251.17, 635.53, 169224.01},
		{60, 886.70, 287.40, 599.30, 159526.36},
		{120, 886.70, 359.76, 526.94, 140156.51},
		{240, 886.70, 563.75, 322.95, 85557.02},
		{359, 886.70, 880.09, 6.61, 883.39},
		{360, 886.70, 883.39, 3.31, 0.00},
	}
}

func TestCalculateQuotaAgainstReferenceSchedule(t *testing.T) {
	const (
		principal = 175000.0
		rate      = 0.045 / 12
		term      = 360
	)

	quota := CalculateQuota(principal, rate, term)
	require.InDelta(t, 886.70, quota, 0.01)

	balance := principal
	byMonth := make(map[int]ReferencePayment)
	for month := 1; month <= term; month++ {
		interest := balance * rate
		amortization := quota - interest
		if month == term {
			amortization = balance
		}
		balance -= amortization
		if balance < 0 {
			balance = 0
		}
		byMonth[month] = ReferencePayment{
			Month:            month,
			Payment:          quota,
			PrincipalPayment: amortization,
			Interest:         interest,
			LoanBalance:      balance,
		}
	}

	for _, ref := range getReferenceSchedule() {
		got := byMonth[ref.Month]
		assert.InDelta(t, ref.Interest, mathutil.Round(got.Interest), 0.02, "interest at month %d", ref.Month)
		assert.InDelta(t, ref.PrincipalPayment, mathutil.Round(got.PrincipalPayment), 0.02, "principal at month %d", ref.Month)
		assert.InDelta(t, ref.LoanBalance, mathutil.Round(got.LoanBalance), 1.0, "balance at month %d", ref.Month)
	}
}
