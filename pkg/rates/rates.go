// Package rates converts effective annual interest rates into the periodic
// rates used by the amortization engine.
package rates

import (
	"math"

	"github.com/iwvelando/mortgage-engine/pkg/constants"
)

// ToMonthlyRate converts an effective annual rate expressed as a percentage
// (TEA) into the effective monthly rate (TEM), compounding base 12.
func ToMonthlyRate(annualRatePercent float64) float64 {
	return math.Pow(1+annualRatePercent/constants.PercentageMultiplier, 1.0/constants.MonthsPerYear) - 1
}

// ToDailyRate converts an effective annual rate expressed as a percentage
// (TEA) into the effective daily rate (TED), compounding base 360.
func ToDailyRate(annualRatePercent float64) float64 {
	return math.Pow(1+annualRatePercent/constants.PercentageMultiplier, 1.0/constants.DaysPerYearBase) - 1
}

// PeriodFactor returns the interest factor accrued over the given number of
// days at the given daily rate.
func PeriodFactor(dailyRate float64, days int) float64 {
	return math.Pow(1+dailyRate, float64(days)) - 1
}

