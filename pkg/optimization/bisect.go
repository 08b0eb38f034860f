package optimization

// Outcome is the result of a bisection search.
type Outcome struct {
	// Value is the smallest feasible value seen; meaningful only when Found.
	Value      float64
	Found      bool
	Iterations int
	Lower      float64
	Upper      float64
}

// Bisect searches [lower, upper] for the smallest value accepted by feasible,
// assuming feasibility is monotonic (once feasible, larger values stay
// feasible). It always performs exactly iterations evaluations.
func Bisect(lower, upper float64, iterations int, feasible func(float64) bool) Outcome {
	outcome := Outcome{Lower: lower, Upper: upper}
	for i := 0; i < iterations; i++ {
		mid := outcome.Lower + (outcome.Upper-outcome.Lower)/2
		outcome.Iterations++
		if feasible(mid) {
			outcome.Value = mid
			outcome.Found = true
			outcome.Upper = mid
		} else {
			outcome.Lower = mid
		}
	}
	return outcome
}
