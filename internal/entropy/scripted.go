package entropy

// Fixed always returns the same value. Useful for forcing or suppressing
// probabilistic events: Fixed(0) makes every trial succeed, Fixed(0.999...)
// makes every trial with p < 1 fail.
type Fixed float64

// Float64 implements Source.
func (f Fixed) Float64() float64 {
	return float64(f)
}
