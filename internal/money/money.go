// internal/money/money.go
package money

import "math"

// Round2 rounds a dollar amount half-up to cents.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// SplitEven divides total into n installments of whole cents. Installments
// 1..n-1 each get an equal floor share of the cents; the final installment
// absorbs the remainder. The parts always sum back to total to the cent and
// never go negative, even for totals smaller than a cent per installment.
func SplitEven(total float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	cents := int64(math.Floor(total*100 + 0.5))
	base := cents / int64(n)
	parts := make([]float64, n)
	for i := 0; i < n-1; i++ {
		parts[i] = float64(base) / 100
	}
	parts[n-1] = float64(cents-base*int64(n-1)) / 100
	return parts
}
