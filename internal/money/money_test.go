package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2HalfUp(t *testing.T) {
	// 0.125 and 0.375 are exact in binary, so these exercise the true
	// half-cent tie case.
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, 0.38, Round2(0.375))
	assert.Equal(t, 10.0, Round2(10.004))
	assert.Equal(t, 14398.56, Round2(14398.559999))
	assert.Equal(t, 0.0, Round2(0))
}

func TestSplitEvenSumsToTotal(t *testing.T) {
	cases := []struct {
		total float64
		n     int
	}{
		{60000.00, 4},
		{100.00, 3},
		{0.01, 2},
		{14406.88, 7},
		{999.99, 12},
	}
	for _, c := range cases {
		parts := SplitEven(c.total, c.n)
		assert.Len(t, parts, c.n)
		var sum float64
		for _, p := range parts {
			sum += p
		}
		assert.InDelta(t, c.total, sum, 0.001, "total=%v n=%d", c.total, c.n)
	}
}

func TestSplitEvenRemainderOnLast(t *testing.T) {
	parts := SplitEven(100.00, 3)
	assert.Equal(t, []float64{33.33, 33.33, 33.34}, parts)
}

func TestSplitEvenTinyTotalStaysNonNegative(t *testing.T) {
	// Less than a cent per installment: the floor share is zero and the
	// final installment carries the whole total.
	parts := SplitEven(0.04, 6)
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0.04}, parts)
	for i, p := range parts {
		assert.GreaterOrEqual(t, p, 0.0, "installment %d", i)
	}
}

func TestSplitEvenInvalidCount(t *testing.T) {
	assert.Nil(t, SplitEven(100, 0))
	assert.Nil(t, SplitEven(100, -1))
}
