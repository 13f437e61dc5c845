package deal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseInputs() CommissionInputs {
	return CommissionInputs{
		DealValue:          1_000_000,
		CommissionPercent:  6,
		ReferralFeePercent: 10,
		HousePercent:       20,
		OriginationPercent: 33.33,
		SitePercent:        33.33,
		DealPercent:        33.34,
	}
}

func TestComputeCommissionWorkedExample(t *testing.T) {
	der := ComputeCommission(baseInputs())

	assert.Equal(t, 60000.00, der.Fee)
	assert.Equal(t, 6000.00, der.ReferralFeeUSD)
	assert.Equal(t, 54000.00, der.GCI)
	assert.Equal(t, 10800.00, der.HouseUSD)
	assert.Equal(t, 43200.00, der.AGCI)
	assert.Equal(t, 14398.56, der.OriginationUSD)
	assert.Equal(t, 14398.56, der.SiteUSD)
	assert.Equal(t, 14402.88, der.DealUSD)
}

func TestComputeCommissionIsDeterministic(t *testing.T) {
	in := baseInputs()
	first := ComputeCommission(in)
	second := ComputeCommission(in)
	assert.Equal(t, first, second)
}

func TestComputeCommissionFlatFeeOverride(t *testing.T) {
	in := baseInputs()
	override := 25000.00
	in.FlatFeeOverride = &override

	der := ComputeCommission(in)

	// The override replaces the computed fee regardless of deal value.
	assert.Equal(t, 25000.00, der.Fee)
	assert.Equal(t, 2500.00, der.ReferralFeeUSD)
	assert.Equal(t, 22500.00, der.GCI)
}

func TestComputeCommissionZeroFillsMissingInputs(t *testing.T) {
	der := ComputeCommission(CommissionInputs{})
	assert.Equal(t, CommissionDerived{}, der)
}

func TestComputeCommissionRoundingClosure(t *testing.T) {
	// Awkward inputs that produce long fractional tails pre-rounding.
	in := CommissionInputs{
		DealValue:          333_333.33,
		CommissionPercent:  5.555,
		ReferralFeePercent: 7.77,
		HousePercent:       12.345,
		OriginationPercent: 33.33,
		SitePercent:        33.33,
		DealPercent:        33.34,
	}
	der := ComputeCommission(in)

	for name, v := range map[string]float64{
		"fee":            der.Fee,
		"referralFeeUsd": der.ReferralFeeUSD,
		"gci":            der.GCI,
		"houseUsd":       der.HouseUSD,
		"agci":           der.AGCI,
		"originationUsd": der.OriginationUSD,
		"siteUsd":        der.SiteUSD,
		"dealUsd":        der.DealUSD,
	} {
		cents := v * 100
		assert.InDelta(t, math.Round(cents), cents, 1e-6, "%s has sub-cent precision: %v", name, v)
	}
}

func TestApplyCommissionInputsRefreshesCache(t *testing.T) {
	var d Deal
	d.ApplyCommissionInputs(baseInputs())
	assert.Equal(t, 60000.00, d.Fee)
	assert.Equal(t, 43200.00, d.AGCI)

	in := d.Inputs()
	in.CommissionPercent = 3
	d.ApplyCommissionInputs(in)
	assert.Equal(t, 30000.00, d.Fee)
	assert.Equal(t, 21600.00, d.AGCI)
}
