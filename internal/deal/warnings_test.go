package deal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommissionWarningsClean(t *testing.T) {
	assert.Empty(t, CommissionWarnings(baseInputs()))
}

func TestCommissionWarningsOverAllocatedSplits(t *testing.T) {
	in := baseInputs()
	in.OriginationPercent = 50
	in.SitePercent = 40
	in.DealPercent = 30

	warnings := CommissionWarnings(in)
	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "120.00%")
	assert.Contains(t, warnings[0], "over 100%")
}

func TestCommissionWarningsHighCommissionRate(t *testing.T) {
	in := baseInputs()
	in.CommissionPercent = 51
	assert.Contains(t, CommissionWarnings(in), "commission rate seems high")
}

func TestCommissionWarningsReferralOverHundred(t *testing.T) {
	in := baseInputs()
	in.ReferralFeePercent = 101
	assert.Contains(t, CommissionWarnings(in), "referral fee cannot exceed 100%")
}
