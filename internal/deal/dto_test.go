package deal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeKeepsUnsentFields(t *testing.T) {
	current := baseInputs()
	newRate := 5.0
	dto := UpdateCommissionDTO{CommissionPercent: &newRate}

	in := dto.Merge(current)

	assert.Equal(t, 5.0, in.CommissionPercent)
	assert.Equal(t, current.DealValue, in.DealValue)
	assert.Equal(t, current.HousePercent, in.HousePercent)
}

func TestMergeFlatFeeOverride(t *testing.T) {
	current := baseInputs()
	override := 12345.67
	in := (&UpdateCommissionDTO{FlatFeeOverride: &override}).Merge(current)
	assert.NotNil(t, in.FlatFeeOverride)
	assert.Equal(t, 12345.67, *in.FlatFeeOverride)

	cleared := (&UpdateCommissionDTO{ClearFlatFeeOverride: true}).Merge(in)
	assert.Nil(t, cleared.FlatFeeOverride)
}
