package commissionsplit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func evenSplits() []CommissionSplit {
	return []CommissionSplit{
		{BrokerID: 1, SplitOriginationPercent: 60, SplitSitePercent: 50, SplitDealPercent: 50},
		{BrokerID: 2, SplitOriginationPercent: 40, SplitSitePercent: 50, SplitDealPercent: 50},
	}
}

func TestValidateSplitPercentagesValid(t *testing.T) {
	v := ValidateSplitPercentages(evenSplits())
	assert.True(t, v.IsValid)
	assert.Empty(t, v.Messages)
}

func TestValidateSplitPercentagesEachCategoryIndependent(t *testing.T) {
	for _, mutate := range []func(*CommissionSplit){
		func(s *CommissionSplit) { s.SplitOriginationPercent = 45 },
		func(s *CommissionSplit) { s.SplitSitePercent = 55 },
		func(s *CommissionSplit) { s.SplitDealPercent = 49 },
	} {
		splits := evenSplits()
		mutate(&splits[1])
		v := ValidateSplitPercentages(splits)
		assert.False(t, v.IsValid)
		assert.Len(t, v.Messages, 1)
	}
}

func TestValidateSplitPercentagesToleratesFloatDrift(t *testing.T) {
	// Thirds never sum to exactly 100 in binary floating point.
	splits := []CommissionSplit{
		{SplitOriginationPercent: 100.0 / 3, SplitSitePercent: 100.0 / 3, SplitDealPercent: 100.0 / 3},
		{SplitOriginationPercent: 100.0 / 3, SplitSitePercent: 100.0 / 3, SplitDealPercent: 100.0 / 3},
		{SplitOriginationPercent: 100.0 / 3, SplitSitePercent: 100.0 / 3, SplitDealPercent: 100.0 / 3},
	}
	assert.True(t, ValidateSplitPercentages(splits).IsValid)
}

func TestValidateSplitPercentagesRejectsOffByACent(t *testing.T) {
	splits := evenSplits()
	splits[1].SplitDealPercent = 50.02
	v := ValidateSplitPercentages(splits)
	assert.False(t, v.IsValid)
}

func TestValidateSplitPercentagesExact(t *testing.T) {
	assert.True(t, ValidateSplitPercentagesExact(evenSplits()))

	splits := evenSplits()
	splits[0].SplitSitePercent = 49.995
	assert.False(t, ValidateSplitPercentagesExact(splits))
}

func TestRecomputeAmounts(t *testing.T) {
	s := CommissionSplit{
		SplitOriginationPercent: 50,
		SplitSitePercent:        25,
		SplitDealPercent:        10,
	}
	s.RecomputeAmounts(14398.56, 14398.56, 14402.88)

	assert.Equal(t, 7199.28, s.SplitOriginationUSD)
	assert.Equal(t, 3599.64, s.SplitSiteUSD)
	assert.Equal(t, 1440.29, s.SplitDealUSD)
	assert.Equal(t, 12239.21, s.SplitBrokerTotal)
}
