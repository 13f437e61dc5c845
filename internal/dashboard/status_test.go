package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPayoutTwoSplitsNoReferral(t *testing.T) {
	splits := []SplitRow{
		{BrokerID: 1, Paid: true},
		{BrokerID: 2, Paid: false},
	}
	assert.Equal(t, StatusPartial, ClassifyPayout(splits, nil))

	splits[1].Paid = true
	assert.Equal(t, StatusFullyPaid, ClassifyPayout(splits, nil))

	splits[0].Paid = false
	splits[1].Paid = false
	assert.Equal(t, StatusUnpaid, ClassifyPayout(splits, nil))
}

func TestClassifyPayoutReferralFeeHoldsBackFullyPaid(t *testing.T) {
	splits := []SplitRow{{BrokerID: 1, Paid: true}}
	referral := &ReferralRow{Paid: false}

	assert.Equal(t, StatusPartial, ClassifyPayout(splits, referral))

	referral.Paid = true
	assert.Equal(t, StatusFullyPaid, ClassifyPayout(splits, referral))
}

func TestClassifyPayoutReferralOnlyPayment(t *testing.T) {
	splits := []SplitRow{{BrokerID: 1, Paid: false}}
	referral := &ReferralRow{Paid: true}
	assert.Equal(t, StatusPartial, ClassifyPayout(splits, referral))
}

func TestClassifyPayoutNothingToPay(t *testing.T) {
	assert.Equal(t, StatusUnpaid, ClassifyPayout(nil, nil))
}
