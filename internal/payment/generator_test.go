package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInstallmentsTotalsMatchFee(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	payments := BuildInstallments(7, "batch-1", 60000.00, 4, now)

	require.Len(t, payments, 4)
	var total float64
	for i, p := range payments {
		assert.Equal(t, uint(7), p.DealID)
		assert.Equal(t, "batch-1", p.BatchID)
		assert.Equal(t, i+1, p.Installment)
		assert.Equal(t, now.AddDate(0, i+1, 0), p.EstimatedDate)
		assert.False(t, p.PaymentReceived)
		total += p.Amount
	}
	assert.InDelta(t, 60000.00, total, 0.001)
}

func TestBuildInstallmentsRemainderOnFinal(t *testing.T) {
	payments := BuildInstallments(1, "batch-1", 100.00, 3, time.Now())

	require.Len(t, payments, 3)
	assert.Equal(t, 33.33, payments[0].Amount)
	assert.Equal(t, 33.33, payments[1].Amount)
	assert.Equal(t, 33.34, payments[2].Amount)
}

func TestBuildBrokerSplitsReconcileWithLedger(t *testing.T) {
	payments := BuildInstallments(1, "batch-1", 60000.00, 3, time.Now())
	for i, p := range payments {
		p.ID = uint(i + 1)
	}
	shares := []BrokerShare{
		{BrokerID: 10, SplitBrokerTotal: 14398.56},
		{BrokerID: 11, SplitBrokerTotal: 14402.88},
	}

	splits := BuildBrokerSplits(payments, shares)
	require.Len(t, splits, 6)

	totals := map[uint]float64{}
	for _, s := range splits {
		assert.False(t, s.Paid)
		totals[s.BrokerID] += s.Amount
	}
	assert.InDelta(t, 14398.56, totals[10], 0.001)
	assert.InDelta(t, 14402.88, totals[11], 0.001)

	// Each broker appears once per installment.
	perPayment := map[uint]int{}
	for _, s := range splits {
		perPayment[s.PaymentID]++
	}
	for _, p := range payments {
		assert.Equal(t, 2, perPayment[p.ID])
	}
}

func TestGenerateResultMessage(t *testing.T) {
	r := GenerateResult{PaymentsCreated: 4, SplitsCreated: 8}
	assert.Equal(t, "generated 4 payments and 8 payment splits", r.Message())
}
