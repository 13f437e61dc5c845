package payment_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ovis-crm/api-brokerage/internal/commissionsplit"
	"github.com/ovis-crm/api-brokerage/internal/deal"
	"github.com/ovis-crm/api-brokerage/internal/payment"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, deal.Migrate(db))
	require.NoError(t, commissionsplit.Migrate(db))
	require.NoError(t, payment.Migrate(db))
	return db
}

func seedDealWithSplits(t *testing.T, db *gorm.DB) *deal.Deal {
	t.Helper()
	d := &deal.Deal{Name: "Market Street Office", BrokerID: 1, NumberOfPayments: 3}
	d.ApplyCommissionInputs(deal.CommissionInputs{
		DealValue:          1_000_000,
		CommissionPercent:  6,
		ReferralFeePercent: 10,
		HousePercent:       20,
		OriginationPercent: 33.33,
		SitePercent:        33.33,
		DealPercent:        33.34,
	})
	require.NoError(t, db.Create(d).Error)

	for _, s := range []*commissionsplit.CommissionSplit{
		{DealID: d.ID, BrokerID: 1, SplitOriginationPercent: 50, SplitSitePercent: 50, SplitDealPercent: 50},
		{DealID: d.ID, BrokerID: 2, SplitOriginationPercent: 50, SplitSitePercent: 50, SplitDealPercent: 50},
	} {
		s.RecomputeAmounts(d.OriginationUSD, d.SiteUSD, d.DealUSD)
		require.NoError(t, db.Create(s).Error)
	}
	return d
}

func TestGenerateCreatesOneBatch(t *testing.T) {
	db := openTestDB(t)
	d := seedDealWithSplits(t, db)

	result, err := payment.Generate(db, d.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, result.BatchID)
	assert.Equal(t, 3, result.PaymentsCreated)
	assert.Equal(t, 6, result.SplitsCreated)

	var payments []payment.Payment
	require.NoError(t, db.Where("deal_id = ?", d.ID).Order("installment ASC").Find(&payments).Error)
	require.Len(t, payments, 3)
	var total float64
	for _, p := range payments {
		total += p.Amount
		assert.Equal(t, result.BatchID, p.BatchID)
	}
	assert.InDelta(t, d.Fee, total, 0.001)
}

func TestGenerateRefusedWhenPaymentsExist(t *testing.T) {
	db := openTestDB(t)
	d := seedDealWithSplits(t, db)

	_, err := payment.Generate(db, d.ID)
	require.NoError(t, err)

	_, err = payment.Generate(db, d.ID)
	assert.ErrorIs(t, err, payment.ErrPaymentsExist)

	// The refused call wrote nothing.
	var count int64
	require.NoError(t, db.Model(&payment.Payment{}).Where("deal_id = ?", d.ID).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestGenerateRefusedWithoutSplits(t *testing.T) {
	db := openTestDB(t)
	d := &deal.Deal{Name: "No Splits Yet", BrokerID: 1, NumberOfPayments: 2}
	d.ApplyCommissionInputs(deal.CommissionInputs{DealValue: 500_000, CommissionPercent: 5})
	require.NoError(t, db.Create(d).Error)

	_, err := payment.Generate(db, d.ID)
	assert.ErrorIs(t, err, payment.ErrNoSplits)

	var count int64
	require.NoError(t, db.Model(&payment.Payment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGenerateUnknownDeal(t *testing.T) {
	db := openTestDB(t)

	_, err := payment.Generate(db, 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
