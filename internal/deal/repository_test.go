package deal

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ovis-crm/api-brokerage/internal/commissionsplit"
	"github.com/ovis-crm/api-brokerage/internal/payment"
	"github.com/ovis-crm/api-brokerage/internal/referralfee"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, commissionsplit.Migrate(db))
	require.NoError(t, payment.Migrate(db))
	require.NoError(t, referralfee.Migrate(db))
	return db
}

func TestUpdateCommissionBumpsVersion(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)

	d := &Deal{Name: "Pine Street Retail", BrokerID: 1, NumberOfPayments: 4}
	d.ApplyCommissionInputs(CommissionInputs{DealValue: 1_000_000, CommissionPercent: 6})
	require.NoError(t, repo.Create(d))
	require.Equal(t, 0, d.Version)

	in := d.Inputs()
	in.CommissionPercent = 5
	d.ApplyCommissionInputs(in)
	require.NoError(t, repo.UpdateCommission(d, 0))
	assert.Equal(t, 1, d.Version)

	current, err := repo.FindByID(d.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, current.Version)
	assert.Equal(t, 50000.00, current.Fee)
}

func TestUpdateCommissionStaleVersionRejected(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)

	d := &Deal{Name: "Harbor View Industrial", BrokerID: 1, NumberOfPayments: 2}
	d.ApplyCommissionInputs(CommissionInputs{DealValue: 1_000_000, CommissionPercent: 6})
	require.NoError(t, repo.Create(d))

	// Two sessions load the same version of the deal.
	first, err := repo.FindByID(d.ID)
	require.NoError(t, err)
	second, err := repo.FindByID(d.ID)
	require.NoError(t, err)

	inA := first.Inputs()
	inA.CommissionPercent = 5
	first.ApplyCommissionInputs(inA)
	require.NoError(t, repo.UpdateCommission(first, first.Version))

	// The second session still carries the old version and must lose.
	inB := second.Inputs()
	inB.CommissionPercent = 4
	second.ApplyCommissionInputs(inB)
	err = repo.UpdateCommission(second, second.Version)
	assert.ErrorIs(t, err, ErrStaleDeal)

	// The losing write changed nothing.
	current, err := repo.FindByID(d.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, current.Version)
	assert.Equal(t, 5.0, current.CommissionPercent)
	assert.Equal(t, 50000.00, current.Fee)
}
