package payment

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ovis-crm/api-brokerage/internal/money"
)

var (
	// ErrPaymentsExist guards against double generation; regenerating
	// requires deleting the existing batch first.
	ErrPaymentsExist = errors.New("payments already exist for this deal")
	ErrNoSplits      = errors.New("deal has no commission splits")
	ErrNoInstallment = errors.New("deal has no installment count configured")
)

// GenerateResult summarizes one generation run.
type GenerateResult struct {
	BatchID         string `json:"batchId"`
	PaymentsCreated int    `json:"paymentsCreated"`
	SplitsCreated   int    `json:"splitsCreated"`
}

// Message renders the human-readable outcome shown to the user.
func (r GenerateResult) Message() string {
	return fmt.Sprintf("generated %d payments and %d payment splits", r.PaymentsCreated, r.SplitsCreated)
}

// dealCommission is the slice of deal columns the generator reads.
type dealCommission struct {
	Fee              float64
	NumberOfPayments int
}

// BrokerShare is the slice of split columns the generator reads.
type BrokerShare struct {
	BrokerID         uint
	SplitBrokerTotal float64
}

// Generate materializes a deal's installment payments and per-broker payment
// splits in a single transaction. The preconditions are re-checked inside the
// transaction, so a concurrent or repeated call cannot produce a second
// batch: either every row is written or none are.
func Generate(db *gorm.DB, dealID uint) (*GenerateResult, error) {
	var result GenerateResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&Payment{}).Where("deal_id = ?", dealID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrPaymentsExist
		}

		var dc dealCommission
		err := tx.Table("deals").
			Select("fee, number_of_payments").
			Where("id = ? AND deleted_at IS NULL", dealID).
			Take(&dc).Error
		if err != nil {
			return err
		}
		if dc.NumberOfPayments <= 0 {
			return ErrNoInstallment
		}

		var shares []BrokerShare
		err = tx.Table("commission_splits").
			Select("broker_id, split_broker_total").
			Where("deal_id = ?", dealID).
			Order("id ASC").
			Scan(&shares).Error
		if err != nil {
			return err
		}
		if len(shares) == 0 {
			return ErrNoSplits
		}

		batchID := uuid.NewString()
		payments := BuildInstallments(dealID, batchID, dc.Fee, dc.NumberOfPayments, time.Now())
		if err := tx.Create(&payments).Error; err != nil {
			return err
		}

		splits := BuildBrokerSplits(payments, shares)
		if err := tx.Create(&splits).Error; err != nil {
			return err
		}

		result = GenerateResult{
			BatchID:         batchID,
			PaymentsCreated: len(payments),
			SplitsCreated:   len(splits),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// BuildInstallments lays out n monthly installments of fee starting one
// month from now. The installment amounts sum back to fee to the cent, with
// the rounding remainder on the final installment.
func BuildInstallments(dealID uint, batchID string, fee float64, n int, now time.Time) []*Payment {
	amounts := money.SplitEven(fee, n)
	payments := make([]*Payment, 0, n)
	for i, amount := range amounts {
		payments = append(payments, &Payment{
			DealID:        dealID,
			BatchID:       batchID,
			Installment:   i + 1,
			Amount:        amount,
			EstimatedDate: now.AddDate(0, i+1, 0),
		})
	}
	return payments
}

// BuildBrokerSplits creates one split per (payment, broker). Each broker's
// rows sum back to their commission split total to the cent, remainder on
// the final installment.
func BuildBrokerSplits(payments []*Payment, shares []BrokerShare) []*PaymentSplit {
	n := len(payments)
	splits := make([]*PaymentSplit, 0, n*len(shares))
	for _, share := range shares {
		amounts := money.SplitEven(share.SplitBrokerTotal, n)
		for i, p := range payments {
			splits = append(splits, &PaymentSplit{
				PaymentID: p.ID,
				BrokerID:  share.BrokerID,
				Amount:    amounts[i],
			})
		}
	}
	return splits
}
