// internal/dashboard/aggregator.go
package dashboard

import (
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"github.com/ovis-crm/api-brokerage/internal/payment"
	"github.com/ovis-crm/api-brokerage/internal/referralfee"
)

// Payout status values, evaluated per payment row.
const (
	StatusFullyPaid = "Fully Paid"
	StatusPartial   = "Partial"
	StatusUnpaid    = "Unpaid"
)

// SplitRow is one broker's share of one payment, with the broker's name.
type SplitRow struct {
	SplitID    uint       `json:"splitId"`
	BrokerID   uint       `json:"brokerId"`
	BrokerName string     `json:"brokerName"`
	Amount     float64    `json:"amount"`
	Paid       bool       `json:"paid"`
	PaidDate   *time.Time `json:"paidDate"`
}

// ReferralRow is the deal's referral fee, attached to every payment row of
// that deal.
type ReferralRow struct {
	ID        uint       `json:"id"`
	Recipient string     `json:"recipient"`
	Amount    float64    `json:"amount"`
	Paid      bool       `json:"paid"`
	PaidDate  *time.Time `json:"paidDate"`
}

// PaymentRow is one denormalized dashboard row.
type PaymentRow struct {
	PaymentID       uint         `json:"paymentId"`
	DealID          uint         `json:"dealId"`
	DealName        string       `json:"dealName"`
	Installment     int          `json:"installment"`
	Amount          float64      `json:"amount"`
	EstimatedDate   time.Time    `json:"estimatedDate"`
	PaymentReceived bool         `json:"paymentReceived"`
	ReceivedDate    *time.Time   `json:"receivedDate"`
	Splits          []SplitRow   `json:"splits"`
	ReferralFee     *ReferralRow `json:"referralFee,omitempty"`
	Status          string       `json:"status"`
}

// ClassifyPayout derives the payout status of one payment: Fully Paid when
// every split is paid and any referral fee is paid too; Partial when
// anything has been paid but not everything; Unpaid when nothing has.
func ClassifyPayout(splits []SplitRow, referral *ReferralRow) string {
	allPaid := true
	anyPaid := false
	for _, s := range splits {
		if s.Paid {
			anyPaid = true
		} else {
			allPaid = false
		}
	}
	if referral != nil {
		if referral.Paid {
			anyPaid = true
		} else {
			allPaid = false
		}
	}
	if !anyPaid {
		return StatusUnpaid
	}
	if allPaid {
		return StatusFullyPaid
	}
	return StatusPartial
}

const cacheTTL = 30 * time.Second

// Aggregator builds the read-side payout view. Per-deal views are cached
// briefly; every mutating handler invalidates the deal it touched.
type Aggregator struct {
	DB          *gorm.DB
	PaymentRepo *payment.Repository
	FeeRepo     *referralfee.Repository
	cache       *cache.Cache
}

func NewAggregator(db *gorm.DB, paymentRepo *payment.Repository, feeRepo *referralfee.Repository) *Aggregator {
	return &Aggregator{
		DB:          db,
		PaymentRepo: paymentRepo,
		FeeRepo:     feeRepo,
		cache:       cache.New(cacheTTL, 2*cacheTTL),
	}
}

func dealCacheKey(dealID uint) string {
	return fmt.Sprintf("deal-dashboard:%d", dealID)
}

// InvalidateDeal drops the cached view for one deal.
func (a *Aggregator) InvalidateDeal(dealID uint) {
	a.cache.Delete(dealCacheKey(dealID))
}

type dealHeader struct {
	ID   uint
	Name string
}

// DealDashboard returns the payout rows for one deal.
func (a *Aggregator) DealDashboard(dealID uint) ([]PaymentRow, error) {
	if cached, ok := a.cache.Get(dealCacheKey(dealID)); ok {
		return cached.([]PaymentRow), nil
	}

	var header dealHeader
	err := a.DB.Table("deals").
		Select("id, name").
		Where("id = ? AND deleted_at IS NULL", dealID).
		Take(&header).Error
	if err != nil {
		return nil, err
	}

	rows, err := a.buildRows(header)
	if err != nil {
		return nil, err
	}
	a.cache.Set(dealCacheKey(dealID), rows, cache.DefaultExpiration)
	return rows, nil
}

// BrokerDashboard returns the payout rows across all of one broker's deals.
func (a *Aggregator) BrokerDashboard(brokerID uint) ([]PaymentRow, error) {
	var headers []dealHeader
	err := a.DB.Table("deals").
		Select("id, name").
		Where("broker_id = ? AND deleted_at IS NULL", brokerID).
		Order("id ASC").
		Scan(&headers).Error
	if err != nil {
		return nil, err
	}

	rows := []PaymentRow{}
	for _, header := range headers {
		dealRows, err := a.DealDashboard(header.ID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, dealRows...)
	}
	return rows, nil
}

func (a *Aggregator) buildRows(header dealHeader) ([]PaymentRow, error) {
	payments, err := a.PaymentRepo.ListByDeal(header.ID)
	if err != nil {
		return nil, err
	}

	var referral *ReferralRow
	fee, err := a.FeeRepo.FindByDeal(header.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if fee != nil {
		referral = &ReferralRow{
			ID:        fee.ID,
			Recipient: fee.Recipient,
			Amount:    fee.Amount,
			Paid:      fee.Paid,
			PaidDate:  fee.PaidDate,
		}
	}

	names, err := a.brokerNames(header.ID)
	if err != nil {
		return nil, err
	}

	rows := make([]PaymentRow, 0, len(payments))
	for _, p := range payments {
		splits := make([]SplitRow, 0, len(p.Splits))
		for _, s := range p.Splits {
			splits = append(splits, SplitRow{
				SplitID:    s.ID,
				BrokerID:   s.BrokerID,
				BrokerName: names[s.BrokerID],
				Amount:     s.Amount,
				Paid:       s.Paid,
				PaidDate:   s.PaidDate,
			})
		}
		rows = append(rows, PaymentRow{
			PaymentID:       p.ID,
			DealID:          header.ID,
			DealName:        header.Name,
			Installment:     p.Installment,
			Amount:          p.Amount,
			EstimatedDate:   p.EstimatedDate,
			PaymentReceived: p.PaymentReceived,
			ReceivedDate:    p.ReceivedDate,
			Splits:          splits,
			ReferralFee:     referral,
			Status:          ClassifyPayout(splits, referral),
		})
	}
	return rows, nil
}

func (a *Aggregator) brokerNames(dealID uint) (map[uint]string, error) {
	var rows []struct {
		ID   uint
		Name string
	}
	err := a.DB.Table("brokers").
		Select("brokers.id, CONCAT(brokers.first_name, ' ', brokers.last_name) AS name").
		Joins("JOIN commission_splits ON commission_splits.broker_id = brokers.id").
		Where("commission_splits.deal_id = ?", dealID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(rows))
	for _, r := range rows {
		names[r.ID] = r.Name
	}
	return names, nil
}
