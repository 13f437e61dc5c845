// internal/commissionsplit/repository.go
package commissionsplit

import (
	"gorm.io/gorm"
)

// Repository encapsulates database access for commission splits.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Create inserts one split row.
func (r *Repository) Create(s *CommissionSplit) error {
	return r.DB.Create(s).Error
}

// ListByDeal returns all splits for one deal.
func (r *Repository) ListByDeal(dealID uint) ([]CommissionSplit, error) {
	var list []CommissionSplit
	err := r.DB.Where("deal_id = ?", dealID).Order("id ASC").Find(&list).Error
	return list, err
}

// SplitRow is a split joined with the broker's display name.
type SplitRow struct {
	CommissionSplit
	BrokerName string `json:"brokerName"`
}

// ListByDealWithBrokers returns the deal's splits with broker names attached.
func (r *Repository) ListByDealWithBrokers(dealID uint) ([]SplitRow, error) {
	var rows []SplitRow
	err := r.DB.
		Table("commission_splits").
		Select("commission_splits.*, CONCAT(brokers.first_name, ' ', brokers.last_name) AS broker_name").
		Joins("JOIN brokers ON brokers.id = commission_splits.broker_id").
		Where("commission_splits.deal_id = ?", dealID).
		Order("commission_splits.id ASC").
		Scan(&rows).Error
	return rows, err
}

// RecomputeAmounts refreshes every split's dollar columns from the deal's
// current category pools, inside one transaction.
func (r *Repository) RecomputeAmounts(dealID uint, originationPool, sitePool, dealPool float64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var splits []CommissionSplit
		if err := tx.Where("deal_id = ?", dealID).Find(&splits).Error; err != nil {
			return err
		}
		for i := range splits {
			s := &splits[i]
			s.RecomputeAmounts(originationPool, sitePool, dealPool)
			err := tx.Model(s).Updates(map[string]interface{}{
				"split_origination_usd": s.SplitOriginationUSD,
				"split_site_usd":        s.SplitSiteUSD,
				"split_deal_usd":        s.SplitDealUSD,
				"split_broker_total":    s.SplitBrokerTotal,
			}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// brokerEligible reports whether the broker exists and is active. Inactive
// brokers keep their existing splits but cannot receive new ones.
func (r *Repository) brokerEligible(brokerID uint) (bool, error) {
	var count int64
	err := r.DB.Table("brokers").
		Where("id = ? AND active = ? AND deleted_at IS NULL", brokerID, true).
		Count(&count).Error
	return count > 0, err
}
