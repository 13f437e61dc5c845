// internal/commissionsplit/model.go
package commissionsplit

import (
	"time"

	"gorm.io/gorm"

	"github.com/ovis-crm/api-brokerage/internal/money"
)

// CommissionSplit is one broker's share of a deal's commission, tracked
// separately for the origination, site and deal categories. The dollar
// columns are shares of the deal's category pools and are recomputed whenever
// the deal's AGCI changes.
type CommissionSplit struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	DealID   uint `gorm:"not null;index" json:"dealId"`
	BrokerID uint `gorm:"not null;index" json:"brokerId"`

	SplitOriginationPercent float64 `gorm:"not null;default:0" json:"splitOriginationPercent"`
	SplitSitePercent        float64 `gorm:"not null;default:0" json:"splitSitePercent"`
	SplitDealPercent        float64 `gorm:"not null;default:0" json:"splitDealPercent"`

	SplitOriginationUSD float64 `gorm:"not null;default:0;type:numeric(14,2)" json:"splitOriginationUsd"`
	SplitSiteUSD        float64 `gorm:"not null;default:0;type:numeric(14,2)" json:"splitSiteUsd"`
	SplitDealUSD        float64 `gorm:"not null;default:0;type:numeric(14,2)" json:"splitDealUsd"`
	SplitBrokerTotal    float64 `gorm:"not null;default:0;type:numeric(14,2)" json:"splitBrokerTotal"`
}

// Migrate creates the table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&CommissionSplit{})
}

// RecomputeAmounts refreshes the dollar columns from the deal's category
// pools (origination/site/deal dollars, themselves derived from AGCI).
func (s *CommissionSplit) RecomputeAmounts(originationPool, sitePool, dealPool float64) {
	s.SplitOriginationUSD = money.Round2(originationPool * s.SplitOriginationPercent / 100)
	s.SplitSiteUSD = money.Round2(sitePool * s.SplitSitePercent / 100)
	s.SplitDealUSD = money.Round2(dealPool * s.SplitDealPercent / 100)
	s.SplitBrokerTotal = money.Round2(s.SplitOriginationUSD + s.SplitSiteUSD + s.SplitDealUSD)
}
