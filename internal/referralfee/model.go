// internal/referralfee/model.go
package referralfee

import (
	"time"

	"gorm.io/gorm"
)

// ReferralFee is an optional payable owed to a non-broker party who referred
// the deal. At most one per deal.
type ReferralFee struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	DealID    uint    `gorm:"not null;uniqueIndex" json:"dealId"`
	Recipient string  `gorm:"size:255;not null" json:"recipient"`
	Amount    float64 `gorm:"not null;default:0;type:numeric(14,2)" json:"amount"`

	Paid     bool       `gorm:"not null;default:false" json:"paid"`
	PaidDate *time.Time `json:"paidDate"`
}

// Migrate creates the table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&ReferralFee{})
}
