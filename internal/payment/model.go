// internal/payment/model.go
package payment

import (
	"time"

	"gorm.io/gorm"
)

// Payment is one installment of a deal's fee. Rows are created in a single
// generation batch and mutated afterwards only for paid-status bookkeeping.
type Payment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	DealID      uint   `gorm:"not null;index" json:"dealId"`
	BatchID     string `gorm:"size:36;not null;index" json:"batchId"`
	Installment int    `gorm:"not null" json:"installment"`

	Amount        float64   `gorm:"not null;default:0;type:numeric(14,2)" json:"amount"`
	EstimatedDate time.Time `gorm:"not null" json:"estimatedDate"`

	PaymentReceived bool       `gorm:"not null;default:false;index" json:"paymentReceived"`
	ReceivedDate    *time.Time `json:"receivedDate"`

	Splits []PaymentSplit `gorm:"foreignKey:PaymentID;constraint:OnDelete:CASCADE" json:"splits,omitempty"`
}

// PaymentSplit is one broker's share of one installment. Its paid flag is
// toggled independently of the payment's own received flag.
type PaymentSplit struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	PaymentID uint `gorm:"not null;index" json:"paymentId"`
	BrokerID  uint `gorm:"not null;index" json:"brokerId"`

	Amount   float64    `gorm:"not null;default:0;type:numeric(14,2)" json:"amount"`
	Paid     bool       `gorm:"not null;default:false;index" json:"paid"`
	PaidDate *time.Time `json:"paidDate"`
}

// Migrate creates both tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Payment{}, &PaymentSplit{})
}
