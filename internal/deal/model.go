package deal

import (
	"time"

	"gorm.io/gorm"

	"github.com/ovis-crm/api-brokerage/internal/commissionsplit"
	"github.com/ovis-crm/api-brokerage/internal/payment"
	"github.com/ovis-crm/api-brokerage/internal/referralfee"
)

// Deal represents a brokered transaction and its commission configuration.
// The dollar fields are a cache derived from the percentage inputs; they are
// only ever written through ApplyCommissionInputs so they cannot drift.
type Deal struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Name     string `gorm:"size:255;not null" json:"name"`
	Stage    string `gorm:"size:100;index" json:"stage"`
	BrokerID uint   `gorm:"not null;index" json:"brokerId"`

	// Commission inputs
	DealValue          float64  `gorm:"not null;default:0;type:numeric(14,2)" json:"dealValue"`
	CommissionPercent  float64  `gorm:"not null;default:0" json:"commissionPercent"`
	ReferralFeePercent float64  `gorm:"not null;default:0" json:"referralFeePercent"`
	HousePercent       float64  `gorm:"not null;default:0" json:"housePercent"`
	OriginationPercent float64  `gorm:"not null;default:0" json:"originationPercent"`
	SitePercent        float64  `gorm:"not null;default:0" json:"sitePercent"`
	DealPercent        float64  `gorm:"not null;default:0" json:"dealPercent"`
	FlatFeeOverride    *float64 `gorm:"type:numeric(14,2)" json:"flatFeeOverride"`
	NumberOfPayments   int      `gorm:"not null;default:1" json:"numberOfPayments"`

	// Derived dollar cache
	Fee            float64 `gorm:"not null;default:0;type:numeric(14,2)" json:"fee"`
	ReferralFeeUSD float64 `gorm:"not null;default:0;type:numeric(14,2)" json:"referralFeeUsd"`
	GCI            float64 `gorm:"not null;default:0;type:numeric(14,2)" json:"gci"`
	HouseUSD       float64 `gorm:"not null;default:0;type:numeric(14,2)" json:"houseUsd"`
	AGCI           float64 `gorm:"not null;default:0;type:numeric(14,2)" json:"agci"`
	OriginationUSD float64 `gorm:"not null;default:0;type:numeric(14,2)" json:"originationUsd"`
	SiteUSD        float64 `gorm:"not null;default:0;type:numeric(14,2)" json:"siteUsd"`
	DealUSD        float64 `gorm:"not null;default:0;type:numeric(14,2)" json:"dealUsd"`

	// Bumped on every commission update; a mismatched version on write means
	// another session edited the deal first.
	Version int `gorm:"not null;default:0" json:"version"`

	CommissionSplits []commissionsplit.CommissionSplit `gorm:"foreignKey:DealID;constraint:OnDelete:CASCADE" json:"commissionSplits,omitempty"`
	Payments         []payment.Payment                 `gorm:"foreignKey:DealID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
	ReferralFee      *referralfee.ReferralFee          `gorm:"foreignKey:DealID;constraint:OnDelete:CASCADE" json:"referralFee,omitempty"`
}

// Migrate creates the table and relationships.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Deal{})
}

// Inputs rebuilds the commission input set from the stored fields.
func (d *Deal) Inputs() CommissionInputs {
	return CommissionInputs{
		DealValue:          d.DealValue,
		CommissionPercent:  d.CommissionPercent,
		ReferralFeePercent: d.ReferralFeePercent,
		HousePercent:       d.HousePercent,
		OriginationPercent: d.OriginationPercent,
		SitePercent:        d.SitePercent,
		DealPercent:        d.DealPercent,
		FlatFeeOverride:    d.FlatFeeOverride,
	}
}

// ApplyCommissionInputs is the only write path for commission fields. It
// stores the inputs and refreshes the derived dollar cache in the same step.
func (d *Deal) ApplyCommissionInputs(in CommissionInputs) {
	d.DealValue = in.DealValue
	d.CommissionPercent = in.CommissionPercent
	d.ReferralFeePercent = in.ReferralFeePercent
	d.HousePercent = in.HousePercent
	d.OriginationPercent = in.OriginationPercent
	d.SitePercent = in.SitePercent
	d.DealPercent = in.DealPercent
	d.FlatFeeOverride = in.FlatFeeOverride

	der := ComputeCommission(in)
	d.Fee = der.Fee
	d.ReferralFeeUSD = der.ReferralFeeUSD
	d.GCI = der.GCI
	d.HouseUSD = der.HouseUSD
	d.AGCI = der.AGCI
	d.OriginationUSD = der.OriginationUSD
	d.SiteUSD = der.SiteUSD
	d.DealUSD = der.DealUSD
}
