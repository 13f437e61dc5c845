// internal/referralfee/repository.go
package referralfee

import (
	"time"

	"gorm.io/gorm"
)

// Repository encapsulates database access for referral fees.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Create inserts the deal's referral fee; the unique index on deal_id
// rejects a second one.
func (r *Repository) Create(f *ReferralFee) error {
	return r.DB.Create(f).Error
}

// FindByID returns one referral fee.
func (r *Repository) FindByID(id uint) (*ReferralFee, error) {
	var f ReferralFee
	if err := r.DB.First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// FindByDeal returns the deal's referral fee, if any.
func (r *Repository) FindByDeal(dealID uint) (*ReferralFee, error) {
	var f ReferralFee
	if err := r.DB.Where("deal_id = ?", dealID).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// SetPaid toggles the paid flag; paid date set on pay, cleared on unpay.
func (r *Repository) SetPaid(id uint, paid bool, paidAt time.Time) error {
	updates := map[string]interface{}{"paid": paid}
	if paid {
		updates["paid_date"] = &paidAt
	} else {
		updates["paid_date"] = nil
	}
	res := r.DB.Model(&ReferralFee{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the referral fee.
func (r *Repository) Delete(id uint) error {
	res := r.DB.Delete(&ReferralFee{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
