// internal/payment/repository.go
package payment

import (
	"time"

	"gorm.io/gorm"
)

// Repository encapsulates database access for payments and payment splits.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ListByDeal returns a deal's payments with their splits, oldest first.
func (r *Repository) ListByDeal(dealID uint) ([]Payment, error) {
	var list []Payment
	err := r.DB.
		Preload("Splits").
		Where("deal_id = ?", dealID).
		Order("installment ASC").
		Find(&list).Error
	return list, err
}

// FindByID returns one payment with its splits.
func (r *Repository) FindByID(id uint) (*Payment, error) {
	var p Payment
	if err := r.DB.Preload("Splits").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindSplitByID returns one payment split.
func (r *Repository) FindSplitByID(id uint) (*PaymentSplit, error) {
	var s PaymentSplit
	if err := r.DB.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// HasPayments reports whether any payments exist for the deal.
func (r *Repository) HasPayments(dealID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&Payment{}).Where("deal_id = ?", dealID).Count(&count).Error
	return count > 0, err
}

// SetReceived toggles a payment's received flag. The received date is set
// when the flag goes on and cleared (NULL) when it goes off.
func (r *Repository) SetReceived(id uint, received bool, receivedAt time.Time) error {
	updates := map[string]interface{}{"payment_received": received}
	if received {
		updates["received_date"] = &receivedAt
	} else {
		updates["received_date"] = nil
	}
	res := r.DB.Model(&Payment{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetSplitPaid toggles a payment split's paid flag with the same date
// handling as SetReceived.
func (r *Repository) SetSplitPaid(id uint, paid bool, paidAt time.Time) error {
	updates := map[string]interface{}{"paid": paid}
	if paid {
		updates["paid_date"] = &paidAt
	} else {
		updates["paid_date"] = nil
	}
	res := r.DB.Model(&PaymentSplit{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByDeal removes a deal's payments and their splits in one
// transaction, clearing the way for a fresh generation run.
func (r *Repository) DeleteByDeal(dealID uint) (int64, error) {
	var deleted int64
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("payment_id IN (?)", tx.Model(&Payment{}).Select("id").Where("deal_id = ?", dealID)).
			Delete(&PaymentSplit{}).Error
		if err != nil {
			return err
		}
		res := tx.Where("deal_id = ?", dealID).Delete(&Payment{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	return deleted, err
}
