// internal/deal/repository.go
package deal

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrStaleDeal is returned when a commission update carries a version that no
// longer matches the stored row.
var ErrStaleDeal = errors.New("deal was modified by another session")

// Repository encapsulates database access for deals.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Create inserts a new deal.
func (r *Repository) Create(d *Deal) error {
	return r.DB.Create(d).Error
}

// FindByID returns a deal with its splits, payments and referral fee loaded.
func (r *Repository) FindByID(id uint) (*Deal, error) {
	var d Deal
	err := r.DB.
		Preload("CommissionSplits").
		Preload("Payments").
		Preload("Payments.Splits").
		Preload("ReferralFee").
		First(&d, id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListByBroker returns the deals owned by one broker.
func (r *Repository) ListByBroker(brokerID uint) ([]Deal, error) {
	var list []Deal
	err := r.DB.Where("broker_id = ?", brokerID).Order("created_at DESC").Find(&list).Error
	return list, err
}

// List returns every deal.
func (r *Repository) List() ([]Deal, error) {
	var list []Deal
	err := r.DB.Order("created_at DESC").Find(&list).Error
	return list, err
}

// UpdateCommission persists the commission inputs and derived cache with an
// optimistic version check. Only commission fields are written; a mismatched
// version writes nothing and returns ErrStaleDeal.
func (r *Repository) UpdateCommission(d *Deal, expectedVersion int) error {
	res := r.DB.Model(&Deal{}).
		Where("id = ? AND version = ?", d.ID, expectedVersion).
		Updates(map[string]interface{}{
			"deal_value":           d.DealValue,
			"commission_percent":   d.CommissionPercent,
			"referral_fee_percent": d.ReferralFeePercent,
			"house_percent":        d.HousePercent,
			"origination_percent":  d.OriginationPercent,
			"site_percent":         d.SitePercent,
			"deal_percent":         d.DealPercent,
			"flat_fee_override":    d.FlatFeeOverride,
			"number_of_payments":   d.NumberOfPayments,
			"fee":                  d.Fee,
			"referral_fee_usd":     d.ReferralFeeUSD,
			"gci":                  d.GCI,
			"house_usd":            d.HouseUSD,
			"agci":                 d.AGCI,
			"origination_usd":      d.OriginationUSD,
			"site_usd":             d.SiteUSD,
			"deal_usd":             d.DealUSD,
			"version":              expectedVersion + 1,
			"updated_at":           time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleDeal
	}
	d.Version = expectedVersion + 1
	return nil
}

// Delete removes a deal (soft delete; children cascade on hard delete).
func (r *Repository) Delete(d *Deal) error {
	return r.DB.Delete(d).Error
}

// ReconcileDerivedCache recomputes the dollar cache for every deal and
// repairs rows whose stored values no longer match their inputs. Returns the
// ids it repaired.
func (r *Repository) ReconcileDerivedCache() ([]uint, error) {
	var deals []Deal
	if err := r.DB.Find(&deals).Error; err != nil {
		return nil, err
	}
	var repaired []uint
	for i := range deals {
		d := &deals[i]
		der := ComputeCommission(d.Inputs())
		if derivedMatches(d, der) {
			continue
		}
		err := r.DB.Model(d).Updates(map[string]interface{}{
			"fee":              der.Fee,
			"referral_fee_usd": der.ReferralFeeUSD,
			"gci":              der.GCI,
			"house_usd":        der.HouseUSD,
			"agci":             der.AGCI,
			"origination_usd":  der.OriginationUSD,
			"site_usd":         der.SiteUSD,
			"deal_usd":         der.DealUSD,
		}).Error
		if err != nil {
			return repaired, err
		}
		repaired = append(repaired, d.ID)
	}
	return repaired, nil
}

func derivedMatches(d *Deal, der CommissionDerived) bool {
	return d.Fee == der.Fee &&
		d.ReferralFeeUSD == der.ReferralFeeUSD &&
		d.GCI == der.GCI &&
		d.HouseUSD == der.HouseUSD &&
		d.AGCI == der.AGCI &&
		d.OriginationUSD == der.OriginationUSD &&
		d.SiteUSD == der.SiteUSD &&
		d.DealUSD == der.DealUSD
}
