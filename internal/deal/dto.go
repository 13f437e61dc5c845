// internal/deal/dto.go
package deal

type CreateDealDTO struct {
	Name               string   `json:"name"`
	Stage              string   `json:"stage"`
	DealValue          float64  `json:"dealValue"`
	CommissionPercent  float64  `json:"commissionPercent"`
	ReferralFeePercent float64  `json:"referralFeePercent"`
	HousePercent       float64  `json:"housePercent"`
	OriginationPercent float64  `json:"originationPercent"`
	SitePercent        float64  `json:"sitePercent"`
	DealPercent        float64  `json:"dealPercent"`
	FlatFeeOverride    *float64 `json:"flatFeeOverride"`
	NumberOfPayments   int      `json:"numberOfPayments"`
}

// UpdateCommissionDTO is a partial update of the commission fields only.
// Nil pointers mean "not sent"; the stored value is kept. Version must match
// the version the client last read.
type UpdateCommissionDTO struct {
	Version              int      `json:"version"`
	DealValue            *float64 `json:"dealValue"`
	CommissionPercent    *float64 `json:"commissionPercent"`
	ReferralFeePercent   *float64 `json:"referralFeePercent"`
	HousePercent         *float64 `json:"housePercent"`
	OriginationPercent   *float64 `json:"originationPercent"`
	SitePercent          *float64 `json:"sitePercent"`
	DealPercent          *float64 `json:"dealPercent"`
	FlatFeeOverride      *float64 `json:"flatFeeOverride"`
	ClearFlatFeeOverride bool     `json:"clearFlatFeeOverride"`
	NumberOfPayments     *int     `json:"numberOfPayments"`
}

// Merge applies the fields that were sent on top of the deal's stored inputs.
func (dto *UpdateCommissionDTO) Merge(current CommissionInputs) CommissionInputs {
	in := current
	if dto.DealValue != nil {
		in.DealValue = *dto.DealValue
	}
	if dto.CommissionPercent != nil {
		in.CommissionPercent = *dto.CommissionPercent
	}
	if dto.ReferralFeePercent != nil {
		in.ReferralFeePercent = *dto.ReferralFeePercent
	}
	if dto.HousePercent != nil {
		in.HousePercent = *dto.HousePercent
	}
	if dto.OriginationPercent != nil {
		in.OriginationPercent = *dto.OriginationPercent
	}
	if dto.SitePercent != nil {
		in.SitePercent = *dto.SitePercent
	}
	if dto.DealPercent != nil {
		in.DealPercent = *dto.DealPercent
	}
	if dto.FlatFeeOverride != nil {
		in.FlatFeeOverride = dto.FlatFeeOverride
	}
	if dto.ClearFlatFeeOverride {
		in.FlatFeeOverride = nil
	}
	return in
}

// UpdateCommissionResponse pairs the saved deal with its advisory warnings.
type UpdateCommissionResponse struct {
	Deal     *Deal    `json:"deal"`
	Warnings []string `json:"warnings"`
}
