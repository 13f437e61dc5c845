package deal

import "github.com/ovis-crm/api-brokerage/internal/money"

// CommissionInputs are the raw fields the commission chain is computed from.
// Callers map absent JSON numbers to zero before building this struct, so
// every field here is a plain value except the optional flat-fee override.
type CommissionInputs struct {
	DealValue          float64
	CommissionPercent  float64
	ReferralFeePercent float64
	HousePercent       float64
	OriginationPercent float64
	SitePercent        float64
	DealPercent        float64
	FlatFeeOverride    *float64
}

// CommissionDerived is the dollar cache computed from CommissionInputs.
type CommissionDerived struct {
	Fee            float64 `json:"fee"`
	ReferralFeeUSD float64 `json:"referralFeeUsd"`
	GCI            float64 `json:"gci"`
	HouseUSD       float64 `json:"houseUsd"`
	AGCI           float64 `json:"agci"`
	OriginationUSD float64 `json:"originationUsd"`
	SiteUSD        float64 `json:"siteUsd"`
	DealUSD        float64 `json:"dealUsd"`
}

// ComputeCommission runs the commission chain in double precision and rounds
// each output to cents exactly once:
//
//	fee  -> referral -> gci -> house -> agci -> origination/site/deal
//
// A flat-fee override replaces the computed fee entirely. The function is
// pure; persistence belongs to the caller.
func ComputeCommission(in CommissionInputs) CommissionDerived {
	fee := in.DealValue * in.CommissionPercent / 100
	if in.FlatFeeOverride != nil {
		fee = *in.FlatFeeOverride
	}
	referral := fee * in.ReferralFeePercent / 100
	gci := fee - referral
	house := gci * in.HousePercent / 100
	agci := gci - house

	return CommissionDerived{
		Fee:            money.Round2(fee),
		ReferralFeeUSD: money.Round2(referral),
		GCI:            money.Round2(gci),
		HouseUSD:       money.Round2(house),
		AGCI:           money.Round2(agci),
		OriginationUSD: money.Round2(agci * in.OriginationPercent / 100),
		SiteUSD:        money.Round2(agci * in.SitePercent / 100),
		DealUSD:        money.Round2(agci * in.DealPercent / 100),
	}
}
