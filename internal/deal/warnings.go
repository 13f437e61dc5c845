package deal

import "fmt"

// CommissionWarnings returns advisory messages for a deal's commission
// configuration. Warnings never block a save; they are returned alongside
// the updated record for the client to display.
func CommissionWarnings(in CommissionInputs) []string {
	var warnings []string
	if total := in.OriginationPercent + in.SitePercent + in.DealPercent; total > 100 {
		warnings = append(warnings, fmt.Sprintf("broker split percentages total %.2f%% (over 100%%)", total))
	}
	if in.CommissionPercent > 50 {
		warnings = append(warnings, "commission rate seems high")
	}
	if in.ReferralFeePercent > 100 {
		warnings = append(warnings, "referral fee cannot exceed 100%")
	}
	return warnings
}
