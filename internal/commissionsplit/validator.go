package commissionsplit

import (
	"fmt"
	"math"
)

// sumTolerance absorbs float drift in imported percentages; sums within a
// cent of a percent still count as 100.
const sumTolerance = 0.01

// SplitValidation reports whether a deal's splits fully cover each category.
type SplitValidation struct {
	IsValid  bool     `json:"isValid"`
	Messages []string `json:"messages,omitempty"`
}

// ValidateSplitPercentages sums the three category percentages across all
// splits and checks each against 100 within sumTolerance. The result is
// advisory; callers surface it as a warning and never block a write on it.
func ValidateSplitPercentages(splits []CommissionSplit) SplitValidation {
	var origination, site, deal float64
	for _, s := range splits {
		origination += s.SplitOriginationPercent
		site += s.SplitSitePercent
		deal += s.SplitDealPercent
	}

	v := SplitValidation{IsValid: true}
	check := func(category string, sum float64) {
		if math.Abs(sum-100) >= sumTolerance {
			v.IsValid = false
			v.Messages = append(v.Messages,
				fmt.Sprintf("%s split percentages total %.2f%%, expected 100%%", category, sum))
		}
	}
	check("origination", origination)
	check("site", site)
	check("deal", deal)
	return v
}

// ValidateSplitPercentagesExact keeps the strict equality comparison for
// callers that need the legacy behavior.
func ValidateSplitPercentagesExact(splits []CommissionSplit) bool {
	var origination, site, deal float64
	for _, s := range splits {
		origination += s.SplitOriginationPercent
		site += s.SplitSitePercent
		deal += s.SplitDealPercent
	}
	return origination == 100 && site == 100 && deal == 100
}
