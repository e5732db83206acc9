package funds

import (
	"fmt"
	"strings"
)

// institutionalKeywords mark share classes aimed at institutional investors.
var institutionalKeywords = []string{
	"institutional", "inst", "institution",
	"professional", "wholesale",
	"class i", "class z", "class p",
	"klass i", "klass z",
	"pension", "tjänstepension",
}

// IsInstitutional reports whether a fund name indicates an institutional share class.
func IsInstitutional(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range institutionalKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// IsIndexFund reports whether a fund name looks like a passive index fund.
func IsIndexFund(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "index") || strings.Contains(lower, "passiv")
}

// RiskFromRating maps a numeric risk rating (1-7 scale) to the site's
// Swedish risk label. Ratings ≤2 map to Låg, ≤4 to Medel, higher to Hög.
func RiskFromRating(rating int) RiskLevel {
	switch {
	case rating <= 0:
		return RiskMedium
	case rating <= 2:
		return RiskLow
	case rating <= 4:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// FormatReturn renders a return percentage the way the site shows it:
// signed whole percent ("+22%"). ok=false yields "N/A".
func FormatReturn(value float64, ok bool) string {
	if !ok {
		return "N/A"
	}
	sign := ""
	if value >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.0f%%", sign, value)
}

// FormatFee renders an ongoing charge as the fee string shown on the site.
func FormatFee(charge float64, ok bool) string {
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", charge)
}
