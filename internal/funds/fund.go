// Package funds holds the index fund records that feed the site's dataset.
package funds

import (
	"strconv"
	"strings"
)

// Fund is one index fund row as published in funds.json.
type Fund struct {
	Name          string    `json:"name"`
	Index         string    `json:"index"`
	Fee           string    `json:"fee"`
	Return1Y      string    `json:"return1y"`
	Return5Y      string    `json:"return5y"`
	Risk          RiskLevel `json:"risk"`
	ISIN          string    `json:"isin,omitempty"`
	Institutional bool      `json:"institutional"`
	MorningstarID string    `json:"morningstarId,omitempty"`
}

// Group identifies a fund listing group on the site.
type Group string

const (
	GroupGlobal Group = "global"
	GroupSweden Group = "sweden"
)

// RiskLevel is the Swedish-language risk label shown on the site.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Låg"
	RiskMedium RiskLevel = "Medel"
	RiskHigh   RiskLevel = "Hög"
)

// Collection groups funds the way the site lists them.
type Collection struct {
	Global []Fund
	Sweden []Fund
}

// ByGroup returns the funds for a group; unknown groups return nil.
func (c *Collection) ByGroup(g Group) []Fund {
	switch g {
	case GroupGlobal:
		return c.Global
	case GroupSweden:
		return c.Sweden
	default:
		return nil
	}
}

// Counts returns retail and institutional counts for a fund list.
func Counts(fs []Fund) (retail, institutional int) {
	for _, f := range fs {
		if f.Institutional {
			institutional++
		} else {
			retail++
		}
	}
	return retail, institutional
}

// feeUnknown sorts unknown fees after every real fee.
const feeUnknown = 999

// FeeValue parses a fee string like "0.20%" into a float. Unparseable
// values (including "N/A") return feeUnknown so they sort last.
func FeeValue(fee string) float64 {
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(fee), "%"))
	if s == "" || strings.EqualFold(s, "N/A") {
		return feeUnknown
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return feeUnknown
	}
	return v
}
