package funds

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFeeValue_ParsesPercentStrings(t *testing.T) {
	require.InDelta(t, 0.2, FeeValue("0.20%"), 1e-9)
	require.InDelta(t, 0.0, FeeValue("0.00%"), 1e-9)
	require.InDelta(t, 0.3, FeeValue("0,30%"), 1e-9)
}

func TestFeeValue_UnknownSortsLast(t *testing.T) {
	require.Greater(t, FeeValue("N/A"), FeeValue("99%"))
	require.Greater(t, FeeValue(""), FeeValue("99%"))
	require.Greater(t, FeeValue("gratis"), FeeValue("99%"))
}

func TestSortByFee_CheapestFirstUnknownLast(t *testing.T) {
	fs := []Fund{
		{Name: "C", Fee: "N/A"},
		{Name: "B", Fee: "0.20%"},
		{Name: "A", Fee: "0.00%"},
	}
	SortByFee(fs)
	require.Equal(t, []string{"A", "B", "C"}, names(fs))
}

func TestSortByFee_TiesUseSwedishCollation(t *testing.T) {
	// In Swedish collation å sorts after z, not next to a.
	fs := []Fund{
		{Name: "Ålandsbanken Index", Fee: "0.20%"},
		{Name: "Zenit Index", Fee: "0.20%"},
		{Name: "Avanza Index", Fee: "0.20%"},
	}
	SortByFee(fs)
	require.Equal(t, []string{"Avanza Index", "Zenit Index", "Ålandsbanken Index"}, names(fs))
}

func TestIsInstitutional_MatchesKeywords(t *testing.T) {
	require.True(t, IsInstitutional("Vanguard Global Stock Index Inst"))
	require.True(t, IsInstitutional("SEB Sverige Klass I"))
	require.True(t, IsInstitutional("AMF Tjänstepension Global"))
	require.False(t, IsInstitutional("Avanza Zero"))
	require.False(t, IsInstitutional("Länsförsäkringar Global Index"))
}

func TestIsIndexFund_MatchesIndexAndPassiv(t *testing.T) {
	require.True(t, IsIndexFund("Länsförsäkringar Global Index"))
	require.True(t, IsIndexFund("Nordea Global Passiv"))
	require.False(t, IsIndexFund("Swedbank Robur Ny Teknik"))
}

func TestRiskFromRating_MapsToSwedishLabels(t *testing.T) {
	require.Equal(t, RiskLow, RiskFromRating(1))
	require.Equal(t, RiskLow, RiskFromRating(2))
	require.Equal(t, RiskMedium, RiskFromRating(3))
	require.Equal(t, RiskMedium, RiskFromRating(4))
	require.Equal(t, RiskHigh, RiskFromRating(5))
	require.Equal(t, RiskMedium, RiskFromRating(0), "missing rating defaults to Medel")
}

func TestFormatReturn_SignedWholePercent(t *testing.T) {
	require.Equal(t, "+22%", FormatReturn(21.7, true))
	require.Equal(t, "-3%", FormatReturn(-3.2, true))
	require.Equal(t, "+0%", FormatReturn(0, true))
	require.Equal(t, "N/A", FormatReturn(0, false))
}

func TestFormatFee_TwoDecimals(t *testing.T) {
	require.Equal(t, "0.20%", FormatFee(0.2, true))
	require.Equal(t, "N/A", FormatFee(0, false))
}

func TestDedupe_KeepsFirstOccurrence(t *testing.T) {
	fs := []Fund{
		{Name: "Avanza Zero", Fee: "0.00%"},
		{Name: "Avanza Zero", Fee: "0.10%"},
		{Name: "SPP Aktiefond Sverige"},
	}
	out := Dedupe(fs)
	require.Len(t, out, 2)
	require.Equal(t, "0.00%", out[0].Fee)
}

func TestCurated_BothGroupsPopulated(t *testing.T) {
	c := Curated()
	require.NotEmpty(t, c.Global)
	require.NotEmpty(t, c.Sweden)

	_, gi := Counts(c.Global)
	_, si := Counts(c.Sweden)
	require.Positive(t, gi, "curated global list includes institutional funds")
	require.Positive(t, si, "curated sweden list includes institutional funds")
}

func TestCollection_ByGroup(t *testing.T) {
	c := &Collection{Global: []Fund{{Name: "g"}}, Sweden: []Fund{{Name: "s"}}}
	require.Equal(t, "g", c.ByGroup(GroupGlobal)[0].Name)
	require.Equal(t, "s", c.ByGroup(GroupSweden)[0].Name)
	require.Nil(t, c.ByGroup(Group("other")))
}

func names(fs []Fund) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Name
	}
	return out
}
