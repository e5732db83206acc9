package avanza

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/laninge/indexfonder-se/internal/funds"
)

const listPage = `<!DOCTYPE html>
<html><body>
<h1>Indexfonder</h1>
<table class="fund-list">
<thead><tr><th>Fond</th><th>Index</th><th>Avgift</th><th>1 år</th><th>5 år</th><th>Risk</th></tr></thead>
<tbody>
<tr><td>Avanza Zero</td><td>OMX30</td><td>0.00%</td><td>+14%</td><td>+62%</td><td>Hög</td></tr>
<tr><td><a href="/f/1">Nordea Sverige Passiv Institutional</a></td><td>OMXSB GI</td><td>0.08%</td><td>+12%</td><td>+52%</td><td>hög</td></tr>
<tr><td>Avanza Zero</td><td>OMX30</td><td>0.00%</td><td>+14%</td><td>+62%</td><td>Hög</td></tr>
</tbody>
</table>
<table class="news"><tr><td>not a fund row</td></tr></table>
</body></html>`

func TestFetch_ParsesFundTableRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(listPage))
	}))
	defer server.Close()

	client := NewClient(time.Second).WithBaseURL(server.URL)
	got, err := client.Fetch(context.Background(), funds.GroupSweden)
	require.NoError(t, err)
	require.Len(t, got, 2, "header row skipped, duplicate removed, non-fund table ignored")

	require.Equal(t, "Avanza Zero", got[0].Name)
	require.Equal(t, "OMX30", got[0].Index)
	require.Equal(t, "0.00%", got[0].Fee)
	require.Equal(t, funds.RiskHigh, got[0].Risk)
	require.False(t, got[0].Institutional)

	require.Equal(t, "Nordea Sverige Passiv Institutional", got[1].Name)
	require.True(t, got[1].Institutional)
	require.Equal(t, funds.RiskHigh, got[1].Risk, "risk labels are case-insensitive")
}

func TestFetch_ServerError_Fails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(time.Second).WithBaseURL(server.URL)
	_, err := client.Fetch(context.Background(), funds.GroupSweden)
	require.Error(t, err)
}

func TestRiskLabel_Mapping(t *testing.T) {
	require.Equal(t, funds.RiskLow, riskLabel("Låg"))
	require.Equal(t, funds.RiskLow, riskLabel("low"))
	require.Equal(t, funds.RiskHigh, riskLabel("Hög"))
	require.Equal(t, funds.RiskMedium, riskLabel("Medel"))
	require.Equal(t, funds.RiskMedium, riskLabel("whatever"))
}
