package morningstar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/laninge/indexfonder-se/internal/funds"
)

func f64(v float64) *float64 { return &v }
func iPtr(v int) *int        { return &v }

func TestFetch_MapsScreenerRowsToFunds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "se", r.URL.Query().Get("country"))
		require.Equal(t, "50", r.URL.Query().Get("pageSize"))

		resp := screenerResponse{Rows: []screenerRow{
			{
				SecID:         "F000SE1",
				Name:          "SEB Sverige Indexnära",
				Benchmark:     "SIX Return Index",
				ISIN:          "SE0000984312",
				OngoingCharge: f64(0.24),
				Return1Y:      f64(12.3),
				Return5Y:      f64(51.0),
				RiskRating:    iPtr(6),
			},
			{SecID: "F000SE2", Name: "Aktiv Sverigefond"}, // not an index fund
		}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(time.Second, WithBaseURL(server.URL))
	got, err := client.Fetch(context.Background(), funds.GroupSweden)
	require.NoError(t, err)
	require.Len(t, got, 1)

	fund := got[0]
	require.Equal(t, "SEB Sverige Indexnära", fund.Name)
	require.Equal(t, "SIX Return Index", fund.Index)
	require.Equal(t, "0.24%", fund.Fee)
	require.Equal(t, "+12%", fund.Return1Y)
	require.Equal(t, "+51%", fund.Return5Y)
	require.Equal(t, funds.RiskHigh, fund.Risk)
	require.Equal(t, "SE0000984312", fund.ISIN)
	require.Equal(t, "F000SE1", fund.MorningstarID)
	require.False(t, fund.Institutional)
}

func TestFetch_DeduplicatesAcrossSearchTerms(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Same fund returned for every search term.
		resp := screenerResponse{Rows: []screenerRow{
			{SecID: "F0GBR1", Name: "Global Index Fund", OngoingCharge: f64(0.2)},
		}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(time.Second, WithBaseURL(server.URL))
	got, err := client.Fetch(context.Background(), funds.GroupGlobal)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestFetch_MissingFieldsBecomeNA(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := screenerResponse{Rows: []screenerRow{{SecID: "X", Name: "Bare Index Fund"}}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(time.Second, WithBaseURL(server.URL))
	got, err := client.Fetch(context.Background(), funds.GroupGlobal)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "N/A", got[0].Index)
	require.Equal(t, "N/A", got[0].Fee)
	require.Equal(t, "N/A", got[0].Return1Y)
	require.Equal(t, funds.RiskMedium, got[0].Risk)
}

func TestFetch_ServerErrorsYieldEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(time.Second, WithBaseURL(server.URL))
	got, err := client.Fetch(context.Background(), funds.GroupGlobal)
	require.NoError(t, err, "per-term failures are skipped, not fatal")
	require.Empty(t, got)
}

func TestFetch_CancelledContext_Fails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(time.Second)
	_, err := client.Fetch(ctx, funds.GroupGlobal)
	require.Error(t, err)
}
