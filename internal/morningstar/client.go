// Package morningstar queries the Morningstar fund screener API for index funds.
package morningstar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/laninge/indexfonder-se/internal/funds"
)

// DefaultBaseURL is the public screener endpoint.
const DefaultBaseURL = "https://www.morningstar.se/api/v1/screener"

const pageSize = 50

// searchTerms are the screener queries issued per listing group.
var searchTerms = map[funds.Group][]string{
	funds.GroupSweden: {"Sverige Index", "Sweden Index", "OMX", "SIX"},
	funds.GroupGlobal: {"Global Index", "World Index", "MSCI World", "MSCI ACWI", "S&P 500"},
}

// Client is a screener API client. Results are filtered down to passive
// index funds and deduplicated by name.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the screener endpoint (used by tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a screener client with the given per-request timeout.
func NewClient(timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// screenerRow is one fund row in a screener response.
type screenerRow struct {
	SecID         string   `json:"secId"`
	Name          string   `json:"name"`
	Benchmark     string   `json:"benchmark"`
	ISIN          string   `json:"isin"`
	OngoingCharge *float64 `json:"ongoingCharge"`
	Return1Y      *float64 `json:"return1y"`
	Return5Y      *float64 `json:"return5y"`
	RiskRating    *int     `json:"riskRating"`
}

type screenerResponse struct {
	Rows []screenerRow `json:"rows"`
}

// Fetch fans the group's search terms out over the screener and merges the
// results. Individual term failures are logged and skipped; Fetch only
// fails when the context is cancelled.
func (c *Client) Fetch(ctx context.Context, group funds.Group) ([]funds.Fund, error) {
	var out []funds.Fund
	for _, term := range searchTerms[group] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, err := c.search(ctx, group, term)
		if err != nil {
			slog.Warn("Screener query failed", "term", term, "error", err)
			continue
		}
		for _, row := range rows {
			if !funds.IsIndexFund(row.Name) {
				continue
			}
			out = append(out, rowToFund(row))
		}
	}
	return funds.Dedupe(out), nil
}

func (c *Client) search(ctx context.Context, group funds.Group, term string) ([]screenerRow, error) {
	country := "gb"
	if group == funds.GroupSweden {
		country = "se"
	}

	q := url.Values{}
	q.Set("search", term)
	q.Set("country", country)
	q.Set("pageSize", strconv.Itoa(pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("screener request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("screener returned status %d", resp.StatusCode)
	}

	var parsed screenerResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode screener response: %w", err)
	}
	return parsed.Rows, nil
}

func rowToFund(row screenerRow) funds.Fund {
	benchmark := row.Benchmark
	if benchmark == "" {
		benchmark = "N/A"
	}
	risk := funds.RiskMedium
	if row.RiskRating != nil {
		risk = funds.RiskFromRating(*row.RiskRating)
	}
	return funds.Fund{
		Name:          row.Name,
		Index:         benchmark,
		Fee:           funds.FormatFee(deref(row.OngoingCharge)),
		Return1Y:      funds.FormatReturn(deref(row.Return1Y)),
		Return5Y:      funds.FormatReturn(deref(row.Return5Y)),
		Risk:          risk,
		ISIN:          row.ISIN,
		Institutional: funds.IsInstitutional(row.Name),
		MorningstarID: row.SecID,
	}
}

func deref(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}
