// Package avanza scrapes Avanza's public fund list pages as a secondary
// data source when the screener API yields nothing.
package avanza

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/laninge/indexfonder-se/internal/funds"
)

// DefaultBaseURL is the public fund list page root.
const DefaultBaseURL = "https://www.avanza.se/fonder/lista.html"

// listPaths map listing groups onto the page's filter query.
var listPaths = map[funds.Group]string{
	funds.GroupGlobal: "?fondTyp=index&region=global",
	funds.GroupSweden: "?fondTyp=index&region=sverige",
}

// Client fetches and parses fund list pages.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a fund list client with the given per-request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{baseURL: DefaultBaseURL, httpClient: &http.Client{Timeout: timeout}}
}

// WithBaseURL overrides the list page root (used by tests).
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

// Fetch downloads and parses the fund list for a group.
func (c *Client) Fetch(ctx context.Context, group funds.Group) ([]funds.Fund, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+listPaths[group], nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fund list request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fund list returned status %d", resp.StatusCode)
	}
	parsed, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse fund list html: %w", err)
	}
	return extractFunds(parsed), nil
}

// extractFunds walks the document collecting rows from the fund table.
// Expected row shape: name, index, fee, 1y return, 5y return, risk.
func extractFunds(doc *html.Node) []funds.Fund {
	var out []funds.Fund
	for _, table := range findAll(doc, isFundTable) {
		for _, row := range findAll(table, isElement("tr")) {
			cells := cellTexts(row)
			if len(cells) < 6 || cells[0] == "" {
				continue
			}
			name := cells[0]
			out = append(out, funds.Fund{
				Name:          name,
				Index:         cells[1],
				Fee:           cells[2],
				Return1Y:      cells[3],
				Return5Y:      cells[4],
				Risk:          riskLabel(cells[5]),
				Institutional: funds.IsInstitutional(name),
			})
		}
	}
	return funds.Dedupe(out)
}

func riskLabel(raw string) funds.RiskLevel {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "låg", "low":
		return funds.RiskLow
	case "hög", "high":
		return funds.RiskHigh
	default:
		return funds.RiskMedium
	}
}

func isFundTable(n *html.Node) bool {
	if n.Type != html.ElementNode || n.Data != "table" {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key == "class" && strings.Contains(attr.Val, "fund") {
			return true
		}
	}
	return false
}

func isElement(name string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == name
	}
}

// findAll collects matching descendants, skipping descendants of matches.
func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if match(child) {
			out = append(out, child)
			continue
		}
		out = append(out, findAll(child, match)...)
	}
	return out
}

// cellTexts returns trimmed text content of each td in a row. Header rows
// use th cells and therefore yield nothing.
func cellTexts(row *html.Node) []string {
	var cells []string
	for _, cell := range findAll(row, isElement("td")) {
		cells = append(cells, strings.TrimSpace(textContent(cell)))
	}
	return cells
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		sb.WriteString(textContent(child))
	}
	return sb.String()
}
