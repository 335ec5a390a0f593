package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"

	"github.com/lakshsetu/go_career/internal/engine"
)

// LinkedIn public profile base URL — returns HTML, no auth required.
const linkedInProfileURL = "https://www.linkedin.com/in/"

// FetchLinkedInPublicProfile scrapes a public LinkedIn profile page and
// runs the result through the lenient profile parser. Only fields visible
// to logged-out visitors are available; counters the page does not expose
// stay zero. The []error slice carries dropped-entry reports from parsing.
func FetchLinkedInPublicProfile(ctx context.Context, publicID string) (*LinkedInExtract, []error, error) {
	body, err := linkedInRequest(ctx, linkedInProfileURL+publicID)
	if err != nil {
		return nil, nil, err
	}

	raw := rawProfileFromHTML(string(body))
	if raw["username"] == nil {
		raw["username"] = publicID
	}

	extract, dropped := ParseLinkedInProfile(raw)
	extract.Meta.SourceURL = linkedInProfileURL + publicID
	if err := extract.Validate(); err != nil {
		return nil, dropped, err
	}
	return extract, dropped, nil
}

// linkedInRequest fetches a LinkedIn URL using BrowserClient (Chrome TLS
// fingerprint) when available, falling back to the standard client.
// LinkedIn blocks non-browser TLS fingerprints, so BrowserClient is
// strongly preferred.
func linkedInRequest(ctx context.Context, targetURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, engine.Cfg.FetchTimeout)
	defer cancel()

	if engine.Cfg.BrowserClient != nil {
		headers := engine.ChromeHeaders()
		headers["accept"] = "text/html,application/xhtml+xml,application/xml;q=0.9"
		headers["referer"] = "https://www.linkedin.com/"

		return engine.RetryDo(ctx, engine.DefaultRetryConfig, func() ([]byte, error) {
			d, _, s, e := engine.Cfg.BrowserClient.Do("GET", targetURL, headers, nil)
			if e != nil {
				return nil, e
			}
			if s != 200 {
				return nil, fmt.Errorf("linkedin status %d", s)
			}
			return d, nil
		})
	}

	req, err := http.NewRequestWithContext(ctx, "GET", targetURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", engine.UserAgentChrome)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("linkedin status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 512*1024))
}

// rawProfileFromHTML builds a raw scraper-shaped payload from the public
// page. Prefers the schema.org/Person JSON-LD block, with tree-parsed
// fallbacks for headline and location.
func rawProfileFromHTML(body string) map[string]any {
	raw := map[string]any{}

	if person := extractPersonJSONLD(body); person != nil {
		if name, ok := person["name"].(string); ok {
			raw["username"] = name
		}
		if desc, ok := person["description"].(string); ok {
			raw["headline"] = engine.CleanHTML(desc)
		}
		if addr, ok := person["address"].(map[string]any); ok {
			var parts []string
			if city, ok := addr["addressLocality"].(string); ok && city != "" {
				parts = append(parts, city)
			}
			if country, ok := addr["addressCountry"].(string); ok && country != "" {
				parts = append(parts, country)
			}
			if len(parts) > 0 {
				raw["location"] = strings.Join(parts, ", ")
			}
		}
		if alumni, ok := person["alumniOf"].([]any); ok {
			var education []any
			for _, a := range alumni {
				am, ok := a.(map[string]any)
				if !ok {
					continue
				}
				if name, ok := am["name"].(string); ok && name != "" {
					education = append(education, map[string]any{"name": name})
				}
			}
			if len(education) > 0 {
				raw["education"] = education
			}
		}
	}

	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return raw
	}
	if raw["headline"] == nil {
		if n := findByClass(doc, "top-card-layout__headline"); n != nil {
			raw["headline"] = strings.TrimSpace(textContent(n))
		}
	}
	if raw["location"] == nil {
		if n := findByClass(doc, "top-card__subline-item"); n != nil {
			raw["location"] = strings.TrimSpace(textContent(n))
		}
	}
	return raw
}

// extractPersonJSONLD extracts the schema.org/Person JSON-LD block.
func extractPersonJSONLD(body string) map[string]any {
	marker := `"@type":"Person"`
	markerAlt := `"@type": "Person"`

	idx := strings.Index(body, marker)
	if idx == -1 {
		idx = strings.Index(body, markerAlt)
	}
	if idx == -1 {
		return nil
	}

	scriptStart := strings.LastIndex(body[:idx], "<script")
	if scriptStart == -1 {
		return nil
	}
	scriptEnd := strings.Index(body[scriptStart:], "</script>")
	if scriptEnd == -1 {
		return nil
	}

	scriptContent := body[scriptStart : scriptStart+scriptEnd]
	jsonStart := strings.Index(scriptContent, ">")
	if jsonStart == -1 {
		return nil
	}
	jsonStr := strings.TrimSpace(scriptContent[jsonStart+1:])

	var data map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		return nil
	}

	// The block may be the Person itself or a @graph wrapper around it.
	if t, _ := data["@type"].(string); t == "Person" {
		return data
	}
	if graph, ok := data["@graph"].([]any); ok {
		for _, item := range graph {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if t, _ := m["@type"].(string); t == "Person" {
				return m
			}
		}
	}
	return nil
}

// --- HTML tree helpers ---

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, className string) bool {
	return strings.Contains(getAttr(n, "class"), className)
}

// textContent recursively extracts all text from a node.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}

// findByClass finds the first descendant element with the given class.
func findByClass(n *html.Node, className string) *html.Node {
	if n.Type == html.ElementNode && hasClass(n, className) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByClass(c, className); found != nil {
			return found
		}
	}
	return nil
}
