package quote

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const profileBaseURL = "https://finance.yahoo.com/quote"

// fetchSector scrapes the sector name from the symbol's profile page.
// Best effort only: callers treat any error as "no sector".
func (f *YahooFetcher) fetchSector(ctx context.Context, symbol string) (string, error) {
	url := fmt.Sprintf("%s/%s/profile", profileBaseURL, symbol)

	resp, err := f.httpClient.Get(ctx, url)
	if err != nil {
		return "", fmt.Errorf("profile request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("profile request: unexpected status code %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse profile page: %w", err)
	}

	// The profile page labels the sector with a "Sector(s):" span followed
	// by the value span. Fall back to the sector link if the layout shifts.
	var sector string
	doc.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.HasPrefix(strings.TrimSpace(s.Text()), "Sector") {
			if next := s.Next(); next.Length() > 0 {
				sector = strings.TrimSpace(next.Text())
				return false
			}
		}
		return true
	})

	if sector == "" {
		sector = strings.TrimSpace(doc.Find("a[href*='/sectors/']").First().Text())
	}

	if sector == "" {
		return "", fmt.Errorf("sector not found on profile page for %s", symbol)
	}

	return sector, nil
}
