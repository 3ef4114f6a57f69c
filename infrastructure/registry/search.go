package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rios0rios0/unitypm/domain"
)

type searchResponse struct {
	Objects []struct {
		Package struct {
			Name        string `json:"name"`
			Version     string `json:"version"`
			Description string `json:"description"`
			Date        string `json:"date"`
		} `json:"package"`
	} `json:"objects"`
}

// oldSearchEntry is one entry of the legacy "/-/all" endpoint, which some
// registries still serve instead of "/-/v1/search".
type oldSearchEntry struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	DistTags    map[string]string `json:"dist-tags"`
	Time        map[string]string `json:"time"`
}

// Search queries the registry's search endpoint, falling back to the
// legacy all-packages endpoint when the registry does not implement it.
func (c *Client) Search(
	ctx context.Context,
	registry domain.Registry,
	query string,
) ([]domain.SearchResult, error) {
	endpoint := fmt.Sprintf("%s/-/v1/search?text=%s", registry.URL, url.QueryEscape(query))

	var resp searchResponse
	err := c.getJSON(ctx, registry, endpoint, &resp)
	if err == nil {
		results := make([]domain.SearchResult, 0, len(resp.Objects))
		for _, object := range resp.Objects {
			name, nameErr := domain.ParseDomainName(object.Package.Name)
			if nameErr != nil {
				continue
			}
			date, _ := time.Parse(time.RFC3339, object.Package.Date)
			results = append(results, domain.SearchResult{
				Name:        name,
				Version:     object.Package.Version,
				Description: object.Package.Description,
				Date:        date,
			})
		}
		return results, nil
	}

	if status, ok := err.(*statusError); ok && status.code >= 400 && status.code < 500 {
		return c.searchOld(ctx, registry, query)
	}
	return nil, err
}

// searchOld filters the legacy full package listing by substring match.
func (c *Client) searchOld(
	ctx context.Context,
	registry domain.Registry,
	query string,
) ([]domain.SearchResult, error) {
	endpoint := fmt.Sprintf("%s/-/all", registry.URL)

	// Entries are decoded lazily because the listing carries an
	// "_updated" bookkeeping key whose value is a bare number.
	var raw map[string]json.RawMessage
	if err := c.getJSON(ctx, registry, endpoint, &raw); err != nil {
		return nil, err
	}

	var results []domain.SearchResult
	for rawName, message := range raw {
		if strings.HasPrefix(rawName, "_") {
			continue
		}
		if !strings.Contains(rawName, query) {
			continue
		}
		var entry oldSearchEntry
		if err := json.Unmarshal(message, &entry); err != nil {
			continue
		}
		name, nameErr := domain.ParseDomainName(rawName)
		if nameErr != nil {
			continue
		}
		latest := entry.DistTags["latest"]
		var date time.Time
		if timestamp, ok := entry.Time["modified"]; ok {
			date, _ = time.Parse(time.RFC3339, timestamp)
		}
		results = append(results, domain.SearchResult{
			Name:        name,
			Version:     latest,
			Description: entry.Description,
			Date:        date,
		})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results, nil
}
