package domain

import "time"

// SearchResult is one package hit returned by a registry search.
type SearchResult struct {
	Name        DomainName
	Version     string
	Description string
	Date        time.Time
}
