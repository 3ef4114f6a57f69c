package application

import (
	"context"

	"github.com/rios0rios0/unitypm/config"
	"github.com/rios0rios0/unitypm/domain"
)

// PackageSearcher queries a registry's search endpoint.
type PackageSearcher interface {
	Search(ctx context.Context, registry domain.Registry, query string) ([]domain.SearchResult, error)
}

// SearchService queries the primary registry for packages.
type SearchService struct {
	searcher PackageSearcher
}

// NewSearchService creates the search orchestrator.
func NewSearchService(searcher PackageSearcher) *SearchService {
	return &SearchService{searcher: searcher}
}

// Search queries the primary registry. The upstream registry is not
// searched: its catalog is too large to be useful as search output.
func (s *SearchService) Search(ctx context.Context, env config.Env, query string) ([]domain.SearchResult, error) {
	return s.searcher.Search(ctx, env.PrimaryRegistry, query)
}
