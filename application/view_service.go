package application

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/unitypm/config"
	"github.com/rios0rios0/unitypm/domain"
)

// ViewResult is the packument a view request located, with the registry
// that satisfied it.
type ViewResult struct {
	Packument domain.Packument
	Upstream  bool
}

// ViewService fetches package metadata for display.
type ViewService struct {
	source PackumentSource
}

// NewViewService creates the view orchestrator.
func NewViewService(source PackumentSource) *ViewService {
	return &ViewService{source: source}
}

// View fetches the packument for a package, falling back to the
// upstream registry when the primary does not carry it.
func (s *ViewService) View(
	ctx context.Context,
	env config.Env,
	name domain.DomainName,
) (*ViewResult, error) {
	packument, err := s.source.FetchPackument(ctx, env.PrimaryRegistry, name)
	if err == nil {
		return &ViewResult{Packument: packument}, nil
	}

	upstream := env.UpstreamOrNil()
	if upstream == nil || !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	logger.Debugf("Package %q not in primary registry, trying upstream", name)
	packument, upstreamErr := s.source.FetchPackument(ctx, *upstream, name)
	if upstreamErr != nil {
		return nil, err
	}
	return &ViewResult{Packument: packument, Upstream: true}, nil
}
