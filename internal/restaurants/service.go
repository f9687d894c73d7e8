package restaurants

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"tastetrail/internal/places"
)

// Service orchestrates a search: fingerprint, cache lookup, provider query,
// normalization, filtering, cache write.
type Service struct {
	provider   Provider
	cache      ResultCache
	normalizer *Normalizer
	logger     *slog.Logger
}

func NewService(provider Provider, cache ResultCache, normalizer *Normalizer, logger *slog.Logger) *Service {
	return &Service{
		provider:   provider,
		cache:      cache,
		normalizer: normalizer,
		logger:     logger,
	}
}

// Search returns the restaurants around location matching filters. An
// unchanged (location, filters) pair is answered from cache without a
// provider call; a ZERO_RESULTS answer caches as an empty list.
func (s *Service) Search(ctx context.Context, location *Location, filters FilterConfig) ([]Restaurant, error) {
	if location == nil {
		return nil, fmt.Errorf("%w: missing location", ErrInvalidInput)
	}
	if err := location.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := filters.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	fingerprint := Fingerprint(*location, filters)
	if cached, ok := s.cache.Get(ctx, fingerprint); ok {
		s.logger.Debug("using cached results", "fingerprint", fingerprint)
		return cached, nil
	}

	response, err := s.provider.NearbySearch(ctx, location.Lat, location.Lng, filters.RadiusMeters())
	if err != nil {
		if errors.Is(err, places.ErrUnknownStatus) {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	switch response.Status {
	case places.StatusOK:
	case places.StatusZeroResults:
		empty := []Restaurant{}
		s.cache.Put(ctx, fingerprint, empty)
		return empty, nil
	default:
		return nil, statusError(response.Status)
	}

	results := make([]Restaurant, 0, len(response.Results))
	for _, raw := range response.Results {
		results = append(results, s.normalizer.Normalize(raw))
	}
	results = ApplyFilters(results, filters)

	s.cache.Put(ctx, fingerprint, results)
	s.logger.Info("search completed", "fingerprint", fingerprint, "count", len(results))
	return results, nil
}

// Surprise picks one random restaurant from the search result; nil when the
// search came back empty.
func (s *Service) Surprise(ctx context.Context, location *Location, filters FilterConfig) (*Restaurant, error) {
	results, err := s.Search(ctx, location, filters)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	pick := results[rand.IntN(len(results))]
	return &pick, nil
}

// statusError maps every non-success provider status to an error kind.
func statusError(status places.Status) error {
	switch status {
	case places.StatusRequestDenied:
		return fmt.Errorf("%w: check that the API key is valid and the Places API is enabled", ErrAuthDenied)
	case places.StatusOverQueryLimit:
		return fmt.Errorf("%w: provider query limit reached", ErrQuotaExceeded)
	case places.StatusInvalidRequest:
		return fmt.Errorf("%w: check the location coordinates", ErrInvalidInput)
	case places.StatusUnknownError:
		return fmt.Errorf("%w: provider reported an internal error", ErrProviderUnavailable)
	default:
		return fmt.Errorf("%w: unexpected status %q", ErrMalformedResponse, status)
	}
}
