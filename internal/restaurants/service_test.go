package restaurants_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"tastetrail/internal/cache"
	"tastetrail/internal/places"
	"tastetrail/internal/restaurants"
)

type fakeProvider struct {
	calls    int
	response *places.SearchResponse
	err      error
}

func (p *fakeProvider) NearbySearch(_ context.Context, _, _ float64, _ int) (*places.SearchResponse, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.response, nil
}

func newService(provider *fakeProvider) *restaurants.Service {
	logger := discardLogger()
	normalizer := restaurants.NewNormalizer(fakePhotoResolver{}, logger)
	store := cache.NewStore(nil, 0, logger)
	return restaurants.NewService(provider, store, normalizer, logger)
}

func okResponse(results ...places.Place) *places.SearchResponse {
	return &places.SearchResponse{Status: places.StatusOK, Results: results}
}

func place(id string, priceLevel int) places.Place {
	return places.Place{PlaceID: id, Name: "Place " + id, PriceLevel: &priceLevel}
}

func TestSearchRequiresLocation(t *testing.T) {
	service := newService(&fakeProvider{response: okResponse()})

	_, err := service.Search(context.Background(), nil, restaurants.FilterConfig{})
	require.ErrorIs(t, err, restaurants.ErrInvalidInput)
}

func TestSearchRejectsOutOfRangeFilters(t *testing.T) {
	provider := &fakeProvider{response: okResponse()}
	service := newService(provider)
	loc := &restaurants.Location{Lat: 1, Lng: 2}

	_, err := service.Search(context.Background(), loc, restaurants.FilterConfig{Price: 7})
	require.ErrorIs(t, err, restaurants.ErrInvalidInput)
	require.Zero(t, provider.calls)
}

func TestSearchHitsCacheOnSecondCall(t *testing.T) {
	provider := &fakeProvider{response: okResponse(place("a", 2), place("b", 3))}
	service := newService(provider)
	loc := &restaurants.Location{Lat: 1, Lng: 2}
	filters := restaurants.FilterConfig{}

	first, err := service.Search(context.Background(), loc, filters)
	require.NoError(t, err)
	second, err := service.Search(context.Background(), loc, filters)
	require.NoError(t, err)

	require.Equal(t, 1, provider.calls)
	require.Equal(t, first, second)
}

func TestSearchFiltersBeforeCaching(t *testing.T) {
	provider := &fakeProvider{response: okResponse(place("a", 2), place("b", 3))}
	service := newService(provider)
	loc := &restaurants.Location{Lat: 1, Lng: 2}

	results, err := service.Search(context.Background(), loc, restaurants.FilterConfig{Price: 2})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "a", results[0].ID)

	// The cached entry holds the filtered list for this exact fingerprint.
	cached, err := service.Search(context.Background(), loc, restaurants.FilterConfig{Price: 2})
	require.NoError(t, err)
	require.Equal(t, results, cached)
	require.Equal(t, 1, provider.calls)

	// A different price is a different fingerprint: fresh provider call.
	_, err = service.Search(context.Background(), loc, restaurants.FilterConfig{Price: 3})
	require.NoError(t, err)
	require.Equal(t, 2, provider.calls)
}

func TestSearchCachesZeroResults(t *testing.T) {
	provider := &fakeProvider{response: &places.SearchResponse{Status: places.StatusZeroResults}}
	service := newService(provider)
	loc := &restaurants.Location{Lat: 1, Lng: 2}

	results, err := service.Search(context.Background(), loc, restaurants.FilterConfig{})
	require.NoError(t, err)
	require.Empty(t, results)

	again, err := service.Search(context.Background(), loc, restaurants.FilterConfig{})
	require.NoError(t, err)
	require.Empty(t, again)
	require.Equal(t, 1, provider.calls)
}

func TestSearchMapsProviderStatuses(t *testing.T) {
	tests := []struct {
		status places.Status
		want   error
	}{
		{places.StatusRequestDenied, restaurants.ErrAuthDenied},
		{places.StatusOverQueryLimit, restaurants.ErrQuotaExceeded},
		{places.StatusInvalidRequest, restaurants.ErrInvalidInput},
		{places.StatusUnknownError, restaurants.ErrProviderUnavailable},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			provider := &fakeProvider{response: &places.SearchResponse{Status: tt.status}}
			service := newService(provider)
			loc := &restaurants.Location{Lat: 1, Lng: 2}

			_, err := service.Search(context.Background(), loc, restaurants.FilterConfig{})
			require.ErrorIs(t, err, tt.want)

			// Failures are never cached: the next call queries again.
			_, err = service.Search(context.Background(), loc, restaurants.FilterConfig{})
			require.Error(t, err)
			require.Equal(t, 2, provider.calls)
		})
	}
}

func TestSearchWrapsTransportErrors(t *testing.T) {
	provider := &fakeProvider{err: errors.New("connection refused")}
	service := newService(provider)
	loc := &restaurants.Location{Lat: 1, Lng: 2}

	_, err := service.Search(context.Background(), loc, restaurants.FilterConfig{})
	require.ErrorIs(t, err, restaurants.ErrProviderUnavailable)
}

func TestSearchClassifiesUnknownStatusAsMalformed(t *testing.T) {
	provider := &fakeProvider{err: fmt.Errorf("%w %q", places.ErrUnknownStatus, "BANANA")}
	service := newService(provider)
	loc := &restaurants.Location{Lat: 1, Lng: 2}

	_, err := service.Search(context.Background(), loc, restaurants.FilterConfig{})
	require.ErrorIs(t, err, restaurants.ErrMalformedResponse)
	require.NotErrorIs(t, err, restaurants.ErrProviderUnavailable)
}

func TestSurprisePicksFromResults(t *testing.T) {
	provider := &fakeProvider{response: okResponse(place("a", 2), place("b", 2), place("c", 2))}
	service := newService(provider)
	loc := &restaurants.Location{Lat: 1, Lng: 2}

	pick, err := service.Surprise(context.Background(), loc, restaurants.FilterConfig{})
	require.NoError(t, err)
	require.NotNil(t, pick)
	require.Contains(t, []string{"a", "b", "c"}, pick.ID)
}

func TestSurpriseOnEmptyResult(t *testing.T) {
	provider := &fakeProvider{response: &places.SearchResponse{Status: places.StatusZeroResults}}
	service := newService(provider)
	loc := &restaurants.Location{Lat: 1, Lng: 2}

	pick, err := service.Surprise(context.Background(), loc, restaurants.FilterConfig{})
	require.NoError(t, err)
	require.Nil(t, pick)
}
