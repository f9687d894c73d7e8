package restaurants_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tastetrail/internal/restaurants"
)

func TestFingerprintIsDeterministic(t *testing.T) {
	location := restaurants.Location{Lat: 48.8566, Lng: 2.3522}
	filters := restaurants.FilterConfig{Cuisine: "italian", Price: 2, Rating: 4, Search: "pizza", RadiusKm: 3}

	first := restaurants.Fingerprint(location, filters)
	second := restaurants.Fingerprint(location, filters)
	require.Equal(t, first, second)

	// A structurally equal but separately constructed config must produce
	// the same fingerprint.
	rebuilt := restaurants.FilterConfig{}
	rebuilt.Search = "pizza"
	rebuilt.RadiusKm = 3
	rebuilt.Rating = 4
	rebuilt.Price = 2
	rebuilt.Cuisine = "italian"
	require.Equal(t, first, restaurants.Fingerprint(location, rebuilt))
}

func TestFingerprintCanonicalForm(t *testing.T) {
	location := restaurants.Location{Lat: 1.0, Lng: 2.0}
	filters := restaurants.FilterConfig{Price: 2}

	require.Equal(t, `1_2_{"price":2}`, restaurants.Fingerprint(location, filters))
}

func TestFingerprintChangesWithAnyField(t *testing.T) {
	location := restaurants.Location{Lat: 1.0, Lng: 2.0}
	base := restaurants.Fingerprint(location, restaurants.FilterConfig{})

	variants := []restaurants.FilterConfig{
		{Cuisine: "sushi"},
		{Price: 3},
		{Rating: 4.5},
		{Search: "noodles"},
		{RadiusKm: 10},
	}
	seen := map[string]bool{base: true}
	for _, filters := range variants {
		fingerprint := restaurants.Fingerprint(location, filters)
		require.False(t, seen[fingerprint], "fingerprint %q not unique", fingerprint)
		seen[fingerprint] = true
	}

	moved := restaurants.Fingerprint(restaurants.Location{Lat: 1.5, Lng: 2.0}, restaurants.FilterConfig{})
	require.NotEqual(t, base, moved)
}
