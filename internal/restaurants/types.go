package restaurants

import (
	"context"
	"fmt"

	"tastetrail/internal/places"
)

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (l Location) Validate() error {
	if l.Lat < -90 || l.Lat > 90 {
		return fmt.Errorf("invalid latitude: %f", l.Lat)
	}
	if l.Lng < -180 || l.Lng > 180 {
		return fmt.Errorf("invalid longitude: %f", l.Lng)
	}
	return nil
}

// FilterConfig narrows a search result. The zero value of every field means
// "no constraint". Field order is fixed so the JSON form is canonical and
// safe to embed in cache fingerprints.
type FilterConfig struct {
	Cuisine  string  `json:"cuisine,omitempty"`
	Price    int     `json:"price,omitempty"`
	Rating   float64 `json:"rating,omitempty"`
	Search   string  `json:"search,omitempty"`
	RadiusKm float64 `json:"radius,omitempty"`
}

const defaultRadiusMeters = 5000

func (f FilterConfig) Validate() error {
	if f.Price < 0 || f.Price > 4 {
		return fmt.Errorf("price level must be between 1 and 4, got %d", f.Price)
	}
	if f.Rating < 0 || f.Rating > 5 {
		return fmt.Errorf("rating must be between 0 and 5, got %f", f.Rating)
	}
	if f.RadiusKm < 0 {
		return fmt.Errorf("radius must be positive, got %f", f.RadiusKm)
	}
	return nil
}

// RadiusMeters bounds the provider query; 5 km when unset.
func (f FilterConfig) RadiusMeters() int {
	if f.RadiusKm <= 0 {
		return defaultRadiusMeters
	}
	return int(f.RadiusKm * 1000)
}

type Restaurant struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Rating       float64   `json:"rating"`
	PriceLevel   int       `json:"price_level"`
	Types        []string  `json:"types"`
	PhotoURLs    []string  `json:"photo_urls"`
	Location     *Location `json:"location,omitempty"`
	Vicinity     string    `json:"vicinity,omitempty"`
	TotalRatings int       `json:"total_ratings"`
}

// ResultCache stores filtered search results keyed by fingerprint. Entries
// are write-once: a Put under an existing fingerprint keeps the stored list.
type ResultCache interface {
	Get(ctx context.Context, fingerprint string) ([]Restaurant, bool)
	Put(ctx context.Context, fingerprint string, results []Restaurant)
}

// Provider is the external places-search service.
type Provider interface {
	NearbySearch(ctx context.Context, lat, lng float64, radiusMeters int) (*places.SearchResponse, error)
}

// PhotoResolver turns a raw photo reference token into a renderable URL.
type PhotoResolver interface {
	PhotoURL(reference string, maxWidth int) string
}
