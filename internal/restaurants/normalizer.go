package restaurants

import (
	"log/slog"

	"tastetrail/internal/places"
)

const photoMaxWidth = 800

// Normalizer converts raw provider place records into Restaurants. It is
// total: any malformed field degrades to its default instead of failing the
// record.
type Normalizer struct {
	photos PhotoResolver
	logger *slog.Logger
}

func NewNormalizer(photos PhotoResolver, logger *slog.Logger) *Normalizer {
	return &Normalizer{
		photos: photos,
		logger: logger,
	}
}

func (n *Normalizer) Normalize(place places.Place) Restaurant {
	restaurant := Restaurant{
		ID:        place.PlaceID,
		Name:      place.Name,
		Types:     []string{},
		PhotoURLs: []string{},
	}

	if place.Rating != nil && *place.Rating >= 0 {
		restaurant.Rating = *place.Rating
	}
	if place.PriceLevel != nil && *place.PriceLevel >= 1 && *place.PriceLevel <= 4 {
		restaurant.PriceLevel = *place.PriceLevel
	}
	if len(place.Types) > 0 {
		restaurant.Types = place.Types
	}
	if place.Vicinity != nil {
		restaurant.Vicinity = *place.Vicinity
	}
	if place.UserRatingsTotal != nil && *place.UserRatingsTotal > 0 {
		restaurant.TotalRatings = *place.UserRatingsTotal
	}

	for _, photo := range place.Photos {
		switch photo.Kind {
		case places.PhotoURL:
			restaurant.PhotoURLs = append(restaurant.PhotoURLs, photo.URL)
		case places.PhotoReference:
			restaurant.PhotoURLs = append(restaurant.PhotoURLs, n.photos.PhotoURL(photo.Reference, photoMaxWidth))
		default:
			n.logger.Warn("dropping unresolvable photo entry", "place_id", place.PlaceID)
		}
	}

	if place.Geometry != nil && place.Geometry.Location != nil {
		restaurant.Location = &Location{
			Lat: place.Geometry.Location.Lat,
			Lng: place.Geometry.Location.Lng,
		}
	}

	return restaurant
}
