package places

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Status is the provider's response status for a nearby search.
type Status string

const (
	StatusOK             Status = "OK"
	StatusZeroResults    Status = "ZERO_RESULTS"
	StatusInvalidRequest Status = "INVALID_REQUEST"
	StatusRequestDenied  Status = "REQUEST_DENIED"
	StatusOverQueryLimit Status = "OVER_QUERY_LIMIT"
	StatusUnknownError   Status = "UNKNOWN_ERROR"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusOK, StatusZeroResults, StatusInvalidRequest, StatusRequestDenied,
		StatusOverQueryLimit, StatusUnknownError:
		return true
	default:
		return false
	}
}

type SearchResponse struct {
	Results      []Place `json:"results"`
	Status       Status  `json:"status"`
	ErrorMessage string  `json:"error_message,omitempty"`
}

type Place struct {
	PlaceID          string    `json:"place_id"`
	Name             string    `json:"name"`
	Rating           *float64  `json:"rating,omitempty"`
	PriceLevel       *int      `json:"price_level,omitempty"`
	Types            []string  `json:"types,omitempty"`
	Photos           []Photo   `json:"photos,omitempty"`
	Geometry         *Geometry `json:"geometry,omitempty"`
	Vicinity         *string   `json:"vicinity,omitempty"`
	UserRatingsTotal *int      `json:"user_ratings_total,omitempty"`
}

type Geometry struct {
	Location *LatLng `json:"location,omitempty"`
}

// UnmarshalJSON degrades a malformed location to nil instead of failing the
// whole place record.
func (g *Geometry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Location json.RawMessage `json:"location"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	if len(raw.Location) == 0 {
		return nil
	}
	var location LatLng
	if err := json.Unmarshal(raw.Location, &location); err != nil {
		return nil
	}
	g.Location = &location
	return nil
}

// LatLng tolerates coordinates arriving as JSON numbers or numeric strings.
type LatLng struct {
	Lat float64
	Lng float64
}

func (l *LatLng) UnmarshalJSON(data []byte) error {
	var raw struct {
		Lat json.RawMessage `json:"lat"`
		Lng json.RawMessage `json:"lng"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	lat, err := coordFromRaw(raw.Lat)
	if err != nil {
		return err
	}
	lng, err := coordFromRaw(raw.Lng)
	if err != nil {
		return err
	}
	l.Lat, l.Lng = lat, lng
	return nil
}

func coordFromRaw(raw json.RawMessage) (float64, error) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, err
	}
	return strconv.ParseFloat(s, 64)
}

// PhotoKind tags the variant carried by a Photo entry.
type PhotoKind int

const (
	PhotoUnresolvable PhotoKind = iota
	PhotoURL
	PhotoReference
)

// Photo is a tagged variant over the shapes the provider uses for photo
// entries: an already-resolved URL string, a bare reference token, or an
// object carrying either. Anything else decodes as PhotoUnresolvable rather
// than failing the whole place record.
type Photo struct {
	Kind      PhotoKind
	URL       string
	Reference string
}

func (p *Photo) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch {
		case strings.HasPrefix(s, "http://"), strings.HasPrefix(s, "https://"):
			p.Kind, p.URL = PhotoURL, s
		case s != "":
			p.Kind, p.Reference = PhotoReference, s
		default:
			p.Kind = PhotoUnresolvable
		}
		return nil
	}

	var obj struct {
		URL            string `json:"url"`
		PhotoReference string `json:"photo_reference"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		p.Kind = PhotoUnresolvable
		return nil
	}
	switch {
	case obj.URL != "":
		p.Kind, p.URL = PhotoURL, obj.URL
	case obj.PhotoReference != "":
		p.Kind, p.Reference = PhotoReference, obj.PhotoReference
	default:
		p.Kind = PhotoUnresolvable
	}
	return nil
}
