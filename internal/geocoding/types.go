package geocoding

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

type geocodeResponse struct {
	Results      []geocodeResult `json:"results"`
	Status       Status          `json:"status"`
	ErrorMessage string          `json:"error_message,omitempty"`
}

type geocodeResult struct {
	FormattedAddress string   `json:"formatted_address"`
	Geometry         geometry `json:"geometry"`
}

type geometry struct {
	Location latLng `json:"location"`
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location is a successfully geocoded address.
type Location struct {
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	FormattedAddress string  `json:"formatted_address"`
}
