package restaurants

import (
	"encoding/json"
	"strconv"
)

// Fingerprint derives the cache key for a search. Struct marshalling emits
// fields in declaration order, so structurally equal inputs always produce
// the same string.
func Fingerprint(location Location, filters FilterConfig) string {
	serialized, err := json.Marshal(filters)
	if err != nil {
		// FilterConfig holds only scalars; marshalling cannot fail.
		serialized = []byte("{}")
	}
	return formatCoord(location.Lat) + "_" + formatCoord(location.Lng) + "_" + string(serialized)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
