package restaurants

import "strings"

// ApplyFilters keeps the restaurants satisfying every active constraint,
// preserving the input order. A filter whose config field is empty is
// skipped. Radius is a provider-query bound and is never re-applied here.
func ApplyFilters(list []Restaurant, filters FilterConfig) []Restaurant {
	filtered := make([]Restaurant, 0, len(list))
	for _, restaurant := range list {
		if matches(restaurant, filters) {
			filtered = append(filtered, restaurant)
		}
	}
	return filtered
}

func matches(r Restaurant, filters FilterConfig) bool {
	if filters.Cuisine != "" && !anyTypeContains(r.Types, filters.Cuisine) {
		return false
	}
	// An unknown price level (0) never matches an active price filter.
	if filters.Price != 0 && r.PriceLevel != filters.Price {
		return false
	}
	if filters.Rating != 0 && r.Rating < filters.Rating {
		return false
	}
	if filters.Search != "" {
		needle := strings.ToLower(filters.Search)
		if !strings.Contains(strings.ToLower(r.Name), needle) && !anyTypeContains(r.Types, filters.Search) {
			return false
		}
	}
	return true
}

func anyTypeContains(types []string, needle string) bool {
	needle = strings.ToLower(needle)
	for _, t := range types {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}
