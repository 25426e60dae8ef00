// Package filter narrows a listing set down to the records matching a
// set of search criteria. Apply is pure: it never mutates its inputs
// and returns the same output for the same input.
package filter

import (
	"strings"

	"homescape/server/internal/models"
)

// Apply returns the listings satisfying every active criterion, in the
// same relative order they appear in the input. A criterion is active
// only when its value is set; thresholds are applied literally, even
// nonsensical ones (negative minimums, min above max).
func Apply(listings []models.Listing, c models.FilterCriteria) []models.Listing {
	query := strings.ToLower(strings.TrimSpace(c.SearchQuery))

	result := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if query != "" && !matchesQuery(l, query) {
			continue
		}
		if c.PriceMin != nil && l.Price < *c.PriceMin {
			continue
		}
		if c.PriceMax != nil && l.Price > *c.PriceMax {
			continue
		}
		if c.Bedrooms != nil && l.Bedrooms < *c.Bedrooms {
			continue
		}
		if c.Bathrooms != nil && l.Bathrooms < *c.Bathrooms {
			continue
		}
		// An empty type set means unconstrained, not "match nothing".
		if len(c.PropertyTypes) > 0 && !containsType(c.PropertyTypes, l.PropertyType) {
			continue
		}
		result = append(result, l)
	}
	return result
}

// matchesQuery reports whether the lower-cased query is a substring of
// any searchable text field. Zip codes are numeric, so they are
// compared without case folding.
func matchesQuery(l models.Listing, query string) bool {
	return strings.Contains(strings.ToLower(l.Title), query) ||
		strings.Contains(strings.ToLower(l.Address), query) ||
		strings.Contains(strings.ToLower(l.City), query) ||
		strings.Contains(strings.ToLower(l.State), query) ||
		strings.Contains(l.ZipCode, query)
}

func containsType(types []string, propertyType string) bool {
	for _, t := range types {
		if t == propertyType {
			return true
		}
	}
	return false
}
