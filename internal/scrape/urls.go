package scrape

import (
	"fmt"
	"strings"
)

// DefaultMapsBaseURL is the root the listing pages live under.
const DefaultMapsBaseURL = "https://yandex.ru/maps"

// MainURL is the overview page of an organization.
func MainURL(base, placeID string) string {
	return fmt.Sprintf("%s/org/%s/", strings.TrimRight(base, "/"), placeID)
}

// ReviewsURL is reviews page n of an organization; page 1 has no query.
func ReviewsURL(base, placeID string, page int) string {
	u := fmt.Sprintf("%s/org/%s/reviews/", strings.TrimRight(base, "/"), placeID)
	if page > 1 {
		u += fmt.Sprintf("?page=%d", page)
	}
	return u
}
