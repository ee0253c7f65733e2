package model

// DefaultAuthor is used when a review carries no recoverable author name.
const DefaultAuthor = "Anonymous"

// Company is the listing-level data assembled from the search API and the
// listing pages.
type Company struct {
	Name         string  `json:"name"`
	Logo         string  `json:"logo,omitempty"`
	Rating       float64 `json:"rating"`
	ReviewsCount int     `json:"reviewsCount"`
}

// Photo is a gallery image. URL and Thumbnail are derived from the same base
// CDN path by appending different size suffixes.
type Photo struct {
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
}
