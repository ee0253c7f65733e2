package model

import "time"

// Result is the payload returned for a listing fetch. Slices are always
// non-nil so the JSON form carries [] instead of null.
type Result struct {
	PlaceID        string    `json:"placeId"`
	CompanyName    string    `json:"companyName"`
	Rating         float64   `json:"rating"`
	ReviewsCount   int       `json:"reviewsCount"`
	CompanyLogo    string    `json:"companyLogo,omitempty"`
	Reviews        []Review  `json:"reviews"`
	Photos         []Photo   `json:"photos"`
	HasMoreReviews bool      `json:"hasMoreReviews"`
	Placeholder    bool      `json:"placeholder"`
	Error          string    `json:"error,omitempty"`
	FetchedAt      time.Time `json:"fetchedAt"`
}

// PageResult is the payload returned for an incremental reviews page.
type PageResult struct {
	Page           int      `json:"page"`
	Reviews        []Review `json:"reviews"`
	HasMoreReviews bool     `json:"hasMoreReviews"`
}

// Normalize replaces nil slices with empty ones.
func (r *Result) Normalize() {
	if r.Reviews == nil {
		r.Reviews = []Review{}
	}
	if r.Photos == nil {
		r.Photos = []Photo{}
	}
}

// Normalize replaces a nil review slice with an empty one.
func (p *PageResult) Normalize() {
	if p.Reviews == nil {
		p.Reviews = []Review{}
	}
}
