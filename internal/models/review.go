package models

import "time"

type Review struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	CompanyID  string    `bson:"company_id" json:"companyId"`
	UserID     string    `bson:"user_id" json:"userId"`
	ReviewText string    `bson:"review_text" json:"reviewText"`
	Rating     int       `bson:"rating" json:"rating"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updatedAt"`
}

// EnrichedReview is a review joined with the reviewer's public identity,
// so clients render it without a second round-trip.
type EnrichedReview struct {
	Review   `bson:",inline"`
	Reviewer UserPublic `json:"reviewer"`
}

// RatingSummary is the aggregate recomputed from the full review set of a
// company. AvgRating is rounded to 2 decimal places; both are 0 when the
// company has no reviews.
type RatingSummary struct {
	AvgRating    float64 `bson:"avg_rating" json:"avgRating"`
	TotalReviews int64   `bson:"total_reviews" json:"totalReviews"`
}
