package models

import "time"

// Address is the already-geocoded location of a company. The geocoding
// itself happens upstream; we only store the resolved shape.
// formatted, lat and lon are always present together.
type Address struct {
	Formatted string  `bson:"formatted" json:"formatted"`
	Lat       float64 `bson:"lat" json:"lat"`
	Lon       float64 `bson:"lon" json:"lon"`
	City      string  `bson:"city,omitempty" json:"city,omitempty"`
	State     string  `bson:"state,omitempty" json:"state,omitempty"`
	Country   string  `bson:"country,omitempty" json:"country,omitempty"`
	Postcode  string  `bson:"postcode,omitempty" json:"postcode,omitempty"`
	PlaceID   string  `bson:"place_id,omitempty" json:"placeId,omitempty"`
}

type Company struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	CompanyName string    `bson:"company_name" json:"companyName"`
	Address     Address   `bson:"address" json:"address"`
	FoundedOn   time.Time `bson:"founded_on" json:"foundedOn"`
	Logo        string    `bson:"logo" json:"logo"`
	// avg_rating and total_reviews are derived from the reviews collection
	// and rewritten on every accepted review; never set them directly.
	AvgRating    float64   `bson:"avg_rating" json:"avgRating"`
	TotalReviews int64     `bson:"total_reviews" json:"totalReviews"`
	CreatedBy    string    `bson:"created_by" json:"createdBy"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}
