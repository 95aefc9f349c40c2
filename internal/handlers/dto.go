package handlers

import "encoding/json"

// CompanyCreateDTO is the create contract. avgRating/totalReviews are
// derived server-side and never accepted from the client. The address is
// kept raw because clients send it either as an object or as a JSON string
// (the web form does the latter); parsing happens in validate.go.
type CompanyCreateDTO struct {
	CompanyName string          `json:"companyName"`
	Address     json.RawMessage `json:"address"`
	FoundedOn   string          `json:"foundedOn"`
	Logo        string          `json:"logo"`
}

// addressDTO uses pointers for lat/lon so "omitted" is distinguishable
// from a legitimate 0.0 coordinate.
type addressDTO struct {
	Formatted string   `json:"formatted"`
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	Country   string   `json:"country"`
	Postcode  string   `json:"postcode"`
	PlaceID   string   `json:"placeId"`
}

type ReviewCreateDTO struct {
	CompanyID  string `json:"companyId"`
	ReviewText string `json:"reviewText"`
	Rating     int    `json:"rating"`
}
