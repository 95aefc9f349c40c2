package handlers

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/revuo/company-reviews/internal/models"
)

// parseAddress accepts the address either as a JSON object or as a string
// containing a JSON object, and produces the typed value or an error.
// Nothing downstream ever sees an unvalidated address shape.
func parseAddress(raw json.RawMessage) (models.Address, error) {
	if len(raw) == 0 {
		return models.Address{}, errors.New("address is required")
	}

	data := []byte(raw)
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		data = []byte(asString)
	}

	var dto addressDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return models.Address{}, errors.New("invalid address format")
	}
	if dto.Formatted == "" || dto.Lat == nil || dto.Lon == nil {
		return models.Address{}, errors.New("address must contain formatted, lat and lon")
	}

	return models.Address{
		Formatted: dto.Formatted,
		Lat:       *dto.Lat,
		Lon:       *dto.Lon,
		City:      dto.City,
		State:     dto.State,
		Country:   dto.Country,
		Postcode:  dto.Postcode,
		PlaceID:   dto.PlaceID,
	}, nil
}

// parseFoundedOn accepts a plain date or a full RFC 3339 timestamp.
func parseFoundedOn(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("foundedOn is required")
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, errors.New("foundedOn must be a date (YYYY-MM-DD) or RFC3339 timestamp")
}

func validateCreateDTO(d CompanyCreateDTO) error {
	if strings.TrimSpace(d.CompanyName) == "" {
		return errors.New("companyName is required")
	}
	if len(d.Address) == 0 {
		return errors.New("address is required")
	}
	if strings.TrimSpace(d.FoundedOn) == "" {
		return errors.New("foundedOn is required")
	}
	return nil
}

func validateReviewDTO(d ReviewCreateDTO) error {
	if d.CompanyID == "" {
		return errors.New("companyId is required")
	}
	if strings.TrimSpace(d.ReviewText) == "" {
		return errors.New("reviewText is required")
	}
	if d.Rating < 1 || d.Rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	return nil
}
