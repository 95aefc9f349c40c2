package handlers

import (
	"errors"
	"net/http"

	"github.com/revuo/company-reviews/internal/service"
	"github.com/revuo/company-reviews/internal/utils"
)

// The wire envelope every endpoint speaks: success responses carry data,
// error responses carry a message plus optional field-level details.

type successBody struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
}

type errorBody struct {
	Success    bool     `json:"success"`
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors"`
}

func respondOK(w http.ResponseWriter, code int, data any, message string) {
	utils.WriteJSON(w, code, successBody{
		Success:    true,
		StatusCode: code,
		Data:       data,
		Message:    message,
	})
}

func respondError(w http.ResponseWriter, code int, message string, details ...string) {
	if details == nil {
		details = []string{}
	}
	utils.WriteJSON(w, code, errorBody{
		Success:    false,
		StatusCode: code,
		Message:    message,
		Errors:     details,
	})
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Anything unrecognized is an internal error; the wrapped detail is never
// leaked for those.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrCompanyNotFound):
		respondError(w, http.StatusNotFound, "Company not found")
	case errors.Is(err, service.ErrDuplicateReview):
		respondError(w, http.StatusConflict, "You have already reviewed this company")
	default:
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
