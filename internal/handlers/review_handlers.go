package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/revuo/company-reviews/internal/models"
	"github.com/revuo/company-reviews/internal/service"
	"github.com/revuo/company-reviews/internal/utils"
)

type ReviewService interface {
	Submit(ctx context.Context, in service.SubmitReviewInput) (*models.EnrichedReview, error)
	ListByCompany(ctx context.Context, p service.ListReviewsParams) (*service.ReviewPage, error)
}

type ReviewHandler struct {
	Svc ReviewService
}

func NewReviewHandler(svc ReviewService) *ReviewHandler {
	return &ReviewHandler{Svc: svc}
}

// expects /api/reviews/company/{id}
func parseCompanyIDFromReviewPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 4 && parts[0] == "api" && parts[1] == "reviews" && parts[2] == "company" && parts[3] != "" {
		return parts[3], true
	}
	return "", false
}

func (h *ReviewHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	switch r.Method {

	case http.MethodPost:
		identity, ok := identityFromRequest(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		var dto ReviewCreateDTO
		if err := utils.DecodeStrict(r.Body, &dto); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}
		if err := validateReviewDTO(dto); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()
		rv, err := h.Svc.Submit(ctx, service.SubmitReviewInput{
			CompanyID:  dto.CompanyID,
			Reviewer:   identity,
			ReviewText: dto.ReviewText,
			Rating:     dto.Rating,
		})
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondOK(w, http.StatusCreated, rv, "Review created successfully")

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *ReviewHandler) ReviewsByCompany(w http.ResponseWriter, r *http.Request) {
	companyID, ok := parseCompanyIDFromReviewPath(r.URL.Path)
	if !ok {
		respondError(w, http.StatusNotFound, "Company not found")
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	params := service.ListReviewsParams{
		CompanyID: companyID,
		Page:      parseIntParam(q.Get("page"), 1),
		Limit:     parseIntParam(q.Get("limit"), 5),
		SortBy:    q.Get("sortBy"),
		Order:     q.Get("order"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	page, err := h.Svc.ListByCompany(ctx, params)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondOK(w, http.StatusOK, page, "Reviews fetched successfully")
}
