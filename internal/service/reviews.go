package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/revuo/company-reviews/internal/models"
	"github.com/revuo/company-reviews/internal/repository"
)

// SubmitReviewInput carries one review submission. Reviewer comes from the
// verified identity context, never from the request body.
type SubmitReviewInput struct {
	CompanyID  string
	Reviewer   models.UserPublic
	ReviewText string
	Rating     int
}

type ListReviewsParams struct {
	CompanyID string
	Page      int
	Limit     int
	SortBy    string
	Order     string
}

type ReviewPagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int64 `json:"totalPages"`
	TotalReviews int64 `json:"totalReviews"`
	Limit        int   `json:"limit"`
}

type ReviewPage struct {
	Reviews    []models.EnrichedReview `json:"reviews"`
	Stats      models.RatingSummary    `json:"stats"`
	Pagination ReviewPagination        `json:"pagination"`
}

// ReviewService keeps the cached (avg_rating, total_reviews) pair on a
// company consistent with its review set.
type ReviewService struct {
	companies CompanyStore
	reviews   ReviewStore
	users     UserStore
	locks     *companyLocks
	log       *slog.Logger
}

func NewReviewService(companies CompanyStore, reviews ReviewStore, users UserStore, log *slog.Logger) *ReviewService {
	if log == nil {
		log = slog.Default()
	}
	return &ReviewService{
		companies: companies,
		reviews:   reviews,
		users:     users,
		locks:     newCompanyLocks(),
		log:       log,
	}
}

// Submit validates, persists the review, recomputes the company's rating
// summary from the full review set and rewrites the cached fields. The
// whole sequence holds the company's lock, so two submissions for the same
// company never interleave their recomputations. Duplicate submissions are
// stopped by the store's unique index, not by a read-then-write check.
func (s *ReviewService) Submit(ctx context.Context, in SubmitReviewInput) (*models.EnrichedReview, error) {
	if in.CompanyID == "" {
		return nil, fmt.Errorf("%w: companyId is required", ErrValidation)
	}
	if strings.TrimSpace(in.ReviewText) == "" {
		return nil, fmt.Errorf("%w: reviewText is required", ErrValidation)
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if in.Reviewer.ID == "" {
		return nil, fmt.Errorf("%w: reviewer is required", ErrValidation)
	}

	if _, err := s.companies.GetByID(ctx, in.CompanyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}

	mu := s.locks.get(in.CompanyID)
	mu.Lock()
	defer mu.Unlock()

	// Keep the reviewer snapshot fresh before the review references it.
	if err := s.users.UpsertPublic(ctx, in.Reviewer); err != nil {
		return nil, err
	}

	rv := models.Review{
		CompanyID:  in.CompanyID,
		UserID:     in.Reviewer.ID,
		ReviewText: strings.TrimSpace(in.ReviewText),
		Rating:     in.Rating,
	}
	if _, err := s.reviews.Create(ctx, &rv); err != nil {
		return nil, err
	}

	// Recompute from source rather than incrementing: a retry after a
	// partial failure then self-heals instead of compounding the drift.
	summary, err := s.reviews.Summary(ctx, in.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("recompute summary: %w", err)
	}
	if err := s.companies.UpdateRatingSummary(ctx, in.CompanyID, summary); err != nil {
		// The review is durable; the cached fields are stale until the
		// next accepted submission recomputes them.
		s.log.Error("rating_summary_update_failed", "company_id", in.CompanyID, "err", err)
		return nil, err
	}

	s.log.Info("review_submitted",
		"company_id", in.CompanyID,
		"user_id", in.Reviewer.ID,
		"rating", in.Rating,
		"avg_rating", summary.AvgRating,
		"total_reviews", summary.TotalReviews,
	)

	return &models.EnrichedReview{Review: rv, Reviewer: in.Reviewer}, nil
}

// reviewSortFields maps the API sort names onto stored field names.
var reviewSortFields = map[string]string{
	"createdAt": "created_at",
	"rating":    "rating",
}

// ListByCompany returns one page of a company's reviews with reviewer
// identity attached, plus stats recomputed over the full review set.
func (s *ReviewService) ListByCompany(ctx context.Context, p ListReviewsParams) (*ReviewPage, error) {
	if _, err := s.companies.GetByID(ctx, p.CompanyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}

	page, limit := normalizePage(p.Page, p.Limit, defaultReviewPageSize)

	sortField, ok := reviewSortFields[p.SortBy]
	if !ok {
		sortField = "created_at"
	}

	list, total, err := s.reviews.ListByCompany(ctx, repository.ReviewQuery{
		CompanyID: p.CompanyID,
		SortField: sortField,
		Order:     sortOrder(p.Order),
		Skip:      int64(page-1) * int64(limit),
		Limit:     int64(limit),
	})
	if err != nil {
		return nil, err
	}

	stats, err := s.reviews.Summary(ctx, p.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("recompute summary: %w", err)
	}

	enriched, err := s.enrich(ctx, list)
	if err != nil {
		return nil, err
	}

	return &ReviewPage{
		Reviews: enriched,
		Stats:   stats,
		Pagination: ReviewPagination{
			CurrentPage:  page,
			TotalPages:   totalPages(total, limit),
			TotalReviews: total,
			Limit:        limit,
		},
	}, nil
}

// enrich joins reviewer public identity onto each review in one batched
// lookup. A reviewer missing from the snapshot degrades to just the id.
func (s *ReviewService) enrich(ctx context.Context, list []models.Review) ([]models.EnrichedReview, error) {
	ids := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, rv := range list {
		if _, ok := seen[rv.UserID]; !ok {
			seen[rv.UserID] = struct{}{}
			ids = append(ids, rv.UserID)
		}
	}

	users, err := s.users.FindPublicByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.EnrichedReview, 0, len(list))
	for _, rv := range list {
		reviewer, ok := users[rv.UserID]
		if !ok {
			reviewer = models.UserPublic{ID: rv.UserID}
		}
		out = append(out, models.EnrichedReview{Review: rv, Reviewer: reviewer})
	}
	return out, nil
}
