package service

import (
	"context"
	"errors"

	"github.com/revuo/company-reviews/internal/models"
	"github.com/revuo/company-reviews/internal/repository"
)

var (
	// ErrValidation marks malformed or missing input, detected before any write.
	ErrValidation = errors.New("validation failed")
	// ErrCompanyNotFound is returned when a company id resolves to nothing.
	ErrCompanyNotFound = errors.New("company not found")
	// ErrDuplicateReview mirrors the store-level uniqueness violation.
	ErrDuplicateReview = repository.ErrDuplicateReview
)

// CompanyStore is the slice of the entity store the services need for
// companies.
type CompanyStore interface {
	Create(ctx context.Context, c *models.Company) (string, error)
	GetByID(ctx context.Context, id string) (*models.Company, error)
	Find(ctx context.Context, q repository.CompanyQuery) ([]models.Company, int64, error)
	UpdateRatingSummary(ctx context.Context, id string, s models.RatingSummary) error
}

type ReviewStore interface {
	Create(ctx context.Context, rv *models.Review) (string, error)
	ListByCompany(ctx context.Context, q repository.ReviewQuery) ([]models.Review, int64, error)
	Summary(ctx context.Context, companyID string) (models.RatingSummary, error)
}

type UserStore interface {
	UpsertPublic(ctx context.Context, u models.UserPublic) error
	FindPublicByIDs(ctx context.Context, ids []string) (map[string]models.UserPublic, error)
}

const (
	defaultCompanyPageSize = 10
	defaultReviewPageSize  = 5
	maxPageSize            = 100
)

// normalizePage clamps page/limit to sane values before computing skip.
func normalizePage(page, limit, defLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defLimit
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func totalPages(total int64, limit int) int64 {
	if total == 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

func sortOrder(order string) int {
	if order == "asc" {
		return 1
	}
	return -1
}
