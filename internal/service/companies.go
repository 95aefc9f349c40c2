package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/revuo/company-reviews/internal/models"
	"github.com/revuo/company-reviews/internal/repository"
)

// CreateCompanyInput is the already-validated shape handed over by the
// boundary. Address arrives fully resolved (geocoding happens upstream)
// and Logo is an already-hosted URL or empty.
type CreateCompanyInput struct {
	CompanyName string
	Address     models.Address
	FoundedOn   time.Time
	Logo        string
	CreatedBy   string
}

// ListCompaniesParams are the raw query knobs of the listing endpoint.
type ListCompaniesParams struct {
	Page   int
	Limit  int
	Search string
	City   string
	SortBy string
	Order  string
}

type CompanyPagination struct {
	CurrentPage    int   `json:"currentPage"`
	TotalPages     int64 `json:"totalPages"`
	TotalCompanies int64 `json:"totalCompanies"`
	Limit          int   `json:"limit"`
}

type CompanyPage struct {
	Companies  []models.Company  `json:"companies"`
	Pagination CompanyPagination `json:"pagination"`
}

type CompanyService struct {
	companies CompanyStore
	log       *slog.Logger
}

func NewCompanyService(companies CompanyStore, log *slog.Logger) *CompanyService {
	if log == nil {
		log = slog.Default()
	}
	return &CompanyService{companies: companies, log: log}
}

func (s *CompanyService) Create(ctx context.Context, in CreateCompanyInput) (*models.Company, error) {
	if strings.TrimSpace(in.CompanyName) == "" {
		return nil, fmt.Errorf("%w: companyName is required", ErrValidation)
	}
	if in.Address.Formatted == "" {
		return nil, fmt.Errorf("%w: address must contain formatted, lat and lon", ErrValidation)
	}
	if in.FoundedOn.IsZero() {
		return nil, fmt.Errorf("%w: foundedOn is required", ErrValidation)
	}
	if in.FoundedOn.After(time.Now()) {
		return nil, fmt.Errorf("%w: foundedOn cannot be in the future", ErrValidation)
	}
	if in.CreatedBy == "" {
		return nil, fmt.Errorf("%w: creator is required", ErrValidation)
	}

	c := models.Company{
		CompanyName: strings.TrimSpace(in.CompanyName),
		Address:     in.Address,
		FoundedOn:   in.FoundedOn,
		Logo:        in.Logo,
		CreatedBy:   in.CreatedBy,
	}
	id, err := s.companies.Create(ctx, &c)
	if err != nil {
		return nil, err
	}

	s.log.Info("company_created", "company_id", id, "name", c.CompanyName, "city", c.Address.City)
	return &c, nil
}

func (s *CompanyService) Get(ctx context.Context, id string) (*models.Company, error) {
	c, err := s.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return c, nil
}

// companySortFields maps the API sort names onto stored field names.
// Anything else falls back to recency, mirroring the default sort.
var companySortFields = map[string]string{
	"companyName":  "company_name",
	"avgRating":    "avg_rating",
	"createdAt":    "created_at",
	"address.city": "address.city",
}

// List returns one page of companies matching the filters, plus page
// bookkeeping computed from the filtered count.
func (s *CompanyService) List(ctx context.Context, p ListCompaniesParams) (*CompanyPage, error) {
	page, limit := normalizePage(p.Page, p.Limit, defaultCompanyPageSize)

	sortField, ok := companySortFields[p.SortBy]
	if !ok {
		sortField = "created_at"
	}

	list, total, err := s.companies.Find(ctx, repository.CompanyQuery{
		Search:    strings.TrimSpace(p.Search),
		City:      strings.TrimSpace(p.City),
		SortField: sortField,
		Order:     sortOrder(p.Order),
		Skip:      int64(page-1) * int64(limit),
		Limit:     int64(limit),
	})
	if err != nil {
		return nil, err
	}

	return &CompanyPage{
		Companies: list,
		Pagination: CompanyPagination{
			CurrentPage:    page,
			TotalPages:     totalPages(total, limit),
			TotalCompanies: total,
			Limit:          limit,
		},
	}, nil
}
