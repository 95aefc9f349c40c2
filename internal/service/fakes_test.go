package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/revuo/company-reviews/internal/models"
	"github.com/revuo/company-reviews/internal/repository"
)

// fakeStore is an in-memory stand-in for the Mongo repositories. It keeps
// the same contract the real ones have, in particular the atomic
// uniqueness check on (company_id, user_id) at insert time.
type fakeStore struct {
	mu        sync.Mutex
	companies map[string]models.Company
	reviews   []models.Review
	users     map[string]models.UserPublic
	seq       int

	// optional failure injection
	failSummaryUpdate bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		companies: make(map[string]models.Company),
		users:     make(map[string]models.UserPublic),
	}
}

func (f *fakeStore) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

// --- CompanyStore

func (f *fakeStore) Create(ctx context.Context, c *models.Company) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == "" {
		c.ID = f.nextID("co")
	}
	if _, ok := f.companies[c.ID]; ok {
		return "", repository.ErrAlreadyExists
	}
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	f.companies[c.ID] = *c
	return c.ID, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (*models.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.companies[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (f *fakeStore) Find(ctx context.Context, q repository.CompanyQuery) ([]models.Company, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matched := []models.Company{}
	for _, c := range f.companies {
		if q.Search != "" && !strings.Contains(strings.ToLower(c.CompanyName), strings.ToLower(q.Search)) {
			continue
		}
		if q.City != "" && !strings.Contains(strings.ToLower(c.Address.City), strings.ToLower(q.City)) {
			continue
		}
		matched = append(matched, c)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		var less bool
		switch q.SortField {
		case "company_name":
			less = a.CompanyName < b.CompanyName
		case "avg_rating":
			less = a.AvgRating < b.AvgRating
		case "address.city":
			less = a.Address.City < b.Address.City
		default:
			less = a.CreatedAt.Before(b.CreatedAt)
		}
		if q.Order == 1 {
			return less
		}
		return !less
	})

	total := int64(len(matched))
	start := q.Skip
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (f *fakeStore) UpdateRatingSummary(ctx context.Context, id string, s models.RatingSummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSummaryUpdate {
		return fmt.Errorf("injected summary failure")
	}
	c, ok := f.companies[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.AvgRating = s.AvgRating
	c.TotalReviews = s.TotalReviews
	c.UpdatedAt = time.Now().UTC()
	f.companies[id] = c
	return nil
}

// --- ReviewStore

func (f *fakeStore) CreateReview(ctx context.Context, rv *models.Review) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.reviews {
		if existing.CompanyID == rv.CompanyID && existing.UserID == rv.UserID {
			return "", repository.ErrDuplicateReview
		}
	}
	if rv.ID == "" {
		rv.ID = f.nextID("rv")
	}
	rv.CreatedAt = time.Now().UTC()
	rv.UpdatedAt = rv.CreatedAt
	f.reviews = append(f.reviews, *rv)
	return rv.ID, nil
}

func (f *fakeStore) ListByCompany(ctx context.Context, q repository.ReviewQuery) ([]models.Review, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matched := []models.Review{}
	for _, rv := range f.reviews {
		if rv.CompanyID == q.CompanyID {
			matched = append(matched, rv)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		var less bool
		switch q.SortField {
		case "rating":
			less = a.Rating < b.Rating
		default:
			less = a.CreatedAt.Before(b.CreatedAt)
		}
		if q.Order == 1 {
			return less
		}
		return !less
	})

	total := int64(len(matched))
	start := q.Skip
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (f *fakeStore) Summary(ctx context.Context, companyID string) (models.RatingSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var sum, n int64
	for _, rv := range f.reviews {
		if rv.CompanyID == companyID {
			sum += int64(rv.Rating)
			n++
		}
	}
	if n == 0 {
		return models.RatingSummary{}, nil
	}
	avg := float64(sum) / float64(n)
	return models.RatingSummary{
		AvgRating:    math.Round(avg*100) / 100,
		TotalReviews: n,
	}, nil
}

// --- UserStore

func (f *fakeStore) UpsertPublic(ctx context.Context, u models.UserPublic) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = u
	return nil
}

func (f *fakeStore) FindPublicByIDs(ctx context.Context, ids []string) (map[string]models.UserPublic, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]models.UserPublic, len(ids))
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

// reviewStoreAdapter renames CreateReview to Create so fakeStore can back
// both store interfaces despite the method name collision.
type reviewStoreAdapter struct{ *fakeStore }

func (a reviewStoreAdapter) Create(ctx context.Context, rv *models.Review) (string, error) {
	return a.CreateReview(ctx, rv)
}
