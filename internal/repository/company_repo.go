package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/revuo/company-reviews/internal/models"
)

// CompanyQuery describes a filtered, sorted page of companies. SortField
// is a bson field name already whitelisted by the caller; Order is 1 or -1.
type CompanyQuery struct {
	Search    string
	City      string
	SortField string
	Order     int
	Skip      int64
	Limit     int64
}

type CompanyRepository struct {
	coll *mongo.Collection
}

func NewCompanyRepository(db *mongo.Database) *CompanyRepository {
	return &CompanyRepository{coll: db.Collection("companies")}
}

func (r *CompanyRepository) EnsureIndexes(ctx context.Context) error {
	idx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "company_name", Value: 1}}, Options: options.Index().SetName("company_name_1")},
		{Keys: bson.D{{Key: "address.city", Value: 1}}, Options: options.Index().SetName("address_city_1")},
		{Keys: bson.D{{Key: "avg_rating", Value: -1}}, Options: options.Index().SetName("avg_rating_-1")},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, idx)
	return err
}

func (r *CompanyRepository) Create(ctx context.Context, c *models.Company) (string, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		if isDuplicateKey(err) {
			return "", ErrAlreadyExists
		}
		return "", fmt.Errorf("insert company: %w", err)
	}
	return c.ID, nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*models.Company, error) {
	var c models.Company
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Find returns one page plus the total number of documents matching the
// filter, so the caller derives page counts from the filtered set.
func (r *CompanyRepository) Find(ctx context.Context, q CompanyQuery) ([]models.Company, int64, error) {
	filter := bson.M{}
	if q.Search != "" {
		filter["company_name"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
	}
	if q.City != "" {
		filter["address.city"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.City), Options: "i"}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count companies: %w", err)
	}

	sortField := q.SortField
	if sortField == "" {
		sortField = "created_at"
	}
	order := q.Order
	if order != 1 {
		order = -1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: order}}).
		SetSkip(q.Skip).
		SetLimit(q.Limit)

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find companies: %w", err)
	}
	defer cur.Close(ctx)

	list := []models.Company{}
	for cur.Next(ctx) {
		var c models.Company
		if err := cur.Decode(&c); err != nil {
			return nil, 0, err
		}
		list = append(list, c)
	}
	return list, total, cur.Err()
}

// UpdateRatingSummary rewrites the cached aggregate fields. The values must
// come from a fresh recomputation over the full review set.
func (r *CompanyRepository) UpdateRatingSummary(ctx context.Context, id string, s models.RatingSummary) error {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"avg_rating":    s.AvgRating,
		"total_reviews": s.TotalReviews,
		"updated_at":    time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update rating summary: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
