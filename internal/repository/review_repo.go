package repository

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/revuo/company-reviews/internal/models"
)

// ReviewQuery describes one page of a company's reviews. SortField is a
// bson field already whitelisted by the caller; Order is 1 or -1.
type ReviewQuery struct {
	CompanyID string
	SortField string
	Order     int
	Skip      int64
	Limit     int64
}

type ReviewRepository struct {
	coll *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{coll: db.Collection("reviews")}
}

// EnsureIndexes creates the unique (company_id, user_id) index that is the
// one-review-per-user gate, plus the listing indexes.
func (r *ReviewRepository) EnsureIndexes(ctx context.Context) error {
	uniq := mongo.IndexModel{
		Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "user_id", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetName("uniq_company_user"),
	}
	_, err := r.coll.Indexes().CreateOne(ctx, uniq)
	if err != nil {
		// Recreate if it already exists with different options.
		if ce, ok := err.(mongo.CommandError); ok && ce.Code == 85 { // IndexOptionsConflict
			if _, dropErr := r.coll.Indexes().DropOne(ctx, "uniq_company_user"); dropErr != nil {
				return fmt.Errorf("drop index uniq_company_user: %w", dropErr)
			}
			if _, err := r.coll.Indexes().CreateOne(ctx, uniq); err != nil {
				return err
			}
		} else {
			return err
		}
	}

	idx := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "company_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("company_created_at"),
		},
		{
			Keys:    bson.D{{Key: "rating", Value: -1}},
			Options: options.Index().SetName("rating_-1"),
		},
	}
	_, err = r.coll.Indexes().CreateMany(ctx, idx)
	return err
}

// Create inserts the review. Duplicate submissions by the same user for the
// same company are rejected by the unique index, not by a prior existence
// check, so two racing submissions cannot both get through.
func (r *ReviewRepository) Create(ctx context.Context, rv *models.Review) (string, error) {
	if rv.ID == "" {
		rv.ID = uuid.New().String()
	}
	rv.CreatedAt = time.Now().UTC()
	rv.UpdatedAt = rv.CreatedAt
	if _, err := r.coll.InsertOne(ctx, rv); err != nil {
		if isDuplicateKey(err) {
			return "", ErrDuplicateReview
		}
		return "", fmt.Errorf("insert review: %w", err)
	}
	return rv.ID, nil
}

// ListByCompany returns one page of a company's reviews plus the total count.
func (r *ReviewRepository) ListByCompany(ctx context.Context, q ReviewQuery) ([]models.Review, int64, error) {
	filter := bson.M{"company_id": q.CompanyID}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
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
		return nil, 0, fmt.Errorf("find reviews: %w", err)
	}
	defer cur.Close(ctx)

	list := []models.Review{}
	for cur.Next(ctx) {
		var rv models.Review
		if err := cur.Decode(&rv); err != nil {
			return nil, 0, err
		}
		list = append(list, rv)
	}
	return list, total, cur.Err()
}

// Summary recomputes the aggregate from scratch over every review of the
// company. Both the submit path and the listing path go through here, so
// the cached fields and the listing stats always agree.
func (r *ReviewRepository) Summary(ctx context.Context, companyID string) (models.RatingSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"company_id": companyID}}},
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"avg_rating":    bson.M{"$avg": "$rating"},
			"total_reviews": bson.M{"$sum": 1},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return models.RatingSummary{}, fmt.Errorf("aggregate reviews: %w", err)
	}
	defer cur.Close(ctx)

	// No reviews yet: the $group stage emits nothing.
	if !cur.Next(ctx) {
		return models.RatingSummary{}, cur.Err()
	}
	var s models.RatingSummary
	if err := cur.Decode(&s); err != nil {
		return models.RatingSummary{}, err
	}
	s.AvgRating = math.Round(s.AvgRating*100) / 100
	return s, nil
}
