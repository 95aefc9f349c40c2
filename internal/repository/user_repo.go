package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/revuo/company-reviews/internal/models"
)

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection("users")}
}

// UpsertPublic refreshes the stored snapshot of a user's public display
// fields. Identity itself is verified upstream; we only mirror it.
func (r *UserRepository) UpsertPublic(ctx context.Context, u models.UserPublic) error {
	_, err := r.coll.UpdateByID(ctx, u.ID, bson.M{"$set": bson.M{
		"full_name": u.FullName,
		"avatar":    u.Avatar,
	}}, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

// FindPublicByIDs batch-loads public profiles for review enrichment.
// Unknown ids are simply absent from the result map.
func (r *UserRepository) FindPublicByIDs(ctx context.Context, ids []string) (map[string]models.UserPublic, error) {
	out := make(map[string]models.UserPublic, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var u models.UserPublic
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out[u.ID] = u
	}
	return out, cur.Err()
}
