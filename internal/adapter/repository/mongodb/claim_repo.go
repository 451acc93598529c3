package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/srirupaul05/foodbridge/internal/domain"
)

type ClaimRepository struct {
	collection *mongo.Collection
}

func NewClaimRepository(db *mongo.Database) *ClaimRepository {
	return &ClaimRepository{collection: db.Collection("claims")}
}

func (r *ClaimRepository) Create(ctx context.Context, claim *domain.Claim) error {
	_, err := r.collection.InsertOne(ctx, claim)
	return err
}

func (r *ClaimRepository) FindByID(ctx context.Context, id string) (*domain.Claim, error) {
	var claim domain.Claim
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&claim)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrClaimNotFound
	}
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

func (r *ClaimRepository) FindByRecipient(ctx context.Context, recipientID string) ([]*domain.Claim, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"recipient_id": recipientID},
		options.Find().SetSort(bson.D{{Key: "claimed_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var claims []*domain.Claim
	err = cursor.All(ctx, &claims)
	return claims, err
}

func (r *ClaimRepository) FindAll(ctx context.Context) ([]*domain.Claim, error) {
	cursor, err := r.collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "claimed_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var claims []*domain.Claim
	err = cursor.All(ctx, &claims)
	return claims, err
}

func (r *ClaimRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrClaimNotFound
	}
	return nil
}

func (r *ClaimRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
