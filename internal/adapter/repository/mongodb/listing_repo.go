package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/srirupaul05/foodbridge/internal/domain"
)

type ListingRepository struct {
	collection *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{collection: db.Collection("listings")}
}

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	_, err := r.collection.InsertOne(ctx, listing)
	return err
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	var listing domain.Listing
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&listing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrListingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *ListingRepository) FindAvailable(ctx context.Context, filter domain.ListingFilter) ([]*domain.Listing, error) {
	query := bson.M{"status": domain.StatusAvailable}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Query != "" {
		query["$text"] = bson.M{"$search": filter.Query}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	var listings []*domain.Listing
	err = cursor.All(ctx, &listings)
	return listings, err
}

func (r *ListingRepository) FindAll(ctx context.Context) ([]*domain.Listing, error) {
	cursor, err := r.collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var listings []*domain.Listing
	err = cursor.All(ctx, &listings)
	return listings, err
}

func (r *ListingRepository) FindByDonor(ctx context.Context, donorID string) ([]*domain.Listing, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"donor_id": donorID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var listings []*domain.Listing
	err = cursor.All(ctx, &listings)
	return listings, err
}

func (r *ListingRepository) CountByDonorBetween(ctx context.Context, donorID string, from, to time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"donor_id":   donorID,
		"created_at": bson.M{"$gte": from, "$lt": to},
	})
}

// ClaimAvailable performs the conditional available->claimed write. The
// status match is part of the filter, so two racing claims can never both
// succeed: the loser matches nothing and gets ErrAlreadyClaimed.
func (r *ListingRepository) ClaimAvailable(ctx context.Context, id, recipientID, recipientName string, at time.Time) (*domain.Listing, error) {
	filter := bson.M{"_id": id, "status": domain.StatusAvailable}
	update := bson.M{"$set": bson.M{
		"status":       domain.StatusClaimed,
		"claimed_by":   recipientID,
		"claimed_name": recipientName,
		"claimed_at":   at,
	}}

	var listing domain.Listing
	err := r.collection.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&listing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Distinguish "gone" from "taken".
		count, countErr := r.collection.CountDocuments(ctx, bson.M{"_id": id})
		if countErr == nil && count == 0 {
			return nil, domain.ErrListingNotFound
		}
		return nil, domain.ErrAlreadyClaimed
	}
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *ListingRepository) SetPhotoURL(ctx context.Context, id, url string) error {
	res, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": bson.M{"photo_url": url}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
