package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/srirupaul05/foodbridge/internal/domain"
)

// TrackerRepository scopes every operation by owner so one user can never
// read or delete another user's items, even with a guessed id.
type TrackerRepository struct {
	collection *mongo.Collection
}

func NewTrackerRepository(db *mongo.Database) *TrackerRepository {
	return &TrackerRepository{collection: db.Collection("tracker_items")}
}

func (r *TrackerRepository) Add(ctx context.Context, item *domain.TrackerItem) error {
	_, err := r.collection.InsertOne(ctx, item)
	return err
}

func (r *TrackerRepository) FindByOwner(ctx context.Context, ownerID string) ([]*domain.TrackerItem, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID},
		options.Find().SetSort(bson.D{{Key: "expiry_date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var items []*domain.TrackerItem
	err = cursor.All(ctx, &items)
	return items, err
}

func (r *TrackerRepository) FindByID(ctx context.Context, ownerID, id string) (*domain.TrackerItem, error) {
	var item domain.TrackerItem
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "owner_id": ownerID}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *TrackerRepository) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}
