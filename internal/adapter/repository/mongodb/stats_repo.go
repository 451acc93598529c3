package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/srirupaul05/foodbridge/internal/domain"
)

const globalStatsID = "global"

// StatsRepository persists the increment-only impact counters. Every write
// is a $inc upsert: concurrent contributions interleave without clobbering
// each other, and a missing document is created on first touch.
type StatsRepository struct {
	userStats   *mongo.Collection
	globalStats *mongo.Collection
}

func NewStatsRepository(db *mongo.Database) *StatsRepository {
	return &StatsRepository{
		userStats:   db.Collection("user_stats"),
		globalStats: db.Collection("stats"),
	}
}

func incUpdate(delta domain.StatsDelta) bson.M {
	return bson.M{"$inc": bson.M{
		"total_kg":    delta.Kg,
		"total_meals": delta.Meals,
		"total_co2":   delta.Co2,
		"total_water": delta.Water,
		"donations":   delta.Donations,
	}}
}

func (r *StatsRepository) IncrementUser(ctx context.Context, userID string, delta domain.StatsDelta) error {
	_, err := r.userStats.UpdateByID(ctx, userID, incUpdate(delta),
		options.Update().SetUpsert(true))
	return err
}

func (r *StatsRepository) IncrementGlobal(ctx context.Context, delta domain.StatsDelta) error {
	_, err := r.globalStats.UpdateByID(ctx, globalStatsID, incUpdate(delta),
		options.Update().SetUpsert(true))
	return err
}

func (r *StatsRepository) InitUser(ctx context.Context, userID string) error {
	_, err := r.userStats.UpdateByID(ctx, userID,
		bson.M{"$setOnInsert": bson.M{
			"total_kg":    0.0,
			"total_meals": int64(0),
			"total_co2":   int64(0),
			"total_water": int64(0),
			"donations":   int64(0),
		}},
		options.Update().SetUpsert(true))
	return err
}

func (r *StatsRepository) GetUser(ctx context.Context, userID string) (*domain.UserStats, error) {
	var stats domain.UserStats
	err := r.userStats.FindOne(ctx, bson.M{"_id": userID}).Decode(&stats)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *StatsRepository) GetGlobal(ctx context.Context) (*domain.GlobalStats, error) {
	var stats domain.GlobalStats
	err := r.globalStats.FindOne(ctx, bson.M{"_id": globalStatsID}).Decode(&stats)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *StatsRepository) TopByMeals(ctx context.Context, limit int64) ([]*domain.UserStats, error) {
	cursor, err := r.userStats.Find(ctx, bson.M{"total_meals": bson.M{"$gt": 0}},
		options.Find().SetSort(bson.D{{Key: "total_meals", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	var rows []*domain.UserStats
	err = cursor.All(ctx, &rows)
	return rows, err
}
