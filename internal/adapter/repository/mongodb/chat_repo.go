package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/srirupaul05/foodbridge/internal/domain"
)

type ChatRepository struct {
	chats    *mongo.Collection
	messages *mongo.Collection
}

func NewChatRepository(db *mongo.Database) *ChatRepository {
	return &ChatRepository{
		chats:    db.Collection("chats"),
		messages: db.Collection("messages"),
	}
}

func (r *ChatRepository) FindChat(ctx context.Context, id string) (*domain.Chat, error) {
	var chat domain.Chat
	err := r.chats.FindOne(ctx, bson.M{"_id": id}).Decode(&chat)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrChatNotFound
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

func (r *ChatRepository) CreateChat(ctx context.Context, chat *domain.Chat) error {
	_, err := r.chats.InsertOne(ctx, chat)
	return err
}

func (r *ChatRepository) AppendMessage(ctx context.Context, msg *domain.Message) error {
	_, err := r.messages.InsertOne(ctx, msg)
	return err
}

func (r *ChatRepository) FindMessages(ctx context.Context, chatID string) ([]*domain.Message, error) {
	cursor, err := r.messages.Find(ctx, bson.M{"chat_id": chatID},
		options.Find().SetSort(bson.D{{Key: "sent_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var msgs []*domain.Message
	err = cursor.All(ctx, &msgs)
	return msgs, err
}
