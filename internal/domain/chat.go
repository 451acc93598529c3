package domain

import "time"

// Chat is a per-listing conversation between the donor and the recipient.
// The chat id is the listing id.
type Chat struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Title     string    `bson:"title" json:"title"`
	CreatedBy string    `bson:"created_by" json:"createdBy"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

const (
	MessageTypeUser   = "message"
	MessageTypeSystem = "system"

	SystemSenderID = "system"
)

type Message struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	ChatID     string    `bson:"chat_id" json:"chatId"`
	SenderID   string    `bson:"sender_id" json:"senderId"`
	SenderName string    `bson:"sender_name" json:"senderName"`
	Text       string    `bson:"text" json:"text"`
	Type       string    `bson:"type" json:"type"`
	SentAt     time.Time `bson:"sent_at" json:"sentAt"`
}
