package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/srirupaul05/foodbridge/internal/domain"
	"github.com/srirupaul05/foodbridge/internal/platform/logger"
)

const (
	maxMessageLength = 500

	welcomeMessage   = "🌱 Chat started! Coordinate your food pickup here."
	systemSenderName = "FoodBridge"
)

// ChatUsecase runs the per-listing pickup chats. A chat's id is the listing
// id; only the donor and the claimant may read or write it.
type ChatUsecase struct {
	chats     domain.ChatRepository
	listings  domain.ListingRepository
	publisher Publisher
	logger    logger.Logger
	now       func() time.Time
}

func NewChatUsecase(
	chats domain.ChatRepository,
	listings domain.ListingRepository,
	publisher Publisher,
	log logger.Logger,
) *ChatUsecase {
	return &ChatUsecase{
		chats:     chats,
		listings:  listings,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

// EnsureChat opens (or creates) the chat for a listing. Creation seeds a
// system welcome message so the room is never empty on first open.
func (uc *ChatUsecase) EnsureChat(ctx context.Context, listingID, actorID string) (*domain.Chat, error) {
	if actorID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	listing, err := uc.listings.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !participant(listing, actorID) {
		return nil, domain.ErrForbidden
	}

	chat, err := uc.chats.FindChat(ctx, listingID)
	if err == nil {
		return chat, nil
	}
	if !errors.Is(err, domain.ErrChatNotFound) {
		return nil, err
	}

	now := uc.now()
	chat = &domain.Chat{
		ID:        listingID,
		Title:     listing.FoodName,
		CreatedBy: actorID,
		CreatedAt: now,
	}
	if err := uc.chats.CreateChat(ctx, chat); err != nil {
		return nil, fmt.Errorf("create chat: %w", err)
	}

	welcome := &domain.Message{
		ID:         uuid.New().String(),
		ChatID:     listingID,
		SenderID:   domain.SystemSenderID,
		SenderName: systemSenderName,
		Text:       welcomeMessage,
		Type:       domain.MessageTypeSystem,
		SentAt:     now,
	}
	if err := uc.chats.AppendMessage(ctx, welcome); err != nil {
		uc.logger.Warnf("ChatUsecase.EnsureChat: welcome message failed for %s: %v", listingID, err)
	}

	return chat, nil
}

// SendMessage appends a user message to the listing's chat.
func (uc *ChatUsecase) SendMessage(ctx context.Context, listingID, actorID, actorName, text string) (*domain.Message, error) {
	if actorID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty message", domain.ErrInvalidMessage)
	}
	if len(text) > maxMessageLength {
		return nil, fmt.Errorf("%w: message exceeds %d characters", domain.ErrInvalidMessage, maxMessageLength)
	}

	if _, err := uc.EnsureChat(ctx, listingID, actorID); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ID:         uuid.New().String(),
		ChatID:     listingID,
		SenderID:   actorID,
		SenderName: actorName,
		Text:       text,
		Type:       domain.MessageTypeUser,
		SentAt:     uc.now(),
	}
	if err := uc.chats.AppendMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}

	if uc.publisher != nil {
		// Per-chat subject so subscribers can filter on one conversation.
		subject := fmt.Sprintf("%s.%s", SubjectChatMessage, listingID)
		if err := uc.publisher.Publish(ctx, subject, msg); err != nil {
			uc.logger.Warnf("ChatUsecase.SendMessage: publish failed: %v", err)
		}
	}
	return msg, nil
}

// ListMessages returns the chat's messages, oldest first.
func (uc *ChatUsecase) ListMessages(ctx context.Context, listingID, actorID string) ([]*domain.Message, error) {
	if actorID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	listing, err := uc.listings.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !participant(listing, actorID) {
		return nil, domain.ErrForbidden
	}
	return uc.chats.FindMessages(ctx, listingID)
}

func participant(listing *domain.Listing, userID string) bool {
	return listing.DonorID == userID || (listing.ClaimedBy != "" && listing.ClaimedBy == userID)
}
