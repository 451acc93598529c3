package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/srirupaul05/foodbridge/internal/domain"
	"github.com/srirupaul05/foodbridge/internal/platform/logger"
)

func chatTestFixture() (*ChatUsecase, *MockChatRepository, *MockListingRepository, *MockPublisher) {
	chats := new(MockChatRepository)
	listings := new(MockListingRepository)
	pub := new(MockPublisher)
	uc := NewChatUsecase(chats, listings, pub, logger.NoOp{})
	uc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return uc, chats, listings, pub
}

func claimedListingForChat() *domain.Listing {
	return &domain.Listing{
		ID:        "listing-1",
		DonorID:   "donor-1",
		FoodName:  "Rice",
		Status:    domain.StatusClaimed,
		ClaimedBy: "recipient-1",
	}
}

func TestChatUsecase_EnsureChat_CreatesWithWelcome(t *testing.T) {
	uc, chats, listings, _ := chatTestFixture()
	ctx := context.Background()

	listings.On("FindByID", ctx, "listing-1").Return(claimedListingForChat(), nil)
	chats.On("FindChat", ctx, "listing-1").Return(nil, domain.ErrChatNotFound)
	chats.On("CreateChat", ctx, mock.AnythingOfType("*domain.Chat")).Return(nil)

	var welcome *domain.Message
	chats.On("AppendMessage", ctx, mock.AnythingOfType("*domain.Message")).
		Run(func(args mock.Arguments) { welcome = args.Get(1).(*domain.Message) }).
		Return(nil)

	chat, err := uc.EnsureChat(ctx, "listing-1", "recipient-1")

	assert.NoError(t, err)
	assert.Equal(t, "listing-1", chat.ID)
	assert.Equal(t, "Rice", chat.Title)
	assert.NotNil(t, welcome)
	assert.Equal(t, domain.MessageTypeSystem, welcome.Type)
	assert.Equal(t, domain.SystemSenderID, welcome.SenderID)
}

func TestChatUsecase_EnsureChat_ExistingChatIsReused(t *testing.T) {
	uc, chats, listings, _ := chatTestFixture()
	ctx := context.Background()

	listings.On("FindByID", ctx, "listing-1").Return(claimedListingForChat(), nil)
	chats.On("FindChat", ctx, "listing-1").Return(&domain.Chat{ID: "listing-1"}, nil)

	_, err := uc.EnsureChat(ctx, "listing-1", "donor-1")

	assert.NoError(t, err)
	chats.AssertNotCalled(t, "CreateChat", mock.Anything, mock.Anything)
	chats.AssertNotCalled(t, "AppendMessage", mock.Anything, mock.Anything)
}

func TestChatUsecase_EnsureChat_OutsiderForbidden(t *testing.T) {
	uc, chats, listings, _ := chatTestFixture()
	ctx := context.Background()

	listings.On("FindByID", ctx, "listing-1").Return(claimedListingForChat(), nil)

	_, err := uc.EnsureChat(ctx, "listing-1", "stranger")

	assert.ErrorIs(t, err, domain.ErrForbidden)
	chats.AssertNotCalled(t, "FindChat", mock.Anything, mock.Anything)
}

func TestChatUsecase_SendMessage(t *testing.T) {
	uc, chats, listings, pub := chatTestFixture()
	ctx := context.Background()

	listings.On("FindByID", ctx, "listing-1").Return(claimedListingForChat(), nil)
	chats.On("FindChat", ctx, "listing-1").Return(&domain.Chat{ID: "listing-1"}, nil)
	chats.On("AppendMessage", ctx, mock.AnythingOfType("*domain.Message")).Return(nil)
	pub.On("Publish", ctx, SubjectChatMessage+".listing-1", mock.Anything).Return(nil)

	msg, err := uc.SendMessage(ctx, "listing-1", "recipient-1", "Rita", "  On my way!  ")

	assert.NoError(t, err)
	assert.Equal(t, "On my way!", msg.Text)
	assert.Equal(t, domain.MessageTypeUser, msg.Type)
	assert.Equal(t, "recipient-1", msg.SenderID)
}

func TestChatUsecase_SendMessage_Validation(t *testing.T) {
	uc, _, _, _ := chatTestFixture()
	ctx := context.Background()

	_, err := uc.SendMessage(ctx, "listing-1", "recipient-1", "Rita", "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidMessage)

	_, err = uc.SendMessage(ctx, "listing-1", "recipient-1", "Rita", strings.Repeat("x", maxMessageLength+1))
	assert.ErrorIs(t, err, domain.ErrInvalidMessage)
}
