package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/srirupaul05/foodbridge/internal/domain"
	"github.com/srirupaul05/foodbridge/internal/platform/logger"
)

func trackerTestFixture() (*TrackerUsecase, *MockTrackerRepository) {
	repo := new(MockTrackerRepository)
	uc := NewTrackerUsecase(repo, logger.NoOp{})
	uc.now = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }
	return uc, repo
}

func TestTrackerUsecase_Add_Validation(t *testing.T) {
	uc, repo := trackerTestFixture()
	ctx := context.Background()

	_, err := uc.Add(ctx, "owner-1", AddTrackerItemInput{Name: "", Quantity: 1, ExpiryDate: time.Now()})
	assert.ErrorIs(t, err, domain.ErrInvalidItem)

	_, err = uc.Add(ctx, "owner-1", AddTrackerItemInput{Name: "Milk", Quantity: 0, ExpiryDate: time.Now()})
	assert.ErrorIs(t, err, domain.ErrInvalidItem)

	_, err = uc.Add(ctx, "owner-1", AddTrackerItemInput{Name: "Milk", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidItem)

	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

// Tracker items use the tracker thresholds: three days out is still urgent
// here, while the listing pages would call it a warning.
func TestTrackerUsecase_List_UsesTrackerThresholds(t *testing.T) {
	uc, repo := trackerTestFixture()
	ctx := context.Background()

	repo.On("FindByOwner", ctx, "owner-1").Return([]*domain.TrackerItem{
		{ID: "a", Name: "Milk", ExpiryDate: time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)},
		{ID: "b", Name: "Rice", ExpiryDate: time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)},
	}, nil)

	views, err := uc.List(ctx, "owner-1")

	assert.NoError(t, err)
	assert.Len(t, views, 2)
	assert.Equal(t, domain.ExpiryUrgent, views[0].Expiry.Status)
	assert.Equal(t, 3, views[0].Expiry.DaysLeft)
	assert.Equal(t, domain.ExpiryExpired, views[1].Expiry.Status)
	assert.Equal(t, -2, views[1].Expiry.DaysLeft)
}

// Conversion copies the item into a draft and leaves the tracker untouched.
func TestTrackerUsecase_ToListingDraft_DoesNotDelete(t *testing.T) {
	uc, repo := trackerTestFixture()
	ctx := context.Background()

	item := &domain.TrackerItem{
		ID:       "item-1",
		OwnerID:  "owner-1",
		Name:     "Bread",
		Quantity: 2,
		Unit:     "kg",
		Category: domain.CategoryBakery,
	}
	repo.On("FindByID", ctx, "owner-1", "item-1").Return(item, nil)

	draft, err := uc.ToListingDraft(ctx, "owner-1", "item-1")

	assert.NoError(t, err)
	assert.Equal(t, "Bread", draft.FoodName)
	assert.Equal(t, 2.0, draft.Quantity)
	assert.Equal(t, domain.CategoryBakery, draft.Category)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestTrackerUsecase_Remove_ScopedToOwner(t *testing.T) {
	uc, repo := trackerTestFixture()
	ctx := context.Background()

	repo.On("Delete", ctx, "owner-1", "item-1").Return(domain.ErrItemNotFound)

	err := uc.Remove(ctx, "owner-1", "item-1")

	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}
