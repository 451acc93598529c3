package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/srirupaul05/foodbridge/internal/domain"
	"github.com/srirupaul05/foodbridge/internal/platform/logger"
)

func adminTestFixture() (*AdminUsecase, *MockUserRepository, *MockListingRepository, *MockClaimRepository, *MockStatsRepository) {
	users := new(MockUserRepository)
	listings := new(MockListingRepository)
	claims := new(MockClaimRepository)
	statsRepo := new(MockStatsRepository)
	uc := NewAdminUsecase(users, listings, claims, statsRepo, nil, logger.NoOp{},
		[]string{"Admin@FoodBridge.org", " mod@foodbridge.org "})
	return uc, users, listings, claims, statsRepo
}

func TestAdminUsecase_IsAdmin_CaseInsensitiveAllowlist(t *testing.T) {
	uc, _, _, _, _ := adminTestFixture()

	assert.True(t, uc.IsAdmin("admin@foodbridge.org"))
	assert.True(t, uc.IsAdmin("MOD@foodbridge.org"))
	assert.False(t, uc.IsAdmin("user@foodbridge.org"))
	assert.False(t, uc.IsAdmin(""))
}

func TestAdminUsecase_GetOverview(t *testing.T) {
	uc, users, listings, claims, statsRepo := adminTestFixture()
	ctx := context.Background()

	users.On("Count", ctx).Return(int64(12), nil)
	listings.On("Count", ctx).Return(int64(30), nil)
	claims.On("Count", ctx).Return(int64(18), nil)
	statsRepo.On("GetGlobal", ctx).Return(&domain.GlobalStats{TotalKg: 41.6}, nil)

	overview, err := uc.GetOverview(ctx, "admin@foodbridge.org")

	assert.NoError(t, err)
	assert.Equal(t, int64(12), overview.TotalUsers)
	assert.Equal(t, int64(30), overview.TotalListings)
	assert.Equal(t, int64(18), overview.TotalClaims)
	assert.Equal(t, int64(42), overview.TotalKg)
}

func TestAdminUsecase_NonAdminForbidden(t *testing.T) {
	uc, users, listings, claims, _ := adminTestFixture()
	ctx := context.Background()

	_, err := uc.GetOverview(ctx, "user@foodbridge.org")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.ListUsers(ctx, "user@foodbridge.org")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = uc.DeleteListing(ctx, "user@foodbridge.org", "listing-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.GetOverview(ctx, "")
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)

	users.AssertNotCalled(t, "Count", mock.Anything)
	listings.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	claims.AssertNotCalled(t, "Count", mock.Anything)
}

// A claim whose listing is gone still renders, with "Unknown" in place of
// the food name.
func TestAdminUsecase_ListClaims_UnknownListing(t *testing.T) {
	uc, _, listings, claims, _ := adminTestFixture()
	ctx := context.Background()

	claims.On("FindAll", ctx).Return([]*domain.Claim{
		{ID: "c1", ListingID: "listing-1"},
		{ID: "c2", ListingID: "ghost"},
	}, nil)
	listings.On("FindByID", ctx, "listing-1").Return(&domain.Listing{ID: "listing-1", FoodName: "Rice"}, nil)
	listings.On("FindByID", ctx, "ghost").Return(nil, domain.ErrListingNotFound)

	rows, err := uc.ListClaims(ctx, "admin@foodbridge.org")

	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "Rice", rows[0].FoodName)
	assert.Equal(t, "Unknown", rows[1].FoodName)
}

func TestAdminUsecase_DeleteListing(t *testing.T) {
	uc, _, listings, _, _ := adminTestFixture()
	ctx := context.Background()

	listings.On("Delete", ctx, "listing-1").Return(nil)

	assert.NoError(t, uc.DeleteListing(ctx, "admin@foodbridge.org", "listing-1"))
	listings.AssertExpectations(t)
}
