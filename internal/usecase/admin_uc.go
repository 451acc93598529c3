package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/srirupaul05/foodbridge/internal/domain"
	"github.com/srirupaul05/foodbridge/internal/platform/logger"
)

// AdminUsecase serves the moderation dashboard. Admin status is decided
// server-side by email allowlist; the client never gets to assert it.
type AdminUsecase struct {
	users       domain.UserRepository
	listings    domain.ListingRepository
	claims      domain.ClaimRepository
	stats       domain.StatsRepository
	cache       ListingCache
	logger      logger.Logger
	adminEmails map[string]struct{}
}

func NewAdminUsecase(
	users domain.UserRepository,
	listings domain.ListingRepository,
	claims domain.ClaimRepository,
	stats domain.StatsRepository,
	cache ListingCache,
	log logger.Logger,
	adminEmails []string,
) *AdminUsecase {
	allow := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			allow[e] = struct{}{}
		}
	}
	return &AdminUsecase{
		users:       users,
		listings:    listings,
		claims:      claims,
		stats:       stats,
		cache:       cache,
		logger:      log,
		adminEmails: allow,
	}
}

// IsAdmin reports whether the email is on the allowlist.
func (uc *AdminUsecase) IsAdmin(email string) bool {
	_, ok := uc.adminEmails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

func (uc *AdminUsecase) authorize(email string) error {
	if email == "" {
		return domain.ErrNotAuthenticated
	}
	if !uc.IsAdmin(email) {
		return domain.ErrForbidden
	}
	return nil
}

// Overview is the dashboard's headline numbers.
type Overview struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalListings int64 `json:"totalListings"`
	TotalClaims   int64 `json:"totalClaims"`
	TotalKg       int64 `json:"totalKg"`
}

// GetOverview returns the headline counts. A missing global stats document
// reads as zero kg, not an error.
func (uc *AdminUsecase) GetOverview(ctx context.Context, actorEmail string) (*Overview, error) {
	if err := uc.authorize(actorEmail); err != nil {
		return nil, err
	}

	users, err := uc.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	listings, err := uc.listings.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count listings: %w", err)
	}
	claims, err := uc.claims.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count claims: %w", err)
	}

	var totalKg int64
	global, err := uc.stats.GetGlobal(ctx)
	if err != nil {
		uc.logger.Warnf("AdminUsecase.GetOverview: global stats read failed: %v", err)
	} else if global != nil {
		totalKg = int64(math.Round(global.TotalKg))
	}

	return &Overview{
		TotalUsers:    users,
		TotalListings: listings,
		TotalClaims:   claims,
		TotalKg:       totalKg,
	}, nil
}

// ListUsers returns every account.
func (uc *AdminUsecase) ListUsers(ctx context.Context, actorEmail string) ([]*domain.User, error) {
	if err := uc.authorize(actorEmail); err != nil {
		return nil, err
	}
	return uc.users.List(ctx)
}

// ListListings returns every listing, any status.
func (uc *AdminUsecase) ListListings(ctx context.Context, actorEmail string) ([]*domain.Listing, error) {
	if err := uc.authorize(actorEmail); err != nil {
		return nil, err
	}
	return uc.listings.FindAll(ctx)
}

// ClaimRow is a claim joined with its listing's food name for the table.
type ClaimRow struct {
	domain.Claim
	FoodName string `json:"foodName"`
}

// ListClaims returns all claims, each enriched with the listing name. A
// dangling listing reference renders as "Unknown" instead of failing the
// whole table.
func (uc *AdminUsecase) ListClaims(ctx context.Context, actorEmail string) ([]ClaimRow, error) {
	if err := uc.authorize(actorEmail); err != nil {
		return nil, err
	}

	claims, err := uc.claims.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]ClaimRow, 0, len(claims))
	for _, c := range claims {
		foodName := "Unknown"
		listing, err := uc.listings.FindByID(ctx, c.ListingID)
		if err != nil {
			uc.logger.Warnf("AdminUsecase.ListClaims: listing %s lookup failed: %v", c.ListingID, err)
		} else {
			foodName = listing.FoodName
		}
		rows = append(rows, ClaimRow{Claim: *c, FoodName: foodName})
	}
	return rows, nil
}

// DeleteUser removes an account. Stats and content are left in place.
func (uc *AdminUsecase) DeleteUser(ctx context.Context, actorEmail, userID string) error {
	if err := uc.authorize(actorEmail); err != nil {
		return err
	}
	return uc.users.Delete(ctx, userID)
}

// DeleteListing removes a listing regardless of owner or status.
func (uc *AdminUsecase) DeleteListing(ctx context.Context, actorEmail, listingID string) error {
	if err := uc.authorize(actorEmail); err != nil {
		return err
	}
	if err := uc.listings.Delete(ctx, listingID); err != nil {
		return err
	}
	if uc.cache != nil {
		if err := uc.cache.DeleteListing(ctx, listingID); err != nil {
			uc.logger.Warnf("AdminUsecase.DeleteListing: cache invalidation failed: %v", err)
		}
		if err := uc.cache.InvalidateAvailable(ctx); err != nil {
			uc.logger.Warnf("AdminUsecase.DeleteListing: cache invalidation failed: %v", err)
		}
	}
	return nil
}

// DeleteClaim removes a claim record. The listing keeps its claimed status;
// stats are increment-only and are never rolled back.
func (uc *AdminUsecase) DeleteClaim(ctx context.Context, actorEmail, claimID string) error {
	if err := uc.authorize(actorEmail); err != nil {
		return err
	}
	return uc.claims.Delete(ctx, claimID)
}
