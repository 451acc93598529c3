package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/srirupaul05/foodbridge/internal/domain"
	"github.com/srirupaul05/foodbridge/internal/platform/logger"
)

// ClaimUsecase orchestrates the available->claimed transition. The three
// writes are issued strictly in order: listing mutation first, then the claim
// record, then the stats increments. A partial failure therefore leaves at
// most an unclaimed listing or a claim without stats, never double-counted
// stats.
type ClaimUsecase struct {
	listings  domain.ListingRepository
	claims    domain.ClaimRepository
	stats     *StatsUsecase
	cache     ListingCache
	publisher Publisher
	logger    logger.Logger
	now       func() time.Time
}

func NewClaimUsecase(
	listings domain.ListingRepository,
	claims domain.ClaimRepository,
	stats *StatsUsecase,
	cache ListingCache,
	publisher Publisher,
	log logger.Logger,
) *ClaimUsecase {
	return &ClaimUsecase{
		listings:  listings,
		claims:    claims,
		stats:     stats,
		cache:     cache,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

// Claim reserves the listing for the acting user.
//
// Error contract: domain.ErrSelfClaim when the actor owns the listing
// (regardless of its status), domain.ErrAlreadyClaimed when the listing lost
// its availability between render and write, domain.ErrStatsIncomplete when
// the claim itself succeeded but a stats leg failed. The claim stands in that
// last case; stats are best effort and not authoritative of claim validity.
func (uc *ClaimUsecase) Claim(ctx context.Context, listingID, actorID, actorName string) (*domain.Claim, error) {
	if actorID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	listing, err := uc.listings.FindByID(ctx, listingID)
	if err != nil {
		uc.logger.Warnf("ClaimUsecase.Claim: listing %s lookup failed: %v", listingID, err)
		return nil, err
	}
	if listing.DonorID == actorID {
		return nil, domain.ErrSelfClaim
	}

	claimedAt := uc.now()

	// Conditional write: only an available listing flips to claimed. Losing
	// the race surfaces as ErrAlreadyClaimed, never as a silent no-op.
	claimed, err := uc.listings.ClaimAvailable(ctx, listingID, actorID, actorName, claimedAt)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyClaimed) {
			uc.logger.Infof("ClaimUsecase.Claim: listing %s already claimed, user %s lost the race", listingID, actorID)
		}
		return nil, err
	}

	claim := &domain.Claim{
		ID:            uuid.New().String(),
		ListingID:     claimed.ID,
		RecipientID:   actorID,
		RecipientName: actorName,
		DonorID:       claimed.DonorID,
		ClaimedAt:     claimedAt,
		Status:        string(domain.StatusClaimed),
	}
	if err := uc.claims.Create(ctx, claim); err != nil {
		// The listing is already claimed at this point. A dangling claimed
		// listing without a claim record is the accepted partial-failure
		// shape; it is reported, not rolled back.
		uc.logger.Errorf("ClaimUsecase.Claim: claim record write failed for listing %s: %v", listingID, err)
		return nil, fmt.Errorf("create claim record: %w", err)
	}

	if uc.cache != nil {
		if err := uc.cache.DeleteListing(ctx, claimed.ID); err != nil {
			uc.logger.Warnf("ClaimUsecase.Claim: cache invalidation failed: %v", err)
		}
		if err := uc.cache.InvalidateAvailable(ctx); err != nil {
			uc.logger.Warnf("ClaimUsecase.Claim: cache invalidation failed: %v", err)
		}
	}

	if uc.publisher != nil {
		if err := uc.publisher.Publish(ctx, SubjectListingClaimed, claim); err != nil {
			uc.logger.Warnf("ClaimUsecase.Claim: publish failed: %v", err)
		}
	}

	if err := uc.stats.RecordClaim(ctx, claimed.Quantity, claimed.DonorID); err != nil {
		uc.logger.Errorf("ClaimUsecase.Claim: stats increment failed for listing %s: %v", listingID, err)
		return claim, domain.ErrStatsIncomplete
	}

	return claim, nil
}

// ClaimsByRecipient lists the acting user's claims.
func (uc *ClaimUsecase) ClaimsByRecipient(ctx context.Context, recipientID string) ([]*domain.Claim, error) {
	if recipientID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	return uc.claims.FindByRecipient(ctx, recipientID)
}
