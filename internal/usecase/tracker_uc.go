package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/srirupaul05/foodbridge/internal/domain"
	"github.com/srirupaul05/foodbridge/internal/platform/logger"
)

// AddTrackerItemInput is the expiry tracker's add form.
type AddTrackerItemInput struct {
	Name       string
	Quantity   float64
	Unit       string
	Category   domain.Category
	ExpiryDate time.Time
}

// TrackerItemView is a tracked item with its urgency band resolved.
type TrackerItemView struct {
	domain.TrackerItem
	Expiry domain.ExpiryClassification `json:"expiry"`
}

// TrackerUsecase manages a user's private expiry tracker. Items are scoped
// to their owner; nothing here touches listings except the explicit
// conversion, which copies and never deletes.
type TrackerUsecase struct {
	tracker domain.TrackerRepository
	logger  logger.Logger
	now     func() time.Time
}

func NewTrackerUsecase(tracker domain.TrackerRepository, log logger.Logger) *TrackerUsecase {
	return &TrackerUsecase{tracker: tracker, logger: log, now: time.Now}
}

// Add stores a new tracked item for the owner.
func (uc *TrackerUsecase) Add(ctx context.Context, ownerID string, in AddTrackerItemInput) (*domain.TrackerItem, error) {
	if ownerID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidItem)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidItem)
	}
	if in.ExpiryDate.IsZero() {
		return nil, fmt.Errorf("%w: expiry date is required", domain.ErrInvalidItem)
	}
	if in.Category != "" && !domain.ValidCategory(in.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidItem, in.Category)
	}

	item := &domain.TrackerItem{
		ID:         uuid.New().String(),
		OwnerID:    ownerID,
		Name:       strings.TrimSpace(in.Name),
		Quantity:   in.Quantity,
		Unit:       in.Unit,
		Category:   in.Category,
		ExpiryDate: in.ExpiryDate,
		AddedAt:    uc.now(),
	}
	if err := uc.tracker.Add(ctx, item); err != nil {
		return nil, fmt.Errorf("add tracker item: %w", err)
	}
	return item, nil
}

// List returns the owner's tracked items with urgency bands. The tracker
// uses its own thresholds, giving one more day of "urgent" lead time than
// the listing pages.
func (uc *TrackerUsecase) List(ctx context.Context, ownerID string) ([]TrackerItemView, error) {
	if ownerID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	items, err := uc.tracker.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	today := uc.now()
	views := make([]TrackerItemView, 0, len(items))
	for _, item := range items {
		views = append(views, TrackerItemView{
			TrackerItem: *item,
			Expiry:      domain.ClassifyExpiry(item.ExpiryDate, today, domain.TrackerThresholds),
		})
	}
	return views, nil
}

// Remove deletes one of the owner's items. Removing someone else's item (or
// a missing one) reports ErrItemNotFound; ids are not guessable across
// owners.
func (uc *TrackerUsecase) Remove(ctx context.Context, ownerID, itemID string) error {
	if ownerID == "" {
		return domain.ErrNotAuthenticated
	}
	return uc.tracker.Delete(ctx, ownerID, itemID)
}

// ToListingDraft produces a pre-filled listing form from a tracked item. The
// item stays in the tracker; it only leaves when the owner removes it.
func (uc *TrackerUsecase) ToListingDraft(ctx context.Context, ownerID, itemID string) (*domain.ListingDraft, error) {
	if ownerID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	item, err := uc.tracker.FindByID(ctx, ownerID, itemID)
	if err != nil {
		return nil, err
	}

	return &domain.ListingDraft{
		FoodName: item.Name,
		Quantity: item.Quantity,
		Unit:     item.Unit,
		Category: item.Category,
	}, nil
}
