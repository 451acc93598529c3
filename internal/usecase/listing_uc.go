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

// CreateListingInput is the donor's new-listing form.
type CreateListingInput struct {
	FoodName    string
	Category    domain.Category
	Quantity    float64
	Unit        string
	Location    string
	ExpiryDate  time.Time
	PickupStart *time.Time
	PickupEnd   *time.Time
	Notes       string
}

// ListingView is a listing with its expiry classification resolved for
// display.
type ListingView struct {
	domain.Listing
	Expiry domain.ExpiryClassification `json:"expiry"`
}

// ListingUsecase owns the listing lifecycle: posting (with the daily limit
// and best-effort geocoding), browsing, photo upload and deletion.
type ListingUsecase struct {
	listings  domain.ListingRepository
	stats     *StatsUsecase
	geocoder  Geocoder
	photos    PhotoStorage
	cache     ListingCache
	publisher Publisher
	logger    logger.Logger
	now       func() time.Time
}

func NewListingUsecase(
	listings domain.ListingRepository,
	stats *StatsUsecase,
	geocoder Geocoder,
	photos PhotoStorage,
	cache ListingCache,
	publisher Publisher,
	log logger.Logger,
) *ListingUsecase {
	return &ListingUsecase{
		listings:  listings,
		stats:     stats,
		geocoder:  geocoder,
		photos:    photos,
		cache:     cache,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

func validateListingInput(in CreateListingInput) error {
	if strings.TrimSpace(in.FoodName) == "" {
		return fmt.Errorf("%w: food name is required", domain.ErrInvalidListing)
	}
	if !domain.ValidCategory(in.Category) {
		return fmt.Errorf("%w: unknown category %q", domain.ErrInvalidListing, in.Category)
	}
	if in.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidListing)
	}
	if in.Quantity > domain.MaxQuantityKg {
		return fmt.Errorf("%w: quantity exceeds %.0fkg", domain.ErrInvalidListing, domain.MaxQuantityKg)
	}
	if strings.TrimSpace(in.Location) == "" {
		return fmt.Errorf("%w: pickup location is required", domain.ErrInvalidListing)
	}
	if in.ExpiryDate.IsZero() {
		return fmt.Errorf("%w: expiry date is required", domain.ErrInvalidListing)
	}
	if in.PickupStart != nil && in.PickupEnd != nil {
		if !in.PickupStart.Before(*in.PickupEnd) {
			return fmt.Errorf("%w: pickup window must start before it ends", domain.ErrInvalidListing)
		}
		if in.PickupEnd.After(in.ExpiryDate) {
			return fmt.Errorf("%w: pickup window must close before expiry", domain.ErrInvalidListing)
		}
	}
	return nil
}

// Create posts a new listing for the acting donor. The per-day limit is
// counted between the donor's local midnights, enforced here rather than
// trusted from the client. Geocoding is best effort: an unresolvable address
// leaves lat/lng unset and never blocks the post.
func (uc *ListingUsecase) Create(ctx context.Context, donorID, donorName string, in CreateListingInput) (*domain.Listing, error) {
	if donorID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	if err := validateListingInput(in); err != nil {
		return nil, err
	}

	now := uc.now()
	dayStart := domain.LocalMidnight(now)
	dayEnd := dayStart.Add(24 * time.Hour)

	posted, err := uc.listings.CountByDonorBetween(ctx, donorID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("count today's posts: %w", err)
	}
	if posted >= domain.MaxPostsPerDay {
		return nil, domain.ErrDailyLimit
	}

	listing := &domain.Listing{
		ID:          uuid.New().String(),
		DonorID:     donorID,
		DonorName:   donorName,
		FoodName:    strings.TrimSpace(in.FoodName),
		Category:    in.Category,
		Quantity:    in.Quantity,
		Unit:        in.Unit,
		Location:    strings.TrimSpace(in.Location),
		ExpiryDate:  in.ExpiryDate,
		PickupStart: in.PickupStart,
		PickupEnd:   in.PickupEnd,
		Notes:       in.Notes,
		Status:      domain.StatusAvailable,
		CreatedAt:   now,
	}

	if uc.geocoder != nil {
		point, err := uc.geocoder.Geocode(ctx, listing.Location)
		if err != nil {
			uc.logger.Warnf("ListingUsecase.Create: geocoding %q failed: %v", listing.Location, err)
		} else if point != nil {
			listing.Lat = &point.Lat
			listing.Lng = &point.Lng
		}
	}

	if err := uc.listings.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}

	if uc.cache != nil {
		if err := uc.cache.InvalidateAvailable(ctx); err != nil {
			uc.logger.Warnf("ListingUsecase.Create: cache invalidation failed: %v", err)
		}
	}
	if uc.publisher != nil {
		if err := uc.publisher.Publish(ctx, SubjectListingCreated, listing); err != nil {
			uc.logger.Warnf("ListingUsecase.Create: publish failed: %v", err)
		}
	}

	if err := uc.stats.RecordDonation(ctx, donorID, listing.Quantity); err != nil {
		uc.logger.Errorf("ListingUsecase.Create: stats increment failed for donor %s: %v", donorID, err)
		return listing, domain.ErrStatsIncomplete
	}

	return listing, nil
}

// UploadPhoto stores the photo and attaches its URL to the listing. Only the
// owner may attach a photo.
func (uc *ListingUsecase) UploadPhoto(ctx context.Context, listingID, actorID, fileName string, data []byte) (string, error) {
	if actorID == "" {
		return "", domain.ErrNotAuthenticated
	}
	if uc.photos == nil {
		return "", fmt.Errorf("photo storage is not configured")
	}

	listing, err := uc.listings.FindByID(ctx, listingID)
	if err != nil {
		return "", err
	}
	if listing.DonorID != actorID {
		return "", domain.ErrForbidden
	}

	url, err := uc.photos.Upload(ctx, fmt.Sprintf("%s/%s", listingID, fileName), data)
	if err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}
	if err := uc.listings.SetPhotoURL(ctx, listingID, url); err != nil {
		return "", fmt.Errorf("attach photo url: %w", err)
	}

	if uc.cache != nil {
		if err := uc.cache.DeleteListing(ctx, listingID); err != nil {
			uc.logger.Warnf("ListingUsecase.UploadPhoto: cache invalidation failed: %v", err)
		}
	}
	return url, nil
}

// GetByID fetches one listing, consulting the cache first.
func (uc *ListingUsecase) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.GetListing(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	listing, err := uc.listings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		if err := uc.cache.SetListing(ctx, listing); err != nil {
			uc.logger.Warnf("ListingUsecase.GetByID: cache write failed: %v", err)
		}
	}
	return listing, nil
}

// ListAvailable returns open listings matching the filter, each with its
// expiry band resolved. The unfiltered page is served from cache when warm.
func (uc *ListingUsecase) ListAvailable(ctx context.Context, filter domain.ListingFilter) ([]ListingView, error) {
	unfiltered := filter.Category == "" && filter.Query == "" && filter.ExpiryBand == ""

	var listings []*domain.Listing
	var err error

	if unfiltered && uc.cache != nil {
		if cached, cacheErr := uc.cache.GetAvailable(ctx); cacheErr == nil && cached != nil {
			listings = cached
		}
	}
	if listings == nil {
		listings, err = uc.listings.FindAvailable(ctx, filter)
		if err != nil {
			return nil, err
		}
		if unfiltered && uc.cache != nil {
			if err := uc.cache.SetAvailable(ctx, listings); err != nil {
				uc.logger.Warnf("ListingUsecase.ListAvailable: cache write failed: %v", err)
			}
		}
	}

	today := uc.now()
	views := make([]ListingView, 0, len(listings))
	for _, l := range listings {
		cls := domain.ClassifyExpiry(l.ExpiryDate, today, domain.ListingThresholds)
		if !matchesExpiryBand(filter.ExpiryBand, cls.DaysLeft) {
			continue
		}
		views = append(views, ListingView{Listing: *l, Expiry: cls})
	}
	return views, nil
}

// matchesExpiryBand applies the browse page's expiry filter. Bands overlap
// deliberately: "week" includes today's and tomorrow's items too.
func matchesExpiryBand(band string, daysLeft int) bool {
	switch band {
	case "":
		return true
	case "today":
		return daysLeft == 0
	case "urgent":
		return daysLeft >= 0 && daysLeft <= 2
	case "week":
		return daysLeft >= 0 && daysLeft <= 7
	default:
		return true
	}
}

// ListByDonor returns all of a donor's own listings, newest first, any
// status.
func (uc *ListingUsecase) ListByDonor(ctx context.Context, donorID string) ([]ListingView, error) {
	if donorID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	listings, err := uc.listings.FindByDonor(ctx, donorID)
	if err != nil {
		return nil, err
	}

	today := uc.now()
	views := make([]ListingView, 0, len(listings))
	for _, l := range listings {
		views = append(views, ListingView{
			Listing: *l,
			Expiry:  domain.ClassifyExpiry(l.ExpiryDate, today, domain.ListingThresholds),
		})
	}
	return views, nil
}

// Delete removes a listing. Allowed for the owner; admins go through the
// admin usecase which bypasses the ownership check.
func (uc *ListingUsecase) Delete(ctx context.Context, listingID, actorID string) error {
	if actorID == "" {
		return domain.ErrNotAuthenticated
	}

	listing, err := uc.listings.FindByID(ctx, listingID)
	if err != nil {
		return err
	}
	if listing.DonorID != actorID {
		return domain.ErrForbidden
	}

	if err := uc.listings.Delete(ctx, listingID); err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}

	if uc.cache != nil {
		if err := uc.cache.DeleteListing(ctx, listingID); err != nil {
			uc.logger.Warnf("ListingUsecase.Delete: cache invalidation failed: %v", err)
		}
		if err := uc.cache.InvalidateAvailable(ctx); err != nil {
			uc.logger.Warnf("ListingUsecase.Delete: cache invalidation failed: %v", err)
		}
	}
	if uc.publisher != nil {
		if err := uc.publisher.Publish(ctx, SubjectListingDeleted, map[string]string{"id": listingID}); err != nil {
			uc.logger.Warnf("ListingUsecase.Delete: publish failed: %v", err)
		}
	}
	return nil
}
