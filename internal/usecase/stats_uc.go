package usecase

import (
	"context"
	"fmt"

	"github.com/srirupaul05/foodbridge/internal/domain"
	"github.com/srirupaul05/foodbridge/internal/platform/logger"
)

// DefaultLeaderboardSize caps the community leaderboard.
const DefaultLeaderboardSize = 10

// StatsUsecase applies impact increments and serves the derived views
// (impact summary, badges, leaderboard). Counters only ever grow; there is
// no recompute-from-scratch path.
type StatsUsecase struct {
	stats  domain.StatsRepository
	users  domain.UserRepository
	logger logger.Logger
}

func NewStatsUsecase(stats domain.StatsRepository, users domain.UserRepository, log logger.Logger) *StatsUsecase {
	return &StatsUsecase{stats: stats, users: users, logger: log}
}

// RecordDonation credits the donor for a freshly posted listing. User stats
// first, then global; both are additive upserts so ordering only matters for
// which half can be missing after a partial failure.
func (uc *StatsUsecase) RecordDonation(ctx context.Context, donorID string, kg float64) error {
	return uc.apply(ctx, donorID, kg)
}

// RecordClaim credits the donor when their listing is actually claimed. The
// recipient gets no counters; impact belongs to whoever gave the food away.
func (uc *StatsUsecase) RecordClaim(ctx context.Context, kg float64, donorID string) error {
	return uc.apply(ctx, donorID, kg)
}

func (uc *StatsUsecase) apply(ctx context.Context, userID string, kg float64) error {
	delta := domain.DeltaForQuantity(kg)

	if err := uc.stats.IncrementUser(ctx, userID, delta); err != nil {
		return fmt.Errorf("increment user stats: %w", err)
	}
	if err := uc.stats.IncrementGlobal(ctx, delta); err != nil {
		return fmt.Errorf("increment global stats: %w", err)
	}
	return nil
}

// InitUser seeds a zeroed stats document for a new account so impact pages
// never 404 on fresh users.
func (uc *StatsUsecase) InitUser(ctx context.Context, userID string) error {
	return uc.stats.InitUser(ctx, userID)
}

// ImpactSummary is a user's counters plus the badge catalog with unlock
// state resolved against them.
type ImpactSummary struct {
	Stats  domain.UserStats `json:"stats"`
	Badges []BadgeView      `json:"badges"`
}

type BadgeView struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
}

// UserImpact returns the user's stats and derived badges. A user with no
// stats document yet gets zeroed counters, not an error.
func (uc *StatsUsecase) UserImpact(ctx context.Context, userID string) (*ImpactSummary, error) {
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	stats, err := uc.stats.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = &domain.UserStats{UserID: userID}
	}

	badges := make([]BadgeView, 0, len(domain.BadgeCatalog))
	for _, b := range domain.BadgeCatalog {
		badges = append(badges, BadgeView{
			ID:          b.ID,
			Icon:        b.Icon,
			Name:        b.Name,
			Description: b.Description,
			Unlocked:    b.Unlocks(*stats),
		})
	}

	return &ImpactSummary{Stats: *stats, Badges: badges}, nil
}

// GlobalImpact returns the community-wide counters.
func (uc *StatsUsecase) GlobalImpact(ctx context.Context) (*domain.GlobalStats, error) {
	global, err := uc.stats.GetGlobal(ctx)
	if err != nil {
		return nil, err
	}
	if global == nil {
		global = &domain.GlobalStats{}
	}
	return global, nil
}

// LeaderboardEntry is one ranked row of the community leaderboard.
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	UserID     string  `json:"userId"`
	Name       string  `json:"name"`
	TotalKg    float64 `json:"totalKg"`
	TotalMeals int64   `json:"totalMeals"`
	Donations  int64   `json:"donations"`
}

// Leaderboard ranks users by meals provided. A failed name lookup demotes
// the row to "Anonymous" rather than dropping it or failing the page.
func (uc *StatsUsecase) Leaderboard(ctx context.Context, limit int64) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}

	rows, err := uc.stats.TopByMeals(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	for i, s := range rows {
		name := "Anonymous"
		user, err := uc.users.FindByID(ctx, s.UserID)
		if err != nil {
			uc.logger.Warnf("StatsUsecase.Leaderboard: name lookup failed for %s: %v", s.UserID, err)
		} else if user.Name != "" {
			name = user.Name
		}

		entries = append(entries, LeaderboardEntry{
			Rank:       i + 1,
			UserID:     s.UserID,
			Name:       name,
			TotalKg:    s.TotalKg,
			TotalMeals: s.TotalMeals,
			Donations:  s.Donations,
		})
	}
	return entries, nil
}
