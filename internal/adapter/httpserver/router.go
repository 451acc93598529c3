package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/srirupaul05/foodbridge/internal/platform/logger"
	"github.com/srirupaul05/foodbridge/internal/platform/metrics"
	"github.com/srirupaul05/foodbridge/internal/usecase"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth    *AuthHandler
	Listing *ListingHandler
	Claim   *ClaimHandler
	Stats   *StatsHandler
	Tracker *TrackerHandler
	Chat    *ChatHandler
	Admin   *AdminHandler
}

// NewRouter assembles the HTTP surface. Browse and impact pages are public;
// everything that acts on behalf of a user sits behind the auth middleware.
func NewRouter(h Handlers, auth *usecase.AuthUsecase, m *metrics.Manager, log logger.Logger, serviceName string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(Tracing(serviceName))
	r.Use(RequestMetrics(m))
	r.Use(RequestLogger(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		// Public.
		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/verify-email", h.Auth.VerifyEmail)
		r.Post("/auth/resend-code", h.Auth.ResendCode)

		r.Get("/listings", h.Listing.List)
		r.Get("/listings/{id}", h.Listing.Get)
		r.Get("/impact/global", h.Stats.GlobalImpact)
		r.Get("/leaderboard", h.Stats.Leaderboard)

		// Authenticated.
		r.Group(func(r chi.Router) {
			r.Use(Auth(auth, log))

			r.Post("/auth/logout", h.Auth.Logout)
			r.Get("/auth/me", h.Auth.Me)

			r.Post("/listings", h.Listing.Create)
			r.Get("/listings/mine", h.Listing.Mine)
			r.Delete("/listings/{id}", h.Listing.Delete)
			r.Post("/listings/{id}/photo", h.Listing.UploadPhoto)
			r.Post("/listings/{id}/claim", h.Claim.Claim)
			r.Get("/claims", h.Claim.Mine)

			r.Get("/impact/me", h.Stats.MyImpact)

			r.Get("/tracker", h.Tracker.List)
			r.Post("/tracker", h.Tracker.Add)
			r.Delete("/tracker/{id}", h.Tracker.Remove)
			r.Get("/tracker/{id}/draft", h.Tracker.Draft)

			r.Get("/listings/{id}/chat", h.Chat.Open)
			r.Get("/listings/{id}/chat/messages", h.Chat.Messages)
			r.Post("/listings/{id}/chat/messages", h.Chat.Send)

			r.Route("/admin", func(r chi.Router) {
				r.Get("/overview", h.Admin.Overview)
				r.Get("/users", h.Admin.Users)
				r.Get("/listings", h.Admin.Listings)
				r.Get("/claims", h.Admin.Claims)
				r.Delete("/users/{id}", h.Admin.DeleteUser)
				r.Delete("/listings/{id}", h.Admin.DeleteListing)
				r.Delete("/claims/{id}", h.Admin.DeleteClaim)
			})
		})
	})

	return r
}
