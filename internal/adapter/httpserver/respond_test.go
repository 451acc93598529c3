package httpserver

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/srirupaul05/foodbridge/internal/domain"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrNotAuthenticated, http.StatusUnauthorized},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrSelfClaim, http.StatusForbidden},
		{domain.ErrListingNotFound, http.StatusNotFound},
		{domain.ErrItemNotFound, http.StatusNotFound},
		{domain.ErrAlreadyClaimed, http.StatusConflict},
		{domain.ErrDuplicateEmail, http.StatusConflict},
		{domain.ErrDailyLimit, http.StatusTooManyRequests},
		{domain.ErrInvalidListing, http.StatusBadRequest},
		{domain.ErrWeakPassword, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), tc.err.Error())
	}
}

// Wrapped sentinels still map to their status.
func TestStatusFor_WrappedError(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), domain.ErrAlreadyClaimed)
	assert.Equal(t, http.StatusConflict, statusFor(wrapped))
}
