package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"procurehub/internal/procureerrors"

	"github.com/stretchr/testify/require"
)

func TestMapErrorToHTTP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not_found", err: procureerrors.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "forbidden", err: procureerrors.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "invalid_input", err: procureerrors.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "tender_closed", err: procureerrors.ErrTenderClosed, wantStatus: http.StatusConflict},
		{name: "duplicate_bid", err: procureerrors.ErrDuplicateBid, wantStatus: http.StatusConflict},
		{name: "too_early", err: procureerrors.ErrTooEarly, wantStatus: http.StatusConflict},
		{name: "invalid_state", err: procureerrors.ErrInvalidState, wantStatus: http.StatusConflict},
		{name: "conflict", err: procureerrors.ErrConflict, wantStatus: http.StatusConflict},
		{name: "unknown", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
		{name: "wrapped_sentinel", err: fmt.Errorf("service: %w", procureerrors.ErrTooEarly), wantStatus: http.StatusConflict},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			status, message := MapErrorToHTTP(tc.err)
			require.Equal(t, tc.wantStatus, status)
			require.NotEmpty(t, message)
		})
	}
}
