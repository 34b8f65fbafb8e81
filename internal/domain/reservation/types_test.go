//go:build unit

package reservation_test

import (
	"testing"

	"reservas-backend/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionConfirm(t *testing.T) {
	cases := []struct {
		name    string
		cur     reservation.Status
		changed bool
		errIs   error
	}{
		{name: "pending confirms", cur: reservation.StatusPending, changed: true},
		{name: "already confirmed is a no-op", cur: reservation.StatusConfirmed, changed: false},
		{name: "cancelled by customer", cur: reservation.StatusCancelledByCustomer, errIs: reservation.ErrAlreadyTerminal},
		{name: "cancelled by admin", cur: reservation.StatusCancelledByAdmin, errIs: reservation.ErrAlreadyTerminal},
		{name: "rejected", cur: reservation.StatusRejected, errIs: reservation.ErrAlreadyTerminal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			changed, err := reservation.TransitionConfirm(tc.cur)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.changed, changed)
		})
	}
}

func TestTransitionCancel(t *testing.T) {
	cases := []struct {
		name    string
		cur     reservation.Status
		to      reservation.Status
		changed bool
		errIs   error
	}{
		{name: "pending to customer cancel", cur: reservation.StatusPending, to: reservation.StatusCancelledByCustomer, changed: true},
		{name: "confirmed to admin cancel", cur: reservation.StatusConfirmed, to: reservation.StatusCancelledByAdmin, changed: true},
		{name: "pending to rejected", cur: reservation.StatusPending, to: reservation.StatusRejected, changed: true},
		{name: "repeat of the same cancellation is a no-op", cur: reservation.StatusRejected, to: reservation.StatusRejected, changed: false},
		{name: "target must be terminal", cur: reservation.StatusPending, to: reservation.StatusConfirmed, errIs: reservation.ErrInvalidTransition},
		{name: "cannot leave a different terminal state", cur: reservation.StatusCancelledByCustomer, to: reservation.StatusCancelledByAdmin, errIs: reservation.ErrAlreadyTerminal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			changed, err := reservation.TransitionCancel(tc.cur, tc.to)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.changed, changed)
		})
	}
}

func TestStatus(t *testing.T) {
	t.Run("validity", func(t *testing.T) {
		assert.True(t, reservation.Status("pendiente").IsValid())
		assert.True(t, reservation.Status("cancelada_por_admin").IsValid())
		assert.False(t, reservation.Status("cancelled").IsValid())
	})

	t.Run("inactive statuses match the terminal set", func(t *testing.T) {
		inactive := reservation.InactiveStatuses()
		require.Len(t, inactive, 3)
		for _, s := range inactive {
			assert.True(t, reservation.Status(s).IsTerminal())
		}
	})
}
