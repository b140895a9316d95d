package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, true},
		{StatusConfirmed, StatusPending, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusCancelled, StatusPending, true},
		{StatusCancelled, StatusConfirmed, true},

		// completed is terminal
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},

		// only active appointments can complete
		{StatusCancelled, StatusCompleted, false},

		// same-status writes are allowed
		{StatusPending, StatusPending, true},
		{StatusCompleted, StatusCompleted, true},

		{StatusPending, AppointmentStatus("archived"), false},
	}

	for _, tt := range tests {
		a := &Appointment{Status: tt.from}
		assert.Equal(t, tt.allowed, a.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestBlocksSlot(t *testing.T) {
	assert.True(t, (&Appointment{Status: StatusPending}).BlocksSlot())
	assert.True(t, (&Appointment{Status: StatusConfirmed}).BlocksSlot())
	assert.False(t, (&Appointment{Status: StatusCancelled}).BlocksSlot())
	assert.False(t, (&Appointment{Status: StatusCompleted}).BlocksSlot())
}

func TestCanBeCancelled(t *testing.T) {
	assert.True(t, (&Appointment{Status: StatusPending}).CanBeCancelled())
	assert.True(t, (&Appointment{Status: StatusConfirmed}).CanBeCancelled())
	assert.False(t, (&Appointment{Status: StatusCancelled}).CanBeCancelled())
	assert.False(t, (&Appointment{Status: StatusCompleted}).CanBeCancelled())
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus(StatusPending))
	assert.True(t, IsValidStatus(StatusCancelled))
	assert.False(t, IsValidStatus(AppointmentStatus("")))
	assert.False(t, IsValidStatus(AppointmentStatus("done")))
}
