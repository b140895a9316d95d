package scheduling

import (
	"github.com/devsign-cl/appointment-service/internal/domain"
	"github.com/devsign-cl/appointment-service/pkg/types"
)

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not conflict: an
// appointment ending at 10:30 never collides with one starting at 10:30.
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && aEnd.IsAfter(bStart)
}

// FindConflict returns the first appointment in existing whose interval
// overlaps [start, end). Appointments that do not block their slot
// (cancelled, completed) are skipped, as is the appointment with
// excludeID — callers pass their own id during update-in-place checks,
// or 0 on creation. Returns nil when the interval is free.
func FindConflict(start, end types.TimeString, existing []*domain.Appointment, excludeID int64) *domain.Appointment {
	for _, appointment := range existing {
		if excludeID != 0 && appointment.ID == excludeID {
			continue
		}
		if !appointment.BlocksSlot() {
			continue
		}
		if Overlaps(start, end, appointment.StartTime, appointment.EndTime) {
			return appointment
		}
	}
	return nil
}

// BusyEmployees collects the ids of employees that have a slot-blocking
// appointment overlapping [start, end)
func BusyEmployees(start, end types.TimeString, appointments []*domain.Appointment) map[int64]bool {
	busy := make(map[int64]bool)
	for _, appointment := range appointments {
		if !appointment.BlocksSlot() {
			continue
		}
		if Overlaps(start, end, appointment.StartTime, appointment.EndTime) {
			busy[appointment.EmployeeID] = true
		}
	}
	return busy
}
