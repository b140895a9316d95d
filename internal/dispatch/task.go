package dispatch

import (
	"github.com/google/uuid"

	"github.com/devsign-cl/appointment-service/internal/domain"
)

// TaskKind names the appointment change a task carries
type TaskKind string

const (
	KindCreated TaskKind = "created"
	KindUpdated TaskKind = "updated"
	KindDeleted TaskKind = "deleted"
)

// Task is one unit of side-effect work. Appointment is a snapshot taken at
// submit time; workers never read the database row the request mutated.
type Task struct {
	ID          uuid.UUID
	Kind        TaskKind
	Appointment *domain.Appointment
	OldStatus   domain.AppointmentStatus
	NewStatus   domain.AppointmentStatus
}

func newTask(kind TaskKind, appointment *domain.Appointment, oldStatus, newStatus domain.AppointmentStatus) Task {
	snapshot := *appointment
	return Task{
		ID:          uuid.New(),
		Kind:        kind,
		Appointment: &snapshot,
		OldStatus:   oldStatus,
		NewStatus:   newStatus,
	}
}
