package googlecalendar

import "github.com/devsign-cl/appointment-service/internal/domain"

// Google Calendar palette ids per appointment status:
// 5 banana, 10 basil, 1 lavender, 4 flamingo
var statusColorIDs = map[domain.AppointmentStatus]string{
	domain.StatusPending:   "5",
	domain.StatusConfirmed: "10",
	domain.StatusCompleted: "1",
	domain.StatusCancelled: "4",
}

var statusEmojis = map[domain.AppointmentStatus]string{
	domain.StatusPending:   "⏳",
	domain.StatusConfirmed: "✅",
	domain.StatusCompleted: "🎉",
	domain.StatusCancelled: "❌",
}

// statusDisplay are the Spanish labels shown in event descriptions
var statusDisplay = map[domain.AppointmentStatus]string{
	domain.StatusPending:   "Pendiente",
	domain.StatusConfirmed: "Confirmada",
	domain.StatusCompleted: "Completada",
	domain.StatusCancelled: "Cancelada",
}

// ColorID returns the palette id for a status
func ColorID(status domain.AppointmentStatus) string {
	if id, ok := statusColorIDs[status]; ok {
		return id
	}
	return statusColorIDs[domain.StatusPending]
}

// Emoji returns the summary prefix for a status
func Emoji(status domain.AppointmentStatus) string {
	return statusEmojis[status]
}

// StatusDisplay returns the Spanish label for a status
func StatusDisplay(status domain.AppointmentStatus) string {
	return statusDisplay[status]
}
