package notifications

import (
	"fmt"
	"strings"

	"github.com/devsign-cl/appointment-service/internal/domain"
)

// Spanish user-facing templates. Subjects stay short, bodies are simple
// HTML fragments every mail client renders.

var statusDisplay = map[domain.AppointmentStatus]string{
	domain.StatusPending:   "Pendiente",
	domain.StatusConfirmed: "Confirmada",
	domain.StatusCompleted: "Completada",
	domain.StatusCancelled: "Cancelada",
}

func createdSubject(businessName string) string {
	return fmt.Sprintf("Tu cita en %s fue agendada", businessName)
}

func createdBody(businessName string, a *domain.Appointment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hola %s,</p>", a.ClientName)
	fmt.Fprintf(&b, "<p>Tu cita en <strong>%s</strong> fue agendada con éxito.</p>", businessName)
	b.WriteString(detailsTable(a))
	b.WriteString("<p>Te esperamos. Si necesitas reagendar, responde a este correo.</p>")
	return b.String()
}

func adminCreatedSubject(a *domain.Appointment) string {
	return fmt.Sprintf("Nueva cita: %s - %s", a.ClientName, a.ServiceName)
}

func adminCreatedBody(a *domain.Appointment) string {
	var b strings.Builder
	b.WriteString("<p>Se agendó una nueva cita.</p>")
	b.WriteString(detailsTable(a))
	return b.String()
}

func statusChangedSubject(businessName string, newStatus domain.AppointmentStatus) string {
	switch newStatus {
	case domain.StatusConfirmed:
		return fmt.Sprintf("Tu cita en %s fue confirmada", businessName)
	case domain.StatusCancelled:
		return fmt.Sprintf("Tu cita en %s fue cancelada", businessName)
	case domain.StatusCompleted:
		return fmt.Sprintf("Gracias por tu visita a %s", businessName)
	default:
		return fmt.Sprintf("Tu cita en %s cambió de estado", businessName)
	}
}

func statusChangedBody(businessName string, a *domain.Appointment, old, new domain.AppointmentStatus) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hola %s,</p>", a.ClientName)
	fmt.Fprintf(&b, "<p>El estado de tu cita en <strong>%s</strong> cambió de %s a <strong>%s</strong>.</p>",
		businessName, statusDisplay[old], statusDisplay[new])
	b.WriteString(detailsTable(a))
	return b.String()
}

func reminderSubject(businessName string) string {
	return fmt.Sprintf("Recordatorio: tienes una cita mañana en %s", businessName)
}

func reminderBody(businessName string, a *domain.Appointment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hola %s,</p>", a.ClientName)
	fmt.Fprintf(&b, "<p>Te recordamos que mañana tienes una cita en <strong>%s</strong>.</p>", businessName)
	b.WriteString(detailsTable(a))
	b.WriteString("<p>Si no puedes asistir, por favor avísanos con anticipación.</p>")
	return b.String()
}

func detailsTable(a *domain.Appointment) string {
	var b strings.Builder
	b.WriteString("<ul>")
	fmt.Fprintf(&b, "<li><strong>Servicio:</strong> %s</li>", a.ServiceName)
	fmt.Fprintf(&b, "<li><strong>Profesional:</strong> %s</li>", a.EmployeeName)
	fmt.Fprintf(&b, "<li><strong>Fecha:</strong> %s</li>", a.Date.Format(domain.DateFormat))
	fmt.Fprintf(&b, "<li><strong>Hora:</strong> %s - %s</li>", a.StartTime, a.EndTime)
	fmt.Fprintf(&b, "<li><strong>Precio:</strong> $%.0f</li>", a.ServicePrice)
	b.WriteString("</ul>")
	return b.String()
}
