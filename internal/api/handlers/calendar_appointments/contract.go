package calendar_appointments

import (
	"context"

	"github.com/devsign-cl/appointment-service/internal/service/appointments/models"
)

type AppointmentsService interface {
	CalendarView(ctx context.Context, req *models.CalendarRequest) (*models.CalendarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
