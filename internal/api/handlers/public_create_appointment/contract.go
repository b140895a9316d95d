package public_create_appointment

import (
	"context"

	publicBooking "github.com/devsign-cl/appointment-service/internal/usecase/public_booking"
)

type PublicBookingUseCase interface {
	Execute(ctx context.Context, req *publicBooking.Request) (*publicBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
