package employee_availability

import (
	"context"

	employeeAvailability "github.com/devsign-cl/appointment-service/internal/usecase/employee_availability"
)

type EmployeeAvailabilityUseCase interface {
	Execute(ctx context.Context, req *employeeAvailability.Request) (*employeeAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
