package employee_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/devsign-cl/appointment-service/internal/domain"
	serviceRepo "github.com/devsign-cl/appointment-service/internal/infra/storage/service"
	"github.com/devsign-cl/appointment-service/internal/scheduling"
)

// UseCase finds the employees free for a service window. The window end is
// derived from the service duration; an employee is busy when any pending
// or confirmed appointment overlaps the window.
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	employeeRepo    EmployeeRepository
	logger          Logger
}

// NewUseCase creates the use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	employeeRepo EmployeeRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		employeeRepo:    employeeRepo,
		logger:          logger,
	}
}

// Execute returns the employees with no overlapping active appointment
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("EmployeeAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		return nil, ErrServiceNotFound
	}
	if service.BusinessID != req.BusinessID {
		return nil, ErrWrongBusiness
	}

	endTime, err := req.StartTime.AddMinutes(service.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute end time: %v", ErrInvalidInput, err)
	}

	appointments, err := uc.appointmentRepo.ListByBusinessAndDate(ctx, req.BusinessID, req.Date, nil)
	if err != nil {
		uc.logger.Error("EmployeeAvailability: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	busy := scheduling.BusyEmployees(req.StartTime, endTime, appointments)

	employees, err := uc.employeeRepo.ListByBusiness(ctx, req.BusinessID, true)
	if err != nil {
		uc.logger.Error("EmployeeAvailability: failed to list employees: %v", err)
		return nil, fmt.Errorf("%w: failed to list employees: %v", ErrInternal, err)
	}

	available := make([]AvailableEmployee, 0, len(employees))
	for _, e := range employees {
		if !busy[e.ID] {
			available = append(available, AvailableEmployee{ID: e.ID, Name: e.FullName()})
		}
	}

	uc.logger.Info("EmployeeAvailability: business=%d date=%s %s-%s -> %d/%d employees free",
		req.BusinessID, req.Date.Format(domain.DateFormat), req.StartTime, endTime,
		len(available), len(employees))

	return &Response{
		Date:      req.Date.Format(domain.DateFormat),
		StartTime: req.StartTime,
		EndTime:   endTime,
		Employees: available,
	}, nil
}
