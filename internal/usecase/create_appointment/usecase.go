package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/devsign-cl/appointment-service/internal/domain"
	appointmentRepo "github.com/devsign-cl/appointment-service/internal/infra/storage/appointment"
	clientRepo "github.com/devsign-cl/appointment-service/internal/infra/storage/client"
	employeeRepo "github.com/devsign-cl/appointment-service/internal/infra/storage/employee"
	serviceRepo "github.com/devsign-cl/appointment-service/internal/infra/storage/service"
	"github.com/devsign-cl/appointment-service/internal/scheduling"
)

// UseCase books an appointment for an existing client.
// The conflict check and the insert run inside a serializable transaction;
// the unique index on (employee, date, start) catches what the check cannot.
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	employeeRepo    EmployeeRepository
	clientRepo      ClientRepository
	txManager       TransactionManager
	dispatcher      Dispatcher
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	employeeRepo EmployeeRepository,
	clientRepo ClientRepository,
	txManager TransactionManager,
	dispatcher Dispatcher,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		employeeRepo:    employeeRepo,
		clientRepo:      clientRepo,
		txManager:       txManager,
		dispatcher:      dispatcher,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute books the appointment and hands the result to the dispatcher.
// Dispatch happens only after the transaction commits.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: business=%d, client=%d, service=%d, employee=%d, date=%s, time=%s",
		req.BusinessID, req.ClientID, req.ServiceID, req.EmployeeID,
		req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	if isDateInPast(req.Date, uc.timeProvider.Now()) {
		uc.logger.Warn("CreateAppointment: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: date must not be in the past", ErrInvalidInput)
	}

	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("CreateAppointment: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}
	if service.BusinessID != req.BusinessID {
		return nil, ErrWrongBusiness
	}

	employee, err := uc.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			uc.logger.Warn("CreateAppointment: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}
	if !employee.IsActive {
		uc.logger.Warn("CreateAppointment: employee id=%d is inactive", req.EmployeeID)
		return nil, ErrEmployeeNotFound
	}
	if employee.BusinessID != req.BusinessID {
		return nil, ErrWrongBusiness
	}

	client, err := uc.clientRepo.GetByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			uc.logger.Warn("CreateAppointment: client id=%d not found", req.ClientID)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get client id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}
	if client.BusinessID != req.BusinessID {
		return nil, ErrWrongBusiness
	}

	// End time is always derived from the service duration
	endTime, err := req.StartTime.AddMinutes(service.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute end time: %v", ErrInvalidInput, err)
	}
	// AddMinutes wraps past midnight; appointments never cross days
	if !req.StartTime.IsBefore(endTime) {
		return nil, fmt.Errorf("%w: start time %s must be before end time %s",
			ErrInvalidInput, req.StartTime, endTime)
	}

	status := domain.StatusPending
	if req.Status != "" {
		status = domain.AppointmentStatus(req.Status)
	}

	var result *domain.Appointment

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// The employee's day is loaded FOR UPDATE inside the transaction
		existing, err := uc.appointmentRepo.ListByEmployeeAndDate(txCtx, req.EmployeeID, req.Date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to list appointments: %v", err)
			return fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
		}

		if blocker := scheduling.FindConflict(req.StartTime, endTime, existing, 0); blocker != nil {
			uc.logger.Warn("CreateAppointment: conflict with appointment id=%d (%s-%s)",
				blocker.ID, blocker.StartTime, blocker.EndTime)
			return fmt.Errorf("%w: %s ya tiene una cita de %s a %s", ErrSlotConflict,
				blocker.EmployeeName, blocker.StartTime, blocker.EndTime)
		}

		appointment := &domain.Appointment{
			BusinessID: req.BusinessID,
			ClientID:   req.ClientID,
			ServiceID:  req.ServiceID,
			EmployeeID: req.EmployeeID,
			Date:       req.Date,
			StartTime:  req.StartTime,
			EndTime:    endTime,
			Status:     status,
			Notes:      req.Notes,

			ServiceName:            service.Name,
			ServicePrice:           service.Price,
			ServiceDurationMinutes: service.DurationMinutes,
			ClientName:             client.FullName(),
			ClientEmail:            client.Email,
			ClientPhone:            client.Phone,
			EmployeeName:           employee.FullName(),
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrDuplicateSlot) {
				uc.logger.Warn("CreateAppointment: duplicate slot for employee=%d at %s %s",
					req.EmployeeID, req.Date.Format(domain.DateFormat), req.StartTime)
				return fmt.Errorf("%w: el horario ya fue tomado", ErrSlotConflict)
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: created appointment id=%d", result.ID)

	uc.dispatcher.AppointmentCreated(result)

	return toResponse(result), nil
}

func toResponse(a *domain.Appointment) *Response {
	return &Response{
		ID:         a.ID,
		BusinessID: a.BusinessID,
		ClientID:   a.ClientID,
		ServiceID:  a.ServiceID,
		EmployeeID: a.EmployeeID,
		Date:       a.Date,
		StartTime:  a.StartTime,
		EndTime:    a.EndTime,
		Status:     string(a.Status),

		ServiceName:            a.ServiceName,
		ServicePrice:           a.ServicePrice,
		ServiceDurationMinutes: a.ServiceDurationMinutes,
		ClientName:             a.ClientName,
		EmployeeName:           a.EmployeeName,
		Notes:                  a.Notes,

		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
