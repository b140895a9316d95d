package public_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/devsign-cl/appointment-service/internal/domain"
	appointmentRepo "github.com/devsign-cl/appointment-service/internal/infra/storage/appointment"
	businessRepo "github.com/devsign-cl/appointment-service/internal/infra/storage/business"
	clientRepo "github.com/devsign-cl/appointment-service/internal/infra/storage/client"
	employeeRepo "github.com/devsign-cl/appointment-service/internal/infra/storage/employee"
	serviceRepo "github.com/devsign-cl/appointment-service/internal/infra/storage/service"
	"github.com/devsign-cl/appointment-service/internal/scheduling"
)

// UseCase books an appointment from the public site. The client is looked
// up by (business, email) and created on first booking; the appointment
// always starts as pending.
type UseCase struct {
	appointmentRepo AppointmentRepository
	businessRepo    BusinessRepository
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
	businessRepo BusinessRepository,
	serviceRepo ServiceRepository,
	employeeRepo EmployeeRepository,
	clientRepo ClientRepository,
	txManager TransactionManager,
	dispatcher Dispatcher,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		businessRepo:    businessRepo,
		serviceRepo:     serviceRepo,
		employeeRepo:    employeeRepo,
		clientRepo:      clientRepo,
		txManager:       txManager,
		dispatcher:      dispatcher,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute books the appointment and hands the result to the dispatcher
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PublicBooking: slug=%s, email=%s, service=%d, employee=%d, date=%s, time=%s",
		req.BusinessSlug, req.ClientEmail, req.ServiceID, req.EmployeeID,
		req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("PublicBooking: validation failed: %v", err)
		return nil, err
	}

	if isDateInPast(req.Date, uc.timeProvider.Now()) {
		uc.logger.Warn("PublicBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: date must not be in the past", ErrInvalidInput)
	}

	business, err := uc.businessRepo.GetBySlug(ctx, req.BusinessSlug)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("PublicBooking: business slug=%s not found", req.BusinessSlug)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("PublicBooking: failed to get business slug=%s: %v", req.BusinessSlug, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("PublicBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive || service.BusinessID != business.ID {
		uc.logger.Warn("PublicBooking: service id=%d not bookable for business id=%d", req.ServiceID, business.ID)
		return nil, ErrServiceNotFound
	}

	employee, err := uc.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("PublicBooking: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}
	if !employee.IsActive || employee.BusinessID != business.ID {
		uc.logger.Warn("PublicBooking: employee id=%d not bookable for business id=%d", req.EmployeeID, business.ID)
		return nil, ErrEmployeeNotFound
	}

	client, err := uc.resolveClient(ctx, business.ID, req)
	if err != nil {
		return nil, err
	}

	endTime, err := req.StartTime.AddMinutes(service.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute end time: %v", ErrInvalidInput, err)
	}
	// AddMinutes wraps past midnight; appointments never cross days
	if !req.StartTime.IsBefore(endTime) {
		return nil, fmt.Errorf("%w: start time %s must be before end time %s",
			ErrInvalidInput, req.StartTime, endTime)
	}

	var result *domain.Appointment

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := uc.appointmentRepo.ListByEmployeeAndDate(txCtx, req.EmployeeID, req.Date)
		if err != nil {
			uc.logger.Error("PublicBooking: failed to list appointments: %v", err)
			return fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
		}

		if blocker := scheduling.FindConflict(req.StartTime, endTime, existing, 0); blocker != nil {
			uc.logger.Warn("PublicBooking: conflict with appointment id=%d (%s-%s)",
				blocker.ID, blocker.StartTime, blocker.EndTime)
			return fmt.Errorf("%w: el horario de %s ya no está disponible", ErrSlotConflict, req.StartTime)
		}

		appointment := &domain.Appointment{
			BusinessID: business.ID,
			ClientID:   client.ID,
			ServiceID:  req.ServiceID,
			EmployeeID: req.EmployeeID,
			Date:       req.Date,
			StartTime:  req.StartTime,
			EndTime:    endTime,
			Status:     domain.StatusPending,
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
				return fmt.Errorf("%w: el horario ya fue tomado", ErrSlotConflict)
			}
			uc.logger.Error("PublicBooking: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("PublicBooking: created appointment id=%d for client id=%d", result.ID, client.ID)

	uc.dispatcher.AppointmentCreated(result)

	return &Response{
		ID:           result.ID,
		BusinessID:   result.BusinessID,
		ClientID:     result.ClientID,
		Date:         result.Date,
		StartTime:    result.StartTime,
		EndTime:      result.EndTime,
		Status:       string(result.Status),
		ServiceName:  result.ServiceName,
		ServicePrice: result.ServicePrice,
		EmployeeName: result.EmployeeName,
		CreatedAt:    result.CreatedAt,
	}, nil
}

// resolveClient finds the client by email within the business, creating a
// new record on first booking
func (uc *UseCase) resolveClient(ctx context.Context, businessID int64, req *Request) (*domain.Client, error) {
	email := strings.ToLower(strings.TrimSpace(req.ClientEmail))

	client, err := uc.clientRepo.GetByEmail(ctx, businessID, email)
	if err == nil {
		return client, nil
	}
	if !errors.Is(err, clientRepo.ErrClientNotFound) {
		uc.logger.Error("PublicBooking: failed to look up client email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: failed to look up client: %v", ErrInternal, err)
	}

	firstName, lastName := splitName(req.ClientName)
	created, err := uc.clientRepo.Create(ctx, &domain.Client{
		BusinessID: businessID,
		FirstName:  firstName,
		LastName:   lastName,
		Email:      email,
		Phone:      req.ClientPhone,
		IsActive:   true,
	})
	if err != nil {
		uc.logger.Error("PublicBooking: failed to create client email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: failed to create client: %v", ErrInternal, err)
	}

	uc.logger.Info("PublicBooking: created client id=%d for business id=%d", created.ID, businessID)
	return created, nil
}
