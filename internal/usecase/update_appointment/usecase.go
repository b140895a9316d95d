package update_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/devsign-cl/appointment-service/internal/domain"
	appointmentRepo "github.com/devsign-cl/appointment-service/internal/infra/storage/appointment"
	employeeRepo "github.com/devsign-cl/appointment-service/internal/infra/storage/employee"
	serviceRepo "github.com/devsign-cl/appointment-service/internal/infra/storage/service"
	"github.com/devsign-cl/appointment-service/internal/scheduling"
)

// UseCase applies a partial update to an appointment. Completed
// appointments reject every edit; rescheduling re-runs the conflict check
// excluding the appointment itself.
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	employeeRepo    EmployeeRepository
	txManager       TransactionManager
	dispatcher      Dispatcher
	logger          Logger
}

// NewUseCase creates the use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	employeeRepo EmployeeRepository,
	txManager TransactionManager,
	dispatcher Dispatcher,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		employeeRepo:    employeeRepo,
		txManager:       txManager,
		dispatcher:      dispatcher,
		logger:          logger,
	}
}

// Execute applies the update and hands (old, new) to the dispatcher
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointment: id=%d", req.AppointmentID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}

	old, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("UpdateAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("UpdateAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	if req.BusinessID != 0 && old.BusinessID != req.BusinessID {
		uc.logger.Warn("UpdateAppointment: appointment id=%d belongs to business id=%d, caller scope=%d",
			req.AppointmentID, old.BusinessID, req.BusinessID)
		return nil, ErrWrongBusiness
	}

	if old.IsCompleted() {
		if req.Status != nil {
			uc.logger.Warn("UpdateAppointment: id=%d is completed, status change rejected", req.AppointmentID)
			return nil, ErrTerminalStatus
		}
		uc.logger.Warn("UpdateAppointment: id=%d is completed, edit rejected", req.AppointmentID)
		return nil, ErrAppointmentCompleted
	}

	updated, err := uc.applyChanges(ctx, old, req)
	if err != nil {
		return nil, err
	}

	if !updated.StartTime.IsBefore(updated.EndTime) {
		return nil, fmt.Errorf("%w: start time %s must be before end time %s",
			ErrInvalidInput, updated.StartTime, updated.EndTime)
	}

	rescheduled := updated.EmployeeID != old.EmployeeID ||
		!updated.Date.Equal(old.Date) ||
		updated.StartTime != old.StartTime ||
		updated.EndTime != old.EndTime

	var result *domain.Appointment

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if rescheduled && updated.BlocksSlot() {
			existing, err := uc.appointmentRepo.ListByEmployeeAndDate(txCtx, updated.EmployeeID, updated.Date)
			if err != nil {
				uc.logger.Error("UpdateAppointment: failed to list appointments: %v", err)
				return fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
			}

			if blocker := scheduling.FindConflict(updated.StartTime, updated.EndTime, existing, updated.ID); blocker != nil {
				uc.logger.Warn("UpdateAppointment: conflict with appointment id=%d (%s-%s)",
					blocker.ID, blocker.StartTime, blocker.EndTime)
				return fmt.Errorf("%w: %s ya tiene una cita de %s a %s", ErrSlotConflict,
					blocker.EmployeeName, blocker.StartTime, blocker.EndTime)
			}
		}

		saved, err := uc.appointmentRepo.Update(txCtx, updated)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrDuplicateSlot) {
				return fmt.Errorf("%w: el horario ya fue tomado", ErrSlotConflict)
			}
			uc.logger.Error("UpdateAppointment: failed to update appointment id=%d: %v", updated.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		result = saved
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateAppointment: updated appointment id=%d (status %s -> %s)",
		result.ID, old.Status, result.Status)

	uc.dispatcher.AppointmentUpdated(old, result)

	return toResponse(result), nil
}

// applyChanges builds the post-image from the pre-image and the request
func (uc *UseCase) applyChanges(ctx context.Context, old *domain.Appointment, req *Request) (*domain.Appointment, error) {
	updated := *old
	explicitEnd := req.EndTime != nil
	recomputeEnd := false

	if req.ServiceID != nil && *req.ServiceID != old.ServiceID {
		service, err := uc.serviceRepo.GetByID(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		if !service.IsActive {
			return nil, ErrServiceNotFound
		}
		if service.BusinessID != old.BusinessID {
			return nil, ErrWrongBusiness
		}

		updated.ServiceID = service.ID
		updated.ServiceName = service.Name
		updated.ServicePrice = service.Price
		updated.ServiceDurationMinutes = service.DurationMinutes
		recomputeEnd = true
	}

	if req.EmployeeID != nil && *req.EmployeeID != old.EmployeeID {
		employee, err := uc.employeeRepo.GetByID(ctx, *req.EmployeeID)
		if err != nil {
			if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
				return nil, ErrEmployeeNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to get employee id=%d: %v", *req.EmployeeID, err)
			return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
		}
		if !employee.IsActive {
			return nil, ErrEmployeeNotFound
		}
		if employee.BusinessID != old.BusinessID {
			return nil, ErrWrongBusiness
		}

		updated.EmployeeID = employee.ID
		updated.EmployeeName = employee.FullName()
	}

	if req.Date != nil {
		updated.Date = *req.Date
	}

	if req.StartTime != nil && *req.StartTime != old.StartTime {
		updated.StartTime = *req.StartTime
		recomputeEnd = true
	}

	if explicitEnd {
		updated.EndTime = *req.EndTime
	} else if recomputeEnd {
		// End follows the service duration unless the caller pins it
		endTime, err := updated.StartTime.AddMinutes(updated.ServiceDurationMinutes)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to compute end time: %v", ErrInvalidInput, err)
		}
		updated.EndTime = endTime
	}

	if req.Status != nil {
		newStatus := domain.AppointmentStatus(*req.Status)
		if newStatus != old.Status {
			if !old.CanTransitionTo(newStatus) {
				uc.logger.Warn("UpdateAppointment: id=%d transition %s -> %s rejected",
					old.ID, old.Status, newStatus)
				return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, old.Status, newStatus)
			}
			updated.Status = newStatus
		}
	}

	if req.Notes != nil {
		updated.Notes = req.Notes
	}

	return &updated, nil
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

		UpdatedAt: a.UpdatedAt,
	}
}
