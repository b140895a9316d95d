package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/devsign-cl/appointment-service/internal/domain"
	appointmentRepo "github.com/devsign-cl/appointment-service/internal/infra/storage/appointment"
	"github.com/devsign-cl/appointment-service/internal/service/appointments/models"
)

// Service handles the management surface: listings, the calendar view,
// cancellation and hard deletion
type Service struct {
	appointmentRepo AppointmentRepository
	dispatcher      Dispatcher
	timeProvider    TimeProvider
	logger          Logger
}

// NewService creates the appointments service
func NewService(appointmentRepo AppointmentRepository, dispatcher Dispatcher, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		dispatcher:      dispatcher,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID fetches a single appointment within the caller's scope
func (s *Service) GetByID(ctx context.Context, id int64, scope models.Scope) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appointment, err := s.fetchScoped(ctx, id, scope)
	if err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(appointment), nil
}

// List returns the appointments matching the filters within the caller's
// scope. The period shorthand (week, month) overrides the explicit range.
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.AppointmentListResponse, error) {
	if req.Period != nil {
		period := domain.Period(*req.Period)
		if !period.IsValid() {
			s.logger.Warn("List: invalid period=%s", *req.Period)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, models.ErrInvalidPeriod)
		}
		start, end := period.Range(s.timeProvider.Now())
		req.StartDate = &start
		req.EndDate = &end
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: bad filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	appointments, err := s.appointmentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d appointments", len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

// CalendarView returns the appointments shaped for the agenda widget
func (s *Service) CalendarView(ctx context.Context, req *models.CalendarRequest) (*models.CalendarResponse, error) {
	filter := domain.AppointmentsFilter{
		EmployeeID: req.EmployeeID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}
	if !req.Scope.Superuser {
		businessID := req.Scope.BusinessID
		filter.BusinessID = &businessID
	}

	appointments, err := s.appointmentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("CalendarView: repository error: %v", err)
		return nil, fmt.Errorf("%w: CalendarView - repository error: %v", ErrInternal, err)
	}

	events := make([]models.CalendarEvent, 0, len(appointments))
	for _, a := range appointments {
		events = append(events, models.ToCalendarEvent(a))
	}

	s.logger.Info("CalendarView: fetched %d events", len(events))
	return &models.CalendarResponse{Events: events}, nil
}

// Cancel moves the appointment to cancelled and notifies the pipeline.
// Completed and already cancelled appointments are rejected.
func (s *Service) Cancel(ctx context.Context, id int64, scope models.Scope) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d", id)

	appointment, err := s.fetchScoped(ctx, id, scope)
	if err != nil {
		return nil, err
	}

	if !appointment.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d in status %s cannot be cancelled", id, appointment.Status)
		return nil, fmt.Errorf("%w: status is %s", ErrCannotCancel, appointment.Status)
	}

	updated, err := s.appointmentRepo.UpdateStatus(ctx, id, domain.StatusCancelled)
	if err != nil {
		s.logger.Error("Cancel: failed to update status for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: appointment id=%d cancelled", id)

	s.dispatcher.AppointmentUpdated(appointment, updated)

	return models.FromDomainAppointment(updated), nil
}

// Delete removes the appointment row. The pipeline takes care of the
// external calendar event.
func (s *Service) Delete(ctx context.Context, id int64, scope models.Scope) error {
	s.logger.Info("Delete: deleting appointment id=%d", id)

	appointment, err := s.fetchScoped(ctx, id, scope)
	if err != nil {
		return err
	}

	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: failed to delete id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: appointment id=%d deleted", id)

	s.dispatcher.AppointmentDeleted(appointment)

	return nil
}

func (s *Service) fetchScoped(ctx context.Context, id int64, scope models.Scope) (*domain.Appointment, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	if !scope.Covers(appointment.BusinessID) {
		s.logger.Warn("scope business=%d denied for appointment id=%d of business=%d",
			scope.BusinessID, id, appointment.BusinessID)
		return nil, ErrAccessDenied
	}

	return appointment, nil
}
