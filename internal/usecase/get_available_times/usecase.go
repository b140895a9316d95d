package get_available_times

import (
	"context"
	"fmt"

	"github.com/devsign-cl/appointment-service/internal/domain"
	"github.com/devsign-cl/appointment-service/internal/scheduling"
	"github.com/devsign-cl/appointment-service/pkg/types"
)

// SlotsConfig is the business booking window
type SlotsConfig struct {
	OpenTime           types.TimeString
	CloseTime          types.TimeString
	GranularityMinutes int
}

// UseCase computes the free slot starts for one date. A slot is free when
// no pending or confirmed appointment starts at that time.
type UseCase struct {
	appointmentRepo AppointmentRepository
	config          SlotsConfig
	logger          Logger
}

// NewUseCase creates the use case
func NewUseCase(appointmentRepo AppointmentRepository, config SlotsConfig, logger Logger) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		config:          config,
		logger:          logger,
	}
}

// Execute returns the available slot starts as ordered HH:MM strings
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.EmployeeID != nil && *req.EmployeeID <= 0 {
		return nil, fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	slots, err := scheduling.ComputeSlots(uc.config.OpenTime, uc.config.CloseTime, uc.config.GranularityMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to compute slots: %v", err)
		return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
	}

	appointments, err := uc.appointmentRepo.ListByBusinessAndDate(ctx, req.BusinessID, req.Date, req.EmployeeID)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	// Only the start times of blocking appointments remove slots
	taken := make(map[types.TimeString]bool, len(appointments))
	for _, a := range appointments {
		if a.BlocksSlot() {
			taken[a.StartTime] = true
		}
	}

	available := make([]string, 0, len(slots))
	for _, slot := range slots {
		if !taken[slot] {
			available = append(available, slot.String())
		}
	}

	uc.logger.Info("GetAvailableTimes: business=%d date=%s -> %d/%d slots free",
		req.BusinessID, req.Date.Format(domain.DateFormat), len(available), len(slots))

	return &Response{
		Date:           req.Date.Format(domain.DateFormat),
		AvailableTimes: available,
	}, nil
}
