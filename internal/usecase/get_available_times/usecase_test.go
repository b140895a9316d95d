package get_available_times

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devsign-cl/appointment-service/internal/domain"
	"github.com/devsign-cl/appointment-service/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	employeeID   *int64
}

func (f *fakeAppointmentRepo) ListByBusinessAndDate(_ context.Context, _ int64, _ time.Time, employeeID *int64) ([]*domain.Appointment, error) {
	f.employeeID = employeeID
	return f.appointments, nil
}

func newFixture(appointments []*domain.Appointment) (*UseCase, *fakeAppointmentRepo) {
	repo := &fakeAppointmentRepo{appointments: appointments}
	uc := NewUseCase(repo, SlotsConfig{
		OpenTime:           "09:00",
		CloseTime:          "11:00",
		GranularityMinutes: 30,
	}, nopLogger{})
	return uc, repo
}

func TestExecuteAllSlotsFree(t *testing.T) {
	uc, _ := newFixture(nil)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1,
		Date:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-10", resp.Date)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, resp.AvailableTimes)
}

func TestExecuteRemovesTakenStarts(t *testing.T) {
	uc, _ := newFixture([]*domain.Appointment{
		{StartTime: "09:30", EndTime: "10:00", Status: domain.StatusConfirmed},
		{StartTime: "10:30", EndTime: "11:00", Status: domain.StatusPending},
	})

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1,
		Date:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "10:00"}, resp.AvailableTimes)
}

func TestExecuteCancelledSlotStaysFree(t *testing.T) {
	uc, _ := newFixture([]*domain.Appointment{
		{StartTime: "09:00", EndTime: "09:30", Status: domain.StatusCancelled},
		{StartTime: "09:30", EndTime: "10:00", Status: domain.StatusCompleted},
	})

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1,
		Date:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, resp.AvailableTimes)
}

func TestExecutePassesEmployeeFilter(t *testing.T) {
	uc, repo := newFixture(nil)

	_, err := uc.Execute(context.Background(), &Request{
		BusinessID: 1,
		Date:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		EmployeeID: ptr.Ptr(int64(7)),
	})
	require.NoError(t, err)

	require.NotNil(t, repo.employeeID)
	assert.Equal(t, int64(7), *repo.employeeID)
}

func TestExecuteValidation(t *testing.T) {
	uc, _ := newFixture(nil)

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 0, Date: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BusinessID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		BusinessID: 1,
		Date:       time.Now(),
		EmployeeID: ptr.Ptr(int64(0)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
