package update_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devsign-cl/appointment-service/internal/domain"
	appointmentRepo "github.com/devsign-cl/appointment-service/internal/infra/storage/appointment"
	"github.com/devsign-cl/appointment-service/pkg/ptr"
	"github.com/devsign-cl/appointment-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeAppointmentRepo struct {
	stored    *domain.Appointment
	existing  []*domain.Appointment
	updateErr error
	listCalls int
	updated   *domain.Appointment
}

func (f *fakeAppointmentRepo) GetByID(context.Context, int64) (*domain.Appointment, error) {
	if f.stored == nil {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *f.stored
	return &copied, nil
}

func (f *fakeAppointmentRepo) Update(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updated = a
	return a, nil
}

func (f *fakeAppointmentRepo) ListByEmployeeAndDate(context.Context, int64, time.Time) ([]*domain.Appointment, error) {
	f.listCalls++
	return f.existing, nil
}

type fakeServiceRepo struct{ service *domain.Service }

func (f *fakeServiceRepo) GetByID(context.Context, int64) (*domain.Service, error) {
	return f.service, nil
}

type fakeEmployeeRepo struct{ employee *domain.Employee }

func (f *fakeEmployeeRepo) GetByID(context.Context, int64) (*domain.Employee, error) {
	return f.employee, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type dispatchedUpdate struct{ old, updated *domain.Appointment }

type fakeDispatcher struct{ updates []dispatchedUpdate }

func (f *fakeDispatcher) AppointmentUpdated(old, updated *domain.Appointment) {
	f.updates = append(f.updates, dispatchedUpdate{old: old, updated: updated})
}

func storedAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:         10,
		BusinessID: 1,
		ClientID:   3,
		ServiceID:  1,
		EmployeeID: 2,
		Date:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:  "10:00",
		EndTime:    "11:00",
		Status:     domain.StatusPending,

		ServiceName:            "Corte de pelo",
		ServicePrice:           15000,
		ServiceDurationMinutes: 60,
		ClientName:             "Pedro Soto",
		EmployeeName:           "Ana Rojas",
	}
}

func newFixture() (*UseCase, *fakeAppointmentRepo, *fakeDispatcher) {
	appointments := &fakeAppointmentRepo{stored: storedAppointment()}
	dispatcher := &fakeDispatcher{}

	uc := NewUseCase(
		appointments,
		&fakeServiceRepo{service: &domain.Service{
			ID: 9, BusinessID: 1, Name: "Manicure", Price: 8000, DurationMinutes: 30, IsActive: true,
		}},
		&fakeEmployeeRepo{employee: &domain.Employee{
			ID: 4, BusinessID: 1, FirstName: "Laura", LastName: "Pinto", IsActive: true,
		}},
		fakeTxManager{},
		dispatcher,
		nopLogger{},
	)

	return uc, appointments, dispatcher
}

func TestExecuteStatusChange(t *testing.T) {
	uc, _, dispatcher := newFixture()

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		BusinessID:    1,
		Status:        ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)

	require.Len(t, dispatcher.updates, 1)
	assert.Equal(t, domain.StatusPending, dispatcher.updates[0].old.Status)
	assert.Equal(t, domain.StatusConfirmed, dispatcher.updates[0].updated.Status)
}

func TestExecuteCompletedRejectsEdit(t *testing.T) {
	uc, appointments, dispatcher := newFixture()
	appointments.stored.Status = domain.StatusCompleted

	notes := "nuevo detalle"
	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		BusinessID:    1,
		Notes:         &notes,
	})

	assert.ErrorIs(t, err, ErrAppointmentCompleted)
	assert.Empty(t, dispatcher.updates)
}

func TestExecuteCompletedRejectsStatusChangeDistinctly(t *testing.T) {
	uc, appointments, _ := newFixture()
	appointments.stored.Status = domain.StatusCompleted

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		BusinessID:    1,
		Status:        ptr.Ptr("pending"),
	})

	// status changes on a completed appointment get their own error
	assert.ErrorIs(t, err, ErrTerminalStatus)
	assert.NotErrorIs(t, err, ErrAppointmentCompleted)
}

func TestExecuteCompletedRejectsMixedEditWithStatus(t *testing.T) {
	uc, appointments, dispatcher := newFixture()
	appointments.stored.Status = domain.StatusCompleted

	notes := "nuevo detalle"
	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		BusinessID:    1,
		Status:        ptr.Ptr("pending"),
		Notes:         &notes,
	})

	// any request carrying a status hits the terminal-state error, even
	// when other fields change alongside it
	assert.ErrorIs(t, err, ErrTerminalStatus)
	assert.NotErrorIs(t, err, ErrAppointmentCompleted)
	assert.Empty(t, dispatcher.updates)
}

func TestExecuteInvalidTransition(t *testing.T) {
	uc, appointments, _ := newFixture()
	appointments.stored.Status = domain.StatusCancelled

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		BusinessID:    1,
		Status:        ptr.Ptr("completed"),
	})

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecuteServiceChangeRecomputesEnd(t *testing.T) {
	uc, appointments, _ := newFixture()

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		BusinessID:    1,
		ServiceID:     ptr.Ptr(int64(9)),
	})
	require.NoError(t, err)

	assert.Equal(t, "Manicure", resp.ServiceName)
	assert.Equal(t, float64(8000), resp.ServicePrice)
	assert.Equal(t, 30, resp.ServiceDurationMinutes)
	// 10:00 + 30min from the new service
	assert.Equal(t, types.TimeString("10:30"), resp.EndTime)
	require.NotNil(t, appointments.updated)
}

func TestExecuteStartChangeRecomputesEnd(t *testing.T) {
	uc, _, _ := newFixture()

	start := types.TimeString("14:00")
	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		BusinessID:    1,
		StartTime:     &start,
	})
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("14:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("15:00"), resp.EndTime)
}

func TestExecuteExplicitEndWins(t *testing.T) {
	uc, _, _ := newFixture()

	start := types.TimeString("14:00")
	end := types.TimeString("14:45")
	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		BusinessID:    1,
		StartTime:     &start,
		EndTime:       &end,
	})
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("14:45"), resp.EndTime)
}

func TestExecuteNotesOnlySkipsConflictCheck(t *testing.T) {
	uc, appointments, _ := newFixture()

	notes := "llega 5 minutos tarde"
	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		BusinessID:    1,
		Notes:         &notes,
	})
	require.NoError(t, err)

	assert.Zero(t, appointments.listCalls)
}

func TestExecuteRescheduleConflict(t *testing.T) {
	uc, appointments, dispatcher := newFixture()
	appointments.existing = []*domain.Appointment{{
		ID:           99,
		EmployeeID:   2,
		StartTime:    "14:00",
		EndTime:      "15:00",
		Status:       domain.StatusConfirmed,
		EmployeeName: "Ana Rojas",
	}}

	start := types.TimeString("14:30")
	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		BusinessID:    1,
		StartTime:     &start,
	})

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Empty(t, dispatcher.updates)
}

func TestExecuteRescheduleIgnoresOwnSlot(t *testing.T) {
	uc, appointments, _ := newFixture()
	// the appointment's own row comes back from the day listing
	appointments.existing = []*domain.Appointment{appointments.stored}

	start := types.TimeString("10:30")
	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		BusinessID:    1,
		StartTime:     &start,
	})

	assert.NoError(t, err)
}

func TestExecuteMapsDuplicateSlotToConflict(t *testing.T) {
	uc, appointments, _ := newFixture()
	appointments.updateErr = appointmentRepo.ErrDuplicateSlot

	start := types.TimeString("16:00")
	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		BusinessID:    1,
		StartTime:     &start,
	})

	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecuteScopeDenied(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		BusinessID:    2,
		Status:        ptr.Ptr("confirmed"),
	})

	assert.ErrorIs(t, err, ErrWrongBusiness)
}

func TestExecuteSuperuserSkipsScope(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		BusinessID:    0, // superuser scope
		Status:        ptr.Ptr("confirmed"),
	})

	assert.NoError(t, err)
}

func TestExecuteNotFound(t *testing.T) {
	uc, appointments, _ := newFixture()
	appointments.stored = nil

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		BusinessID:    1,
		Status:        ptr.Ptr("confirmed"),
	})

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecuteStartMustPrecedeEnd(t *testing.T) {
	uc, _, _ := newFixture()

	end := types.TimeString("09:00")
	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		BusinessID:    1,
		EndTime:       &end,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
