package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devsign-cl/appointment-service/internal/domain"
	appointmentRepo "github.com/devsign-cl/appointment-service/internal/infra/storage/appointment"
	"github.com/devsign-cl/appointment-service/internal/service/appointments/models"
	"github.com/devsign-cl/appointment-service/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeRepo struct {
	stored     *domain.Appointment
	listed     []*domain.Appointment
	lastFilter domain.AppointmentsFilter
	deleted    []int64
}

func (f *fakeRepo) GetByID(context.Context, int64) (*domain.Appointment, error) {
	if f.stored == nil {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *f.stored
	return &copied, nil
}

func (f *fakeRepo) ListWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	f.lastFilter = filter
	return f.listed, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, _ int64, status domain.AppointmentStatus) (*domain.Appointment, error) {
	updated := *f.stored
	updated.Status = status
	return &updated, nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type dispatched struct{ old, updated *domain.Appointment }

type fakeDispatcher struct {
	updates   []dispatched
	deletions []*domain.Appointment
}

func (f *fakeDispatcher) AppointmentUpdated(old, updated *domain.Appointment) {
	f.updates = append(f.updates, dispatched{old: old, updated: updated})
}

func (f *fakeDispatcher) AppointmentDeleted(a *domain.Appointment) {
	f.deletions = append(f.deletions, a)
}

func storedAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:           10,
		BusinessID:   1,
		Date:         time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:    "10:00",
		EndTime:      "11:00",
		Status:       domain.StatusConfirmed,
		ClientName:   "Pedro Soto",
		ServiceName:  "Corte de pelo",
		EmployeeName: "Ana Rojas",
	}
}

func newFixture() (*Service, *fakeRepo, *fakeDispatcher) {
	repo := &fakeRepo{stored: storedAppointment()}
	dispatcher := &fakeDispatcher{}
	svc := NewService(repo, dispatcher, nopLogger{})
	svc.timeProvider = fixedTime{now: time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)}
	return svc, repo, dispatcher
}

func ownScope() models.Scope { return models.Scope{BusinessID: 1} }

func TestGetByID(t *testing.T) {
	svc, _, _ := newFixture()

	resp, err := svc.GetByID(context.Background(), 10, ownScope())
	require.NoError(t, err)

	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "2026-03-10", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
}

func TestGetByIDScopeDenied(t *testing.T) {
	svc, _, _ := newFixture()

	_, err := svc.GetByID(context.Background(), 10, models.Scope{BusinessID: 2})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByIDSuperuserCrossesBusinesses(t *testing.T) {
	svc, _, _ := newFixture()

	_, err := svc.GetByID(context.Background(), 10, models.Scope{Superuser: true})
	assert.NoError(t, err)
}

func TestGetByIDNotFound(t *testing.T) {
	svc, repo, _ := newFixture()
	repo.stored = nil

	_, err := svc.GetByID(context.Background(), 10, ownScope())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestListPinsBusinessForRegularCaller(t *testing.T) {
	svc, repo, _ := newFixture()

	_, err := svc.List(context.Background(), &models.ListRequest{Scope: ownScope()})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter.BusinessID)
	assert.Equal(t, int64(1), *repo.lastFilter.BusinessID)
}

func TestListSuperuserSeesAllBusinesses(t *testing.T) {
	svc, repo, _ := newFixture()

	_, err := svc.List(context.Background(), &models.ListRequest{Scope: models.Scope{Superuser: true}})
	require.NoError(t, err)

	assert.Nil(t, repo.lastFilter.BusinessID)
}

func TestListPeriodWeekResolvesRange(t *testing.T) {
	svc, repo, _ := newFixture()

	// now is Wednesday 2026-03-18
	_, err := svc.List(context.Background(), &models.ListRequest{
		Scope:  ownScope(),
		Period: ptr.Ptr("week"),
	})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter.StartDate)
	require.NotNil(t, repo.lastFilter.EndDate)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), *repo.lastFilter.StartDate)
	assert.Equal(t, time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC), *repo.lastFilter.EndDate)
}

func TestListPeriodOverridesExplicitRange(t *testing.T) {
	svc, repo, _ := newFixture()

	explicit := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.List(context.Background(), &models.ListRequest{
		Scope:     ownScope(),
		Period:    ptr.Ptr("month"),
		StartDate: &explicit,
		EndDate:   &explicit,
	})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *repo.lastFilter.StartDate)
	assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), *repo.lastFilter.EndDate)
}

func TestListRejectsUnknownPeriod(t *testing.T) {
	svc, _, _ := newFixture()

	_, err := svc.List(context.Background(), &models.ListRequest{
		Scope:  ownScope(),
		Period: ptr.Ptr("year"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListRejectsUnknownStatus(t *testing.T) {
	svc, _, _ := newFixture()

	_, err := svc.List(context.Background(), &models.ListRequest{
		Scope:  ownScope(),
		Status: ptr.Ptr("archived"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCalendarViewShapesEvents(t *testing.T) {
	svc, repo, _ := newFixture()
	repo.listed = []*domain.Appointment{storedAppointment()}

	resp, err := svc.CalendarView(context.Background(), &models.CalendarRequest{Scope: ownScope()})
	require.NoError(t, err)

	require.Len(t, resp.Events, 1)
	event := resp.Events[0]
	assert.Equal(t, "Pedro Soto - Corte de pelo", event.Title)
	assert.Equal(t, "2026-03-10T10:00", event.Start)
	assert.Equal(t, "2026-03-10T11:00", event.End)
	assert.Equal(t, "#10b981", event.Color)
}

func TestCancel(t *testing.T) {
	svc, _, dispatcher := newFixture()

	resp, err := svc.Cancel(context.Background(), 10, ownScope())
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	require.Len(t, dispatcher.updates, 1)
	assert.Equal(t, domain.StatusConfirmed, dispatcher.updates[0].old.Status)
	assert.Equal(t, domain.StatusCancelled, dispatcher.updates[0].updated.Status)
}

func TestCancelRejectsCompleted(t *testing.T) {
	svc, repo, dispatcher := newFixture()
	repo.stored.Status = domain.StatusCompleted

	_, err := svc.Cancel(context.Background(), 10, ownScope())

	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Empty(t, dispatcher.updates)
}

func TestCancelRejectsAlreadyCancelled(t *testing.T) {
	svc, repo, _ := newFixture()
	repo.stored.Status = domain.StatusCancelled

	_, err := svc.Cancel(context.Background(), 10, ownScope())
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestDelete(t *testing.T) {
	svc, repo, dispatcher := newFixture()

	err := svc.Delete(context.Background(), 10, ownScope())
	require.NoError(t, err)

	assert.Equal(t, []int64{10}, repo.deleted)
	require.Len(t, dispatcher.deletions, 1)
	assert.Equal(t, int64(10), dispatcher.deletions[0].ID)
}

func TestDeleteScopeDenied(t *testing.T) {
	svc, repo, dispatcher := newFixture()

	err := svc.Delete(context.Background(), 10, models.Scope{BusinessID: 9})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.deleted)
	assert.Empty(t, dispatcher.deletions)
}

func TestInvalidID(t *testing.T) {
	svc, _, _ := newFixture()

	_, err := svc.GetByID(context.Background(), 0, ownScope())
	assert.ErrorIs(t, err, ErrInvalidInput)
}
