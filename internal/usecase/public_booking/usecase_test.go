package public_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devsign-cl/appointment-service/internal/domain"
	businessRepo "github.com/devsign-cl/appointment-service/internal/infra/storage/business"
	clientRepo "github.com/devsign-cl/appointment-service/internal/infra/storage/client"
	"github.com/devsign-cl/appointment-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeAppointmentRepo struct {
	existing []*domain.Appointment
	created  *domain.Appointment
}

func (f *fakeAppointmentRepo) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	a.ID = 200
	f.created = a
	return a, nil
}

func (f *fakeAppointmentRepo) ListByEmployeeAndDate(context.Context, int64, time.Time) ([]*domain.Appointment, error) {
	return f.existing, nil
}

type fakeBusinessRepo struct{ business *domain.Business }

func (f *fakeBusinessRepo) GetBySlug(_ context.Context, slug string) (*domain.Business, error) {
	if f.business == nil || f.business.Slug != slug {
		return nil, businessRepo.ErrBusinessNotFound
	}
	return f.business, nil
}

type fakeServiceRepo struct{ service *domain.Service }

func (f *fakeServiceRepo) GetByID(context.Context, int64) (*domain.Service, error) {
	return f.service, nil
}

type fakeEmployeeRepo struct{ employee *domain.Employee }

func (f *fakeEmployeeRepo) GetByID(context.Context, int64) (*domain.Employee, error) {
	return f.employee, nil
}

type fakeClientRepo struct {
	byEmail      map[string]*domain.Client
	created      *domain.Client
	lookupEmails []string
}

func (f *fakeClientRepo) GetByEmail(_ context.Context, _ int64, email string) (*domain.Client, error) {
	f.lookupEmails = append(f.lookupEmails, email)
	if client, ok := f.byEmail[email]; ok {
		return client, nil
	}
	return nil, clientRepo.ErrClientNotFound
}

func (f *fakeClientRepo) Create(_ context.Context, c *domain.Client) (*domain.Client, error) {
	c.ID = 301
	f.created = c
	return c, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeDispatcher struct{ created []*domain.Appointment }

func (f *fakeDispatcher) AppointmentCreated(a *domain.Appointment) {
	f.created = append(f.created, a)
}

func newFixture() (*UseCase, *fakeClientRepo, *fakeDispatcher) {
	clients := &fakeClientRepo{byEmail: map[string]*domain.Client{}}
	dispatcher := &fakeDispatcher{}

	uc := NewUseCase(
		&fakeAppointmentRepo{},
		&fakeBusinessRepo{business: &domain.Business{ID: 1, Name: "Estudio Central", Slug: "estudio-central"}},
		&fakeServiceRepo{service: &domain.Service{
			ID: 1, BusinessID: 1, Name: "Corte de pelo", Price: 15000, DurationMinutes: 45, IsActive: true,
		}},
		&fakeEmployeeRepo{employee: &domain.Employee{
			ID: 2, BusinessID: 1, FirstName: "Ana", LastName: "Rojas", IsActive: true,
		}},
		clients,
		fakeTxManager{},
		dispatcher,
		nopLogger{},
	)
	uc.timeProvider = fixedTime{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}

	return uc, clients, dispatcher
}

func validRequest() *Request {
	return &Request{
		BusinessSlug: "estudio-central",
		ClientName:   "María José Díaz",
		ClientEmail:  "Maria.Diaz@Example.com ",
		ServiceID:    1,
		EmployeeID:   2,
		Date:         time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:    "10:00",
	}
}

func TestExecuteCreatesClientOnFirstBooking(t *testing.T) {
	uc, clients, dispatcher := newFixture()

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(200), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, types.TimeString("10:45"), resp.EndTime)

	require.NotNil(t, clients.created)
	// email lookup is lowercased and trimmed
	assert.Equal(t, []string{"maria.diaz@example.com"}, clients.lookupEmails)
	assert.Equal(t, "maria.diaz@example.com", clients.created.Email)
	// free-form name splits on the first space
	assert.Equal(t, "María", clients.created.FirstName)
	assert.Equal(t, "José Díaz", clients.created.LastName)
	assert.True(t, clients.created.IsActive)

	require.Len(t, dispatcher.created, 1)
}

func TestExecuteReusesExistingClient(t *testing.T) {
	uc, clients, _ := newFixture()
	clients.byEmail["maria.diaz@example.com"] = &domain.Client{
		ID: 77, BusinessID: 1, FirstName: "María", LastName: "Díaz", Email: "maria.diaz@example.com",
	}

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(77), resp.ClientID)
	assert.Nil(t, clients.created)
}

func TestExecuteSingleWordName(t *testing.T) {
	uc, clients, _ := newFixture()

	req := validRequest()
	req.ClientName = "Madonna"

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Madonna", clients.created.FirstName)
	assert.Empty(t, clients.created.LastName)
}

func TestExecuteUnknownSlug(t *testing.T) {
	uc, _, _ := newFixture()

	req := validRequest()
	req.BusinessSlug = "otro-negocio"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestExecuteAlwaysStartsPending(t *testing.T) {
	uc, _, dispatcher := newFixture()

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, domain.StatusPending, dispatcher.created[0].Status)
}

func TestExecuteSlotConflict(t *testing.T) {
	uc, _, dispatcher := newFixture()
	uc.appointmentRepo = &fakeAppointmentRepo{existing: []*domain.Appointment{{
		ID: 9, EmployeeID: 2, StartTime: "10:00", EndTime: "11:00", Status: domain.StatusConfirmed,
	}}}

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Empty(t, dispatcher.created)
}

func TestExecuteRejectsMidnightWrap(t *testing.T) {
	uc, _, dispatcher := newFixture()

	// 23:30 + 60min wraps to 00:30, which would invert the interval
	req := validRequest()
	req.StartTime = "23:30"

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, dispatcher.created)
}

func TestExecuteValidation(t *testing.T) {
	uc, _, _ := newFixture()

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"empty slug", func(r *Request) { r.BusinessSlug = " " }},
		{"empty name", func(r *Request) { r.ClientName = "" }},
		{"email without at sign", func(r *Request) { r.ClientEmail = "maria.example.com" }},
		{"zero service", func(r *Request) { r.ServiceID = 0 }},
		{"zero employee", func(r *Request) { r.EmployeeID = 0 }},
		{"empty start time", func(r *Request) { r.StartTime = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		full  string
		first string
		last  string
	}{
		{"Pedro Soto", "Pedro", "Soto"},
		{"María José Díaz", "María", "José Díaz"},
		{"Madonna", "Madonna", ""},
		{"  Pedro   ", "Pedro", ""},
	}

	for _, tt := range tests {
		first, last := splitName(tt.full)
		assert.Equal(t, tt.first, first, "splitName(%q)", tt.full)
		assert.Equal(t, tt.last, last, "splitName(%q)", tt.full)
	}
}
