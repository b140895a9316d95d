package employee_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devsign-cl/appointment-service/internal/domain"
	"github.com/devsign-cl/appointment-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeAppointmentRepo struct{ appointments []*domain.Appointment }

func (f *fakeAppointmentRepo) ListByBusinessAndDate(context.Context, int64, time.Time, *int64) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

type fakeServiceRepo struct{ service *domain.Service }

func (f *fakeServiceRepo) GetByID(context.Context, int64) (*domain.Service, error) {
	return f.service, nil
}

type fakeEmployeeRepo struct{ employees []*domain.Employee }

func (f *fakeEmployeeRepo) ListByBusiness(context.Context, int64, bool) ([]*domain.Employee, error) {
	return f.employees, nil
}

func newFixture(appointments []*domain.Appointment) *UseCase {
	return NewUseCase(
		&fakeAppointmentRepo{appointments: appointments},
		&fakeServiceRepo{service: &domain.Service{
			ID: 1, BusinessID: 1, Name: "Corte de pelo", DurationMinutes: 60, IsActive: true,
		}},
		&fakeEmployeeRepo{employees: []*domain.Employee{
			{ID: 1, FirstName: "Ana", LastName: "Rojas"},
			{ID: 2, FirstName: "Laura", LastName: "Pinto"},
		}},
		nopLogger{},
	)
}

func validRequest() *Request {
	return &Request{
		BusinessID: 1,
		ServiceID:  1,
		Date:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:  "10:00",
	}
}

func TestExecuteAllEmployeesFree(t *testing.T) {
	uc := newFixture(nil)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "2026-03-10", resp.Date)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	// window end derives from the service duration
	assert.Equal(t, types.TimeString("11:00"), resp.EndTime)

	require.Len(t, resp.Employees, 2)
	assert.Equal(t, "Ana Rojas", resp.Employees[0].Name)
}

func TestExecuteFiltersBusyEmployees(t *testing.T) {
	uc := newFixture([]*domain.Appointment{
		{EmployeeID: 1, StartTime: "10:30", EndTime: "11:30", Status: domain.StatusConfirmed},
	})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, resp.Employees, 1)
	assert.Equal(t, int64(2), resp.Employees[0].ID)
}

func TestExecuteCancelledDoesNotBlock(t *testing.T) {
	uc := newFixture([]*domain.Appointment{
		{EmployeeID: 1, StartTime: "10:00", EndTime: "11:00", Status: domain.StatusCancelled},
	})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Len(t, resp.Employees, 2)
}

func TestExecuteBackToBackEmployeeIsFree(t *testing.T) {
	uc := newFixture([]*domain.Appointment{
		{EmployeeID: 1, StartTime: "09:00", EndTime: "10:00", Status: domain.StatusConfirmed},
		{EmployeeID: 1, StartTime: "11:00", EndTime: "12:00", Status: domain.StatusPending},
	})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Len(t, resp.Employees, 2)
}

func TestExecuteWrongBusinessService(t *testing.T) {
	uc := newFixture(nil)
	uc.serviceRepo = &fakeServiceRepo{service: &domain.Service{
		ID: 1, BusinessID: 2, DurationMinutes: 60, IsActive: true,
	}}

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrWrongBusiness)
}

func TestExecuteInactiveService(t *testing.T) {
	uc := newFixture(nil)
	uc.serviceRepo = &fakeServiceRepo{service: &domain.Service{
		ID: 1, BusinessID: 1, DurationMinutes: 60, IsActive: false,
	}}

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecuteValidation(t *testing.T) {
	uc := newFixture(nil)

	req := validRequest()
	req.StartTime = "25:00"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.ServiceID = 0
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
