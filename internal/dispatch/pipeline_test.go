package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devsign-cl/appointment-service/internal/domain"
	"github.com/devsign-cl/appointment-service/internal/integrations/googlecalendar"
	"github.com/devsign-cl/appointment-service/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeMetrics struct {
	mu       sync.Mutex
	tasks    map[string]int
	branches map[string]int
	dropped  int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{tasks: map[string]int{}, branches: map[string]int{}}
}

func (m *fakeMetrics) IncDispatchTask(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[kind]++
}

func (m *fakeMetrics) IncDispatchBranch(branch, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.branches[branch+"/"+outcome]++
}

func (m *fakeMetrics) IncDispatchDropped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropped++
}

func (m *fakeMetrics) SetDispatchQueueDepth(int) {}

func (m *fakeMetrics) branchCount(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.branches[key]
}

type fakeCalendar struct {
	mu            sync.Mutex
	createdFor    []string
	inserted      []string
	updated       []string
	deleted       []string
	createErr     error
	insertPanics  bool
	nextEventID   string
	createCounter int
}

func (f *fakeCalendar) CreateEmployeeCalendar(_ context.Context, name, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	f.createCounter++
	f.createdFor = append(f.createdFor, name)
	return "cal-new", nil
}

func (f *fakeCalendar) InsertEvent(_ context.Context, calendarID string, _ *domain.Appointment) (*googlecalendar.Event, error) {
	if f.insertPanics {
		panic("calendar exploded")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserted = append(f.inserted, calendarID)
	eventID := f.nextEventID
	if eventID == "" {
		eventID = "evt-1"
	}
	return &googlecalendar.Event{ID: eventID}, nil
}

func (f *fakeCalendar) UpdateEvent(_ context.Context, calendarID, eventID string, _ *domain.Appointment) (*googlecalendar.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, calendarID+"/"+eventID)
	return &googlecalendar.Event{ID: eventID}, nil
}

func (f *fakeCalendar) DeleteEvent(_ context.Context, calendarID, eventID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, calendarID+"/"+eventID)
	return nil
}

type fakeNotifier struct {
	mu          sync.Mutex
	created     int
	transitions []string
	err         error
}

func (f *fakeNotifier) NotifyCreated(context.Context, *domain.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created++
	return f.err
}

func (f *fakeNotifier) NotifyStatusChanged(_ context.Context, _ *domain.Appointment, old, new domain.AppointmentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transitions = append(f.transitions, string(old)+"->"+string(new))
	return f.err
}

type fakeEmployeeStore struct {
	mu         sync.Mutex
	employee   *domain.Employee
	calendarID string
}

func (f *fakeEmployeeStore) GetByID(context.Context, int64) (*domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *f.employee
	return &copied, nil
}

func (f *fakeEmployeeStore) UpdateCalendarID(_ context.Context, _ int64, calendarID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calendarID = calendarID
	f.employee.GoogleCalendarID = &calendarID
	return nil
}

type fakeAppointmentStore struct {
	mu       sync.Mutex
	eventIDs map[int64]string
}

func (f *fakeAppointmentStore) UpdateCalendarEventID(_ context.Context, id int64, eventID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.eventIDs == nil {
		f.eventIDs = map[int64]string{}
	}
	f.eventIDs[id] = eventID
	return nil
}

func testAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:           10,
		EmployeeID:   2,
		Status:       domain.StatusPending,
		ClientName:   "Pedro Soto",
		ServiceName:  "Corte de pelo",
		EmployeeName: "Ana Rojas",
		StartTime:    "10:00",
		EndTime:      "11:00",
	}
}

type fixture struct {
	pipeline     *Pipeline
	calendar     *fakeCalendar
	notifier     *fakeNotifier
	employees    *fakeEmployeeStore
	appointments *fakeAppointmentStore
	metrics      *fakeMetrics
}

func newFixture() *fixture {
	calendar := &fakeCalendar{}
	notifier := &fakeNotifier{}
	employees := &fakeEmployeeStore{employee: &domain.Employee{
		ID: 2, FirstName: "Ana", LastName: "Rojas", Email: "ana@example.com",
	}}
	appointments := &fakeAppointmentStore{}
	metrics := newFakeMetrics()

	return &fixture{
		pipeline:     New(Config{Workers: 1, QueueSize: 8}, calendar, notifier, employees, appointments, metrics, nopLogger{}),
		calendar:     calendar,
		notifier:     notifier,
		employees:    employees,
		appointments: appointments,
		metrics:      metrics,
	}
}

func TestCreatedTaskProvisionsCalendarAndInsertsEvent(t *testing.T) {
	f := newFixture()

	f.pipeline.process(newTask(KindCreated, testAppointment(), domain.StatusPending, domain.StatusPending))

	assert.Equal(t, []string{"Ana Rojas"}, f.calendar.createdFor)
	assert.Equal(t, []string{"cal-new"}, f.calendar.inserted)
	// the event handle is written back for later updates
	assert.Equal(t, "evt-1", f.appointments.eventIDs[10])
	assert.Equal(t, "cal-new", f.employees.calendarID)
	assert.Equal(t, 1, f.notifier.created)
}

func TestSecondTaskReusesProvisionedCalendar(t *testing.T) {
	f := newFixture()
	f.employees.employee.GoogleCalendarID = ptr.Ptr("cal-existing")

	f.pipeline.process(newTask(KindCreated, testAppointment(), domain.StatusPending, domain.StatusPending))

	assert.Empty(t, f.calendar.createdFor)
	assert.Equal(t, []string{"cal-existing"}, f.calendar.inserted)
}

func TestUpdatedTaskWithEventIDUpdatesInPlace(t *testing.T) {
	f := newFixture()
	f.employees.employee.GoogleCalendarID = ptr.Ptr("cal-existing")

	appointment := testAppointment()
	appointment.GoogleCalendarEventID = ptr.Ptr("evt-7")
	appointment.Status = domain.StatusConfirmed

	f.pipeline.process(newTask(KindUpdated, appointment, domain.StatusPending, domain.StatusConfirmed))

	assert.Empty(t, f.calendar.inserted)
	assert.Equal(t, []string{"cal-existing/evt-7"}, f.calendar.updated)
	assert.Equal(t, []string{"pending->confirmed"}, f.notifier.transitions)
}

func TestDeletedTaskRemovesEvent(t *testing.T) {
	f := newFixture()
	f.employees.employee.GoogleCalendarID = ptr.Ptr("cal-existing")

	appointment := testAppointment()
	appointment.GoogleCalendarEventID = ptr.Ptr("evt-7")

	f.pipeline.process(newTask(KindDeleted, appointment, domain.StatusPending, domain.StatusPending))

	assert.Equal(t, []string{"cal-existing/evt-7"}, f.calendar.deleted)
	// deletions never notify
	assert.Zero(t, f.notifier.created)
	assert.Empty(t, f.notifier.transitions)
}

func TestDeletedTaskWithoutHandlesIsNoop(t *testing.T) {
	f := newFixture()

	f.pipeline.process(newTask(KindDeleted, testAppointment(), domain.StatusPending, domain.StatusPending))

	assert.Empty(t, f.calendar.deleted)
	assert.Equal(t, 1, f.metrics.branchCount("calendar/success"))
}

func TestCalendarPanicDoesNotStopNotifications(t *testing.T) {
	f := newFixture()
	f.calendar.insertPanics = true

	f.pipeline.process(newTask(KindCreated, testAppointment(), domain.StatusPending, domain.StatusPending))

	assert.Equal(t, 1, f.notifier.created)
	assert.Equal(t, 1, f.metrics.branchCount("calendar/panic"))
	assert.Equal(t, 1, f.metrics.branchCount("notification/success"))
}

func TestCalendarFailureDoesNotStopNotifications(t *testing.T) {
	f := newFixture()
	f.calendar.createErr = errors.New("quota exceeded")

	f.pipeline.process(newTask(KindCreated, testAppointment(), domain.StatusPending, domain.StatusPending))

	assert.Equal(t, 1, f.notifier.created)
	assert.Equal(t, 1, f.metrics.branchCount("calendar/error"))
}

func TestNilCalendarDisablesBranch(t *testing.T) {
	f := newFixture()
	f.pipeline.calendar = nil

	f.pipeline.process(newTask(KindCreated, testAppointment(), domain.StatusPending, domain.StatusPending))

	assert.Equal(t, 1, f.notifier.created)
	assert.Zero(t, f.metrics.branchCount("calendar/error"))
}

func TestRescheduleWithoutStatusChangeStaysSilent(t *testing.T) {
	f := newFixture()
	f.employees.employee.GoogleCalendarID = ptr.Ptr("cal-existing")

	appointment := testAppointment()
	appointment.GoogleCalendarEventID = ptr.Ptr("evt-7")

	f.pipeline.process(newTask(KindUpdated, appointment, domain.StatusPending, domain.StatusPending))

	// calendar still syncs, the client is not messaged
	assert.Len(t, f.calendar.updated, 1)
	assert.Empty(t, f.notifier.transitions)
}

func TestNotifiableTransition(t *testing.T) {
	tests := []struct {
		old, new domain.AppointmentStatus
		want     bool
	}{
		{domain.StatusPending, domain.StatusConfirmed, true},
		{domain.StatusPending, domain.StatusCancelled, true},
		{domain.StatusConfirmed, domain.StatusCompleted, true},
		{domain.StatusPending, domain.StatusPending, false},
		{domain.StatusConfirmed, domain.StatusPending, false},
		{domain.StatusCancelled, domain.StatusPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, notifiableTransition(tt.old, tt.new), "%s -> %s", tt.old, tt.new)
	}
}

func TestSubmitDropsWhenQueueIsFull(t *testing.T) {
	f := newFixture()
	// workers are never started, so a tiny queue fills immediately
	small := New(Config{Workers: 1, QueueSize: 1}, f.calendar, f.notifier, f.employees, f.appointments, f.metrics, nopLogger{})

	small.AppointmentCreated(testAppointment())
	small.AppointmentCreated(testAppointment())

	assert.Equal(t, 1, f.metrics.tasks["created"])
	assert.Equal(t, 1, f.metrics.dropped)
}

func TestStartAndStopDrainQueue(t *testing.T) {
	f := newFixture()

	f.pipeline.Start()
	f.pipeline.AppointmentCreated(testAppointment())
	f.pipeline.Stop()

	require.Equal(t, 1, f.notifier.created)
	assert.Equal(t, 1, f.metrics.tasks["created"])
}

func TestTaskSnapshotsAppointment(t *testing.T) {
	appointment := testAppointment()
	task := newTask(KindCreated, appointment, appointment.Status, appointment.Status)

	appointment.ClientName = "Otra Persona"

	assert.Equal(t, "Pedro Soto", task.Appointment.ClientName)
}
