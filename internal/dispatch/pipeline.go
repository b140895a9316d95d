// Package dispatch runs side effects (calendar sync, notifications) for
// committed appointment changes on a bounded worker pool. Work is
// fire-and-forget: a full queue drops the task, failures are logged and
// counted, nothing reports back to the request path.
package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/devsign-cl/appointment-service/internal/domain"
)

const taskTimeout = 30 * time.Second

// Config sizes the worker pool
type Config struct {
	Workers   int
	QueueSize int
}

// Pipeline is the side-effect worker pool
type Pipeline struct {
	calendar         CalendarSync
	notifier         Notifier
	employeeStore    EmployeeStore
	appointmentStore AppointmentStore
	metrics          Metrics
	logger           Logger

	tasks    chan Task
	workers  int
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// New creates a stopped pipeline; call Start to launch the workers.
// A nil calendar disables the calendar branch.
func New(
	cfg Config,
	calendar CalendarSync,
	notifier Notifier,
	employeeStore EmployeeStore,
	appointmentStore AppointmentStore,
	metrics Metrics,
	logger Logger,
) *Pipeline {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 64
	}

	return &Pipeline{
		calendar:         calendar,
		notifier:         notifier,
		employeeStore:    employeeStore,
		appointmentStore: appointmentStore,
		metrics:          metrics,
		logger:           logger,
		tasks:            make(chan Task, queueSize),
		workers:          workers,
	}
}

// Start launches the worker goroutines
func (p *Pipeline) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	p.logger.Info("dispatch: pipeline started with %d workers, queue size %d", p.workers, cap(p.tasks))
}

// Stop drains the queue and waits for in-flight tasks to finish
func (p *Pipeline) Stop() {
	p.stopOnce.Do(func() {
		close(p.tasks)
	})
	p.wg.Wait()
	p.logger.Info("dispatch: pipeline stopped")
}

// AppointmentCreated submits a created task
func (p *Pipeline) AppointmentCreated(appointment *domain.Appointment) {
	p.submit(newTask(KindCreated, appointment, appointment.Status, appointment.Status))
}

// AppointmentUpdated submits an updated task carrying both statuses so the
// notification branch can tell a real transition from a reschedule
func (p *Pipeline) AppointmentUpdated(old, updated *domain.Appointment) {
	p.submit(newTask(KindUpdated, updated, old.Status, updated.Status))
}

// AppointmentDeleted submits a deleted task
func (p *Pipeline) AppointmentDeleted(appointment *domain.Appointment) {
	p.submit(newTask(KindDeleted, appointment, appointment.Status, appointment.Status))
}

// submit enqueues without blocking; a full queue drops the task
func (p *Pipeline) submit(task Task) {
	select {
	case p.tasks <- task:
		p.metrics.IncDispatchTask(string(task.Kind))
		p.metrics.SetDispatchQueueDepth(len(p.tasks))
	default:
		p.metrics.IncDispatchDropped()
		p.logger.Error("dispatch: queue full, dropped task id=%s kind=%s appointment=%d",
			task.ID, task.Kind, task.Appointment.ID)
	}
}

func (p *Pipeline) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		p.metrics.SetDispatchQueueDepth(len(p.tasks))
		p.process(task)
	}
}

// process runs the two branches concurrently. Each branch recovers its own
// panics so one branch can never take down the other or the worker.
func (p *Pipeline) process(task Task) {
	ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
	defer cancel()

	var branches sync.WaitGroup
	branches.Add(2)

	go func() {
		defer branches.Done()
		defer p.recoverBranch(task, "calendar")
		p.runCalendarBranch(ctx, task)
	}()

	go func() {
		defer branches.Done()
		defer p.recoverBranch(task, "notification")
		p.runNotificationBranch(ctx, task)
	}()

	branches.Wait()
}

func (p *Pipeline) recoverBranch(task Task, branch string) {
	if r := recover(); r != nil {
		p.metrics.IncDispatchBranch(branch, "panic")
		p.logger.Error("dispatch: %s branch panicked for task id=%s appointment=%d: %v",
			branch, task.ID, task.Appointment.ID, r)
	}
}

func (p *Pipeline) runCalendarBranch(ctx context.Context, task Task) {
	if p.calendar == nil {
		return
	}

	if err := p.syncCalendar(ctx, task); err != nil {
		p.metrics.IncDispatchBranch("calendar", "error")
		p.logger.Error("dispatch: calendar branch failed for task id=%s appointment=%d: %v",
			task.ID, task.Appointment.ID, err)
		return
	}
	p.metrics.IncDispatchBranch("calendar", "success")
}

func (p *Pipeline) syncCalendar(ctx context.Context, task Task) error {
	appointment := task.Appointment

	employee, err := p.employeeStore.GetByID(ctx, appointment.EmployeeID)
	if err != nil {
		return err
	}

	if task.Kind == KindDeleted {
		if !employee.HasCalendar() || appointment.GoogleCalendarEventID == nil {
			return nil
		}
		return p.calendar.DeleteEvent(ctx, *employee.GoogleCalendarID, *appointment.GoogleCalendarEventID)
	}

	calendarID, err := p.ensureCalendar(ctx, employee)
	if err != nil {
		return err
	}

	// Upsert: first sync creates the event, later syncs update it in place
	if appointment.GoogleCalendarEventID == nil {
		event, err := p.calendar.InsertEvent(ctx, calendarID, appointment)
		if err != nil {
			return err
		}
		return p.appointmentStore.UpdateCalendarEventID(ctx, appointment.ID, event.ID)
	}

	_, err = p.calendar.UpdateEvent(ctx, calendarID, *appointment.GoogleCalendarEventID, appointment)
	return err
}

// ensureCalendar provisions a calendar for the employee on first use.
// Two concurrent tasks may both provision; the second calendar simply wins
// the write and the first stays orphaned. Accepted as best-effort.
func (p *Pipeline) ensureCalendar(ctx context.Context, employee *domain.Employee) (string, error) {
	if employee.HasCalendar() {
		return *employee.GoogleCalendarID, nil
	}

	calendarID, err := p.calendar.CreateEmployeeCalendar(ctx, employee.FullName(), employee.Email)
	if err != nil {
		return "", err
	}

	if err := p.employeeStore.UpdateCalendarID(ctx, employee.ID, calendarID); err != nil {
		return "", err
	}

	p.logger.Info("dispatch: provisioned calendar %s for employee id=%d", calendarID, employee.ID)
	return calendarID, nil
}

func (p *Pipeline) runNotificationBranch(ctx context.Context, task Task) {
	if p.notifier == nil {
		return
	}

	var err error
	switch task.Kind {
	case KindCreated:
		err = p.notifier.NotifyCreated(ctx, task.Appointment)
	case KindUpdated:
		if !notifiableTransition(task.OldStatus, task.NewStatus) {
			return
		}
		err = p.notifier.NotifyStatusChanged(ctx, task.Appointment, task.OldStatus, task.NewStatus)
	case KindDeleted:
		return
	}

	if err != nil {
		p.metrics.IncDispatchBranch("notification", "error")
		p.logger.Error("dispatch: notification branch failed for task id=%s appointment=%d: %v",
			task.ID, task.Appointment.ID, err)
		return
	}
	p.metrics.IncDispatchBranch("notification", "success")
}

// notifiableTransition reports whether a status change deserves a message.
// Reschedules and note edits keep the status and stay silent.
func notifiableTransition(old, new domain.AppointmentStatus) bool {
	if old == new {
		return false
	}
	switch new {
	case domain.StatusConfirmed, domain.StatusCancelled, domain.StatusCompleted:
		return true
	default:
		return false
	}
}
