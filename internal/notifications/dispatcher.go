// Package notifications delivers appointment messages over email and an
// outbound webhook. Channels fail independently: one channel's error never
// stops the other, and an unconfigured channel is a silent skip.
package notifications

import (
	"context"
	"errors"
	"time"

	"github.com/devsign-cl/appointment-service/internal/domain"
)

var (
	// ErrEmailSend is returned when SMTP delivery fails
	ErrEmailSend = errors.New("notifications: email send failed")

	// ErrWebhookSend is returned when the webhook POST fails
	ErrWebhookSend = errors.New("notifications: webhook send failed")
)

// Logger interface for logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config wires the dispatcher's channels
type Config struct {
	BusinessName string
	AdminEmail   string
	FromEmail    string
	SMTPHost     string
	SMTPPort     int

	WebhookURL     string
	WebhookToken   string
	WebhookTimeout time.Duration
}

// Dispatcher fans appointment messages out to the configured channels
type Dispatcher struct {
	businessName string
	adminEmail   string
	email        *emailSender
	webhook      *webhookSender
	logger       Logger
}

// NewDispatcher creates the dispatcher from its channel configuration
func NewDispatcher(cfg Config, logger Logger) *Dispatcher {
	timeout := cfg.WebhookTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Dispatcher{
		businessName: cfg.BusinessName,
		adminEmail:   cfg.AdminEmail,
		email:        newEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.FromEmail),
		webhook:      newWebhookSender(cfg.WebhookURL, cfg.WebhookToken, timeout),
		logger:       logger,
	}
}

// NotifyCreated sends the booking confirmation to the client, a summary to
// the admin, and the created event to the webhook
func (d *Dispatcher) NotifyCreated(ctx context.Context, a *domain.Appointment) error {
	var errs []error

	if err := d.sendClientEmail(a, createdSubject(d.businessName), createdBody(d.businessName, a)); err != nil {
		errs = append(errs, err)
	}
	if err := d.sendAdminEmail(a, adminCreatedSubject(a), adminCreatedBody(a)); err != nil {
		errs = append(errs, err)
	}
	if err := d.sendWebhook(ctx, a, "appointment.created"); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// NotifyStatusChanged sends the status-change message to the client and
// the event to the webhook
func (d *Dispatcher) NotifyStatusChanged(ctx context.Context, a *domain.Appointment, old, new domain.AppointmentStatus) error {
	var errs []error

	subject := statusChangedSubject(d.businessName, new)
	body := statusChangedBody(d.businessName, a, old, new)
	if err := d.sendClientEmail(a, subject, body); err != nil {
		errs = append(errs, err)
	}
	if err := d.sendWebhook(ctx, a, "appointment."+string(new)); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// SendReminder sends the day-before reminder to the client
func (d *Dispatcher) SendReminder(ctx context.Context, a *domain.Appointment) error {
	return d.sendClientEmail(a, reminderSubject(d.businessName), reminderBody(d.businessName, a))
}

func (d *Dispatcher) sendClientEmail(a *domain.Appointment, subject, body string) error {
	if !d.email.configured() {
		return nil
	}
	if a.ClientEmail == "" {
		d.logger.Warn("notifications: appointment id=%d has no client email, skipping", a.ID)
		return nil
	}
	if err := d.email.Send(a.ClientEmail, subject, body); err != nil {
		d.logger.Error("notifications: client email for appointment id=%d failed: %v", a.ID, err)
		return err
	}
	d.logger.Info("notifications: client email sent for appointment id=%d", a.ID)
	return nil
}

func (d *Dispatcher) sendAdminEmail(a *domain.Appointment, subject, body string) error {
	if !d.email.configured() || d.adminEmail == "" {
		return nil
	}
	if err := d.email.Send(d.adminEmail, subject, body); err != nil {
		d.logger.Error("notifications: admin email for appointment id=%d failed: %v", a.ID, err)
		return err
	}
	return nil
}

func (d *Dispatcher) sendWebhook(ctx context.Context, a *domain.Appointment, event string) error {
	if !d.webhook.configured() {
		return nil
	}
	if err := d.webhook.Send(ctx, event, webhookAppointment(a)); err != nil {
		d.logger.Error("notifications: webhook %s for appointment id=%d failed: %v", event, a.ID, err)
		return err
	}
	return nil
}

// webhookAppointment is the appointment shape posted to the webhook
func webhookAppointment(a *domain.Appointment) map[string]interface{} {
	return map[string]interface{}{
		"id":            a.ID,
		"business_id":   a.BusinessID,
		"date":          a.Date.Format(domain.DateFormat),
		"start_time":    a.StartTime.String(),
		"end_time":      a.EndTime.String(),
		"status":        string(a.Status),
		"service_name":  a.ServiceName,
		"service_price": a.ServicePrice,
		"client_name":   a.ClientName,
		"client_email":  a.ClientEmail,
		"employee_name": a.EmployeeName,
	}
}
