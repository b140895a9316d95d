package googlecalendar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/devsign-cl/appointment-service/internal/domain"
)

// Logger interface for logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client talks to the Google Calendar v3 REST API
type Client struct {
	baseURL     string
	accessToken string
	timezone    string
	httpClient  *http.Client
	log         Logger
}

// NewClient creates the calendar client. timezone is the business timezone
// every calendar and event is created in.
func NewClient(baseURL, accessToken, timezone string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
		timezone:    timezone,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreateEmployeeCalendar creates a dedicated calendar for an employee and
// shares it with them as owner. Returns the new calendar id.
func (c *Client) CreateEmployeeCalendar(ctx context.Context, employeeName, employeeEmail string) (string, error) {
	calendar := Calendar{
		Summary:  "Agenda - " + employeeName,
		TimeZone: c.timezone,
	}

	var created Calendar
	if err := c.do(ctx, http.MethodPost, "/calendars", calendar, &created); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", fmt.Errorf("%w: calendar created without id", ErrInvalidResponse)
	}

	// Sharing failure is not fatal: the calendar exists and events will land
	rule := aclRule{
		Role:  "owner",
		Scope: aclScope{Type: "user", Value: employeeEmail},
	}
	path := fmt.Sprintf("/calendars/%s/acl", url.PathEscape(created.ID))
	if err := c.do(ctx, http.MethodPost, path, rule, nil); err != nil {
		c.log.Warn("CreateEmployeeCalendar: failed to share calendar %s with %s: %v",
			created.ID, employeeEmail, err)
	}

	c.log.Info("CreateEmployeeCalendar: created calendar %s for %s", created.ID, employeeName)
	return created.ID, nil
}

// InsertEvent creates the event for an appointment
func (c *Client) InsertEvent(ctx context.Context, calendarID string, appointment *domain.Appointment) (*Event, error) {
	event := c.buildEvent(appointment)

	var created Event
	path := fmt.Sprintf("/calendars/%s/events", url.PathEscape(calendarID))
	if err := c.do(ctx, http.MethodPost, path, event, &created); err != nil {
		return nil, err
	}
	if created.ID == "" {
		return nil, fmt.Errorf("%w: event created without id", ErrInvalidResponse)
	}

	c.log.Info("InsertEvent: created event %s for appointment id=%d", created.ID, appointment.ID)
	return &created, nil
}

// UpdateEvent rewrites the event for an appointment, recoloring it to the
// current status
func (c *Client) UpdateEvent(ctx context.Context, calendarID, eventID string, appointment *domain.Appointment) (*Event, error) {
	event := c.buildEvent(appointment)

	var updated Event
	path := fmt.Sprintf("/calendars/%s/events/%s", url.PathEscape(calendarID), url.PathEscape(eventID))
	if err := c.do(ctx, http.MethodPut, path, event, &updated); err != nil {
		return nil, err
	}

	c.log.Info("UpdateEvent: updated event %s for appointment id=%d", eventID, appointment.ID)
	return &updated, nil
}

// DeleteEvent removes the event. A missing event is treated as success.
func (c *Client) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	path := fmt.Sprintf("/calendars/%s/events/%s", url.PathEscape(calendarID), url.PathEscape(eventID))
	err := c.do(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			c.log.Warn("DeleteEvent: event %s already gone", eventID)
			return nil
		}
		return err
	}

	c.log.Info("DeleteEvent: deleted event %s", eventID)
	return nil
}

// buildEvent maps an appointment to its calendar representation
func (c *Client) buildEvent(a *domain.Appointment) Event {
	date := a.Date.Format(domain.DateFormat)

	var description strings.Builder
	fmt.Fprintf(&description, "Cliente: %s\n", a.ClientName)
	if a.ClientPhone != nil && *a.ClientPhone != "" {
		fmt.Fprintf(&description, "Teléfono: %s\n", *a.ClientPhone)
	}
	if a.ClientEmail != "" {
		fmt.Fprintf(&description, "Email: %s\n", a.ClientEmail)
	}
	fmt.Fprintf(&description, "Servicio: %s\n", a.ServiceName)
	fmt.Fprintf(&description, "Precio: $%.0f\n", a.ServicePrice)
	fmt.Fprintf(&description, "Estado: %s\n", StatusDisplay(a.Status))
	if a.Notes != nil && *a.Notes != "" {
		fmt.Fprintf(&description, "Notas: %s\n", *a.Notes)
	}

	return Event{
		Summary:     fmt.Sprintf("%s %s - %s", Emoji(a.Status), a.ClientName, a.ServiceName),
		Description: description.String(),
		ColorID:     ColorID(a.Status),
		Start: EventDateTime{
			DateTime: fmt.Sprintf("%sT%s:00", date, a.StartTime),
			TimeZone: c.timezone,
		},
		End: EventDateTime{
			DateTime: fmt.Sprintf("%sT%s:00", date, a.EndTime),
			TimeZone: c.timezone,
		},
		Reminders: &EventReminder{
			UseDefault: false,
			Overrides: []ReminderOverride{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 30},
			},
		},
	}
}

// do executes one API call, encoding body and decoding out when non-nil
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// Fall through to decode
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		if strings.Contains(path, "/events/") {
			return ErrEventNotFound
		}
		return ErrCalendarNotFound
	default:
		var apiErr errorResponse
		raw, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}
