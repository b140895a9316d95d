package googlecalendar

// Calendar is a Google Calendar v3 calendar resource
type Calendar struct {
	ID       string `json:"id,omitempty"`
	Summary  string `json:"summary"`
	TimeZone string `json:"timeZone,omitempty"`
}

// Event is a Google Calendar v3 event resource
type Event struct {
	ID          string         `json:"id,omitempty"`
	Summary     string         `json:"summary"`
	Description string         `json:"description,omitempty"`
	ColorID     string         `json:"colorId,omitempty"`
	Start       EventDateTime  `json:"start"`
	End         EventDateTime  `json:"end"`
	Reminders   *EventReminder `json:"reminders,omitempty"`
	Status      string         `json:"status,omitempty"`
	HTMLLink    string         `json:"htmlLink,omitempty"`
}

// EventDateTime is an event boundary with its timezone
type EventDateTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone,omitempty"`
}

// EventReminder configures the event's reminder overrides
type EventReminder struct {
	UseDefault bool               `json:"useDefault"`
	Overrides  []ReminderOverride `json:"overrides,omitempty"`
}

// ReminderOverride is one reminder rule
type ReminderOverride struct {
	Method  string `json:"method"` // "email" or "popup"
	Minutes int    `json:"minutes"`
}

// aclRule shares a calendar with a user
type aclRule struct {
	Role  string   `json:"role"`
	Scope aclScope `json:"scope"`
}

type aclScope struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// errorResponse is the API error envelope
type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
