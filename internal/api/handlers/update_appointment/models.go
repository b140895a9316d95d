package update_appointment

import (
	"time"

	"github.com/devsign-cl/appointment-service/internal/domain"
	updateAppointment "github.com/devsign-cl/appointment-service/internal/usecase/update_appointment"
	"github.com/devsign-cl/appointment-service/pkg/types"
)

// UpdateAppointmentRequest HTTP request model: absent fields stay unchanged
type UpdateAppointmentRequest struct {
	ServiceID  *int64  `json:"serviceId,omitempty"`
	EmployeeID *int64  `json:"employeeId,omitempty"`
	Date       *string `json:"date,omitempty"`      // "2026-03-15"
	StartTime  *string `json:"startTime,omitempty"` // "10:00"
	EndTime    *string `json:"endTime,omitempty"`   // "10:30"
	Status     *string `json:"status,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID         int64  `json:"id"`
	BusinessID int64  `json:"businessId"`
	ClientID   int64  `json:"clientId"`
	ServiceID  int64  `json:"serviceId"`
	EmployeeID int64  `json:"employeeId"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Status     string `json:"status"`

	ServiceName            string  `json:"serviceName"`
	ServicePrice           float64 `json:"servicePrice"`
	ServiceDurationMinutes int     `json:"serviceDurationMinutes"`
	ClientName             string  `json:"clientName"`
	EmployeeName           string  `json:"employeeName"`
	Notes                  *string `json:"notes,omitempty"`

	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest converts the HTTP request, parsing date and times
func (r *UpdateAppointmentRequest) ToUseCaseRequest(id, businessID int64) (*updateAppointment.Request, error) {
	req := &updateAppointment.Request{
		AppointmentID: id,
		BusinessID:    businessID,
		ServiceID:     r.ServiceID,
		EmployeeID:    r.EmployeeID,
		Status:        r.Status,
		Notes:         r.Notes,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}

	if r.EndTime != nil {
		endTime, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		req.EndTime = &endTime
	}

	return req, nil
}

// FromUseCaseResponse converts the use case response to the HTTP shape
func FromUseCaseResponse(resp *updateAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:         resp.ID,
		BusinessID: resp.BusinessID,
		ClientID:   resp.ClientID,
		ServiceID:  resp.ServiceID,
		EmployeeID: resp.EmployeeID,
		Date:       resp.Date.Format(domain.DateFormat),
		StartTime:  resp.StartTime.String(),
		EndTime:    resp.EndTime.String(),
		Status:     resp.Status,

		ServiceName:            resp.ServiceName,
		ServicePrice:           resp.ServicePrice,
		ServiceDurationMinutes: resp.ServiceDurationMinutes,
		ClientName:             resp.ClientName,
		EmployeeName:           resp.EmployeeName,
		Notes:                  resp.Notes,

		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
