package create_appointment

import (
	"time"

	"github.com/devsign-cl/appointment-service/internal/domain"
	createAppointment "github.com/devsign-cl/appointment-service/internal/usecase/create_appointment"
	"github.com/devsign-cl/appointment-service/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ClientID   int64   `json:"clientId"`
	ServiceID  int64   `json:"serviceId"`
	EmployeeID int64   `json:"employeeId"`
	Date       string  `json:"date"`      // "2026-03-15"
	StartTime  string  `json:"startTime"` // "10:00"
	Status     string  `json:"status,omitempty"`
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

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest converts the HTTP request, parsing date and time
func (r *CreateAppointmentRequest) ToUseCaseRequest(businessID int64) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		BusinessID: businessID,
		ClientID:   r.ClientID,
		ServiceID:  r.ServiceID,
		EmployeeID: r.EmployeeID,
		Date:       date,
		StartTime:  startTime,
		Status:     r.Status,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse converts the use case response to the HTTP shape
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
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

		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
