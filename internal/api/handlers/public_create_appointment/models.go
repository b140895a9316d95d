package public_create_appointment

import (
	"time"

	"github.com/devsign-cl/appointment-service/internal/domain"
	publicBooking "github.com/devsign-cl/appointment-service/internal/usecase/public_booking"
	"github.com/devsign-cl/appointment-service/pkg/types"
)

// PublicBookingRequest HTTP request model
type PublicBookingRequest struct {
	ClientName  string  `json:"clientName"`
	ClientEmail string  `json:"clientEmail"`
	ClientPhone *string `json:"clientPhone,omitempty"`
	ServiceID   int64   `json:"serviceId"`
	EmployeeID  int64   `json:"employeeId"`
	Date        string  `json:"date"`      // "2026-03-15"
	StartTime   string  `json:"startTime"` // "10:00"
	Notes       *string `json:"notes,omitempty"`
}

// PublicBookingResponse HTTP response model
type PublicBookingResponse struct {
	ID           int64   `json:"id"`
	Date         string  `json:"date"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Status       string  `json:"status"`
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	EmployeeName string  `json:"employeeName"`
	CreatedAt    string  `json:"createdAt"`
}

// ToUseCaseRequest converts the HTTP request, parsing date and time
func (r *PublicBookingRequest) ToUseCaseRequest(slug string) (*publicBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &publicBooking.Request{
		BusinessSlug: slug,
		ClientName:   r.ClientName,
		ClientEmail:  r.ClientEmail,
		ClientPhone:  r.ClientPhone,
		ServiceID:    r.ServiceID,
		EmployeeID:   r.EmployeeID,
		Date:         date,
		StartTime:    startTime,
		Notes:        r.Notes,
	}, nil
}

// FromUseCaseResponse converts the use case response to the HTTP shape
func FromUseCaseResponse(resp *publicBooking.Response) *PublicBookingResponse {
	return &PublicBookingResponse{
		ID:           resp.ID,
		Date:         resp.Date.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
		EndTime:      resp.EndTime.String(),
		Status:       resp.Status,
		ServiceName:  resp.ServiceName,
		ServicePrice: resp.ServicePrice,
		EmployeeName: resp.EmployeeName,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
	}
}
