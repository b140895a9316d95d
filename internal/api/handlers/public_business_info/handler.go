// Package public_business_info exposes the booking page data: the business
// itself plus its active services and employees, addressed by slug.
package public_business_info

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/devsign-cl/appointment-service/internal/api/handlers"
	"github.com/devsign-cl/appointment-service/internal/domain"
	businessRepo "github.com/devsign-cl/appointment-service/internal/infra/storage/business"
)

const msgBusinessNotFound = "negocio no encontrado"

// BusinessInfoResponse is the public booking page payload
type BusinessInfoResponse struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	Slug      string             `json:"slug"`
	Services  []ServiceResponse  `json:"services"`
	Employees []EmployeeResponse `json:"employees"`
}

// ServiceResponse is one bookable service
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// EmployeeResponse is one bookable employee
type EmployeeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Handler struct {
	businessRepo BusinessRepository
	serviceRepo  ServiceRepository
	employeeRepo EmployeeRepository
	logger       Logger
}

func NewHandler(
	businessRepo BusinessRepository,
	serviceRepo ServiceRepository,
	employeeRepo EmployeeRepository,
	logger Logger,
) *Handler {
	return &Handler{
		businessRepo: businessRepo,
		serviceRepo:  serviceRepo,
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

// Handle GET /api/v1/public/{slug}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	business, err := h.businessRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			h.logger.Warn("GET /public/%s - business not found", slug)
			handlers.RespondNotFound(w, msgBusinessNotFound)
			return
		}
		h.logger.Error("GET /public/%s - failed to get business: %v", slug, err)
		handlers.RespondInternalError(w)
		return
	}

	services, err := h.serviceRepo.ListActiveByBusiness(r.Context(), business.ID)
	if err != nil {
		h.logger.Error("GET /public/%s - failed to list services: %v", slug, err)
		handlers.RespondInternalError(w)
		return
	}

	employees, err := h.employeeRepo.ListByBusiness(r.Context(), business.ID, true)
	if err != nil {
		h.logger.Error("GET /public/%s - failed to list employees: %v", slug, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, buildResponse(business, services, employees))
}

func buildResponse(business *domain.Business, services []*domain.Service, employees []*domain.Employee) *BusinessInfoResponse {
	resp := &BusinessInfoResponse{
		ID:        business.ID,
		Name:      business.Name,
		Slug:      business.Slug,
		Services:  make([]ServiceResponse, 0, len(services)),
		Employees: make([]EmployeeResponse, 0, len(employees)),
	}

	for _, s := range services {
		resp.Services = append(resp.Services, ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			Description:     s.Description,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
		})
	}

	for _, e := range employees {
		resp.Employees = append(resp.Employees, EmployeeResponse{
			ID:   e.ID,
			Name: e.FullName(),
		})
	}

	return resp
}
