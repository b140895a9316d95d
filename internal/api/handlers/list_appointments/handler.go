package list_appointments

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/devsign-cl/appointment-service/internal/api/handlers"
	"github.com/devsign-cl/appointment-service/internal/api/middleware"
	"github.com/devsign-cl/appointment-service/internal/domain"
	"github.com/devsign-cl/appointment-service/internal/service/appointments"
	"github.com/devsign-cl/appointment-service/internal/service/appointments/models"
)

const (
	msgInvalidQuery = "parámetros de filtro inválidos"
	msgAccessDenied = "no tienes acceso a estas citas"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments
// Filters: employeeId, clientId, status, startDate, endDate, period=week|month
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	req, err := parseListRequest(r.URL.Query(), scope)
	if err != nil {
		h.logger.Warn("GET /appointments - invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, appointments.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		h.logger.Error("GET /appointments - failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseListRequest(query url.Values, scope middleware.Scope) (*models.ListRequest, error) {
	req := &models.ListRequest{
		Scope: models.Scope{BusinessID: scope.BusinessID, Superuser: scope.Superuser},
	}

	if raw := query.Get("employeeId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return nil, errors.New("invalid employeeId")
		}
		req.EmployeeID = &id
	}

	if raw := query.Get("clientId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return nil, errors.New("invalid clientId")
		}
		req.ClientID = &id
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	if raw := query.Get("startDate"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
	}

	if raw := query.Get("endDate"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.EndDate = &date
	}

	if raw := query.Get("period"); raw != "" {
		req.Period = &raw
	}

	return req, nil
}
