package calendar_appointments

import (
	"net/http"
	"strconv"
	"time"

	"github.com/devsign-cl/appointment-service/internal/api/handlers"
	"github.com/devsign-cl/appointment-service/internal/api/middleware"
	"github.com/devsign-cl/appointment-service/internal/domain"
	"github.com/devsign-cl/appointment-service/internal/service/appointments/models"
)

const (
	msgInvalidQuery = "parámetros de calendario inválidos"
	msgAccessDenied = "no tienes acceso a este calendario"
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

// Handle GET /api/v1/appointments/calendar?startDate=&endDate=&employeeId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	query := r.URL.Query()
	req := &models.CalendarRequest{
		Scope: models.Scope{BusinessID: scope.BusinessID, Superuser: scope.Superuser},
	}

	if raw := query.Get("employeeId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		req.EmployeeID = &id
	}

	if raw := query.Get("startDate"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		req.StartDate = &date
	}

	if raw := query.Get("endDate"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		req.EndDate = &date
	}

	result, err := h.service.CalendarView(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /appointments/calendar - failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
