package employee_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/devsign-cl/appointment-service/internal/api/handlers"
	"github.com/devsign-cl/appointment-service/internal/api/middleware"
	"github.com/devsign-cl/appointment-service/internal/domain"
	employeeAvailability "github.com/devsign-cl/appointment-service/internal/usecase/employee_availability"
	"github.com/devsign-cl/appointment-service/pkg/types"
)

const (
	msgInvalidQuery    = "parámetros inválidos: se esperan serviceId, date y startTime"
	msgServiceNotFound = "servicio no encontrado"
	msgWrongBusiness   = "el servicio pertenece a otro negocio"
)

type Handler struct {
	useCase EmployeeAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase EmployeeAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/employees/availability?serviceId=N&date=YYYY-MM-DD&startTime=HH:MM
// Superusers select the business with businessId.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		handlers.RespondForbidden(w, msgWrongBusiness)
		return
	}

	query := r.URL.Query()

	serviceID, err := strconv.ParseInt(query.Get("serviceId"), 10, 64)
	if err != nil || serviceID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	startTime, err := types.NewTimeStringFromString(query.Get("startTime"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	businessID := scope.BusinessID
	if scope.Superuser {
		if raw := query.Get("businessId"); raw != "" {
			businessID, err = strconv.ParseInt(raw, 10, 64)
			if err != nil || businessID <= 0 {
				handlers.RespondBadRequest(w, msgInvalidQuery)
				return
			}
		}
	}

	result, err := h.useCase.Execute(r.Context(), &employeeAvailability.Request{
		BusinessID: businessID,
		ServiceID:  serviceID,
		Date:       date,
		StartTime:  startTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, employeeAvailability.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, employeeAvailability.ErrWrongBusiness):
			handlers.RespondForbidden(w, msgWrongBusiness)

		case errors.Is(err, employeeAvailability.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /employees/availability - failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
