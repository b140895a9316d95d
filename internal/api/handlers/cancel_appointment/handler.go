package cancel_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/devsign-cl/appointment-service/internal/api/handlers"
	"github.com/devsign-cl/appointment-service/internal/api/middleware"
	"github.com/devsign-cl/appointment-service/internal/service/appointments"
	"github.com/devsign-cl/appointment-service/internal/service/appointments/models"
)

const (
	msgInvalidID           = "identificador de cita inválido"
	msgAppointmentNotFound = "cita no encontrada"
	msgAccessDenied        = "no tienes acceso a esta cita"
	msgCannotCancel        = "la cita ya no puede cancelarse"
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

// Handle POST /api/v1/appointments/{id}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	result, err := h.service.Cancel(r.Context(), id, models.Scope{
		BusinessID: scope.BusinessID,
		Superuser:  scope.Superuser,
	})
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, appointments.ErrCannotCancel):
			h.logger.Warn("POST /appointments/%d/cancel - cannot cancel: %v", id, err)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		case errors.Is(err, appointments.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidID)

		default:
			h.logger.Error("POST /appointments/%d/cancel - failed: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/%d/cancel - appointment cancelled", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
