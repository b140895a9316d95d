package update_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/devsign-cl/appointment-service/internal/api/handlers"
	"github.com/devsign-cl/appointment-service/internal/api/middleware"
	updateAppointment "github.com/devsign-cl/appointment-service/internal/usecase/update_appointment"
)

const (
	msgInvalidID            = "identificador de cita inválido"
	msgInvalidRequestBody   = "cuerpo de la solicitud inválido"
	msgInvalidDateOrTime    = "fecha u hora inválida, se espera YYYY-MM-DD y HH:MM"
	msgAppointmentNotFound  = "cita no encontrada"
	msgAppointmentCompleted = "una cita completada no puede modificarse"
	msgTerminalStatus       = "una cita completada no puede cambiar de estado"
	msgInvalidTransition    = "cambio de estado no permitido"
	msgSlotConflict         = "el nuevo horario ya está ocupado"
	msgServiceNotFound      = "servicio no encontrado"
	msgEmployeeNotFound     = "profesional no encontrado"
	msgWrongBusiness        = "no tienes acceso a esta cita"
	msgInvalidInput         = "datos de la cita inválidos"
)

type Handler struct {
	useCase UpdateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		handlers.RespondForbidden(w, msgWrongBusiness)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/%d - invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Superusers carry no business scope; the use case skips the check on 0
	businessID := scope.BusinessID
	if scope.Superuser {
		businessID = 0
	}

	useCaseReq, err := req.ToUseCaseRequest(id, businessID)
	if err != nil {
		h.logger.Warn("PATCH /appointments/%d - failed to parse request: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateAppointment.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, updateAppointment.ErrTerminalStatus):
			h.logger.Warn("PATCH /appointments/%d - terminal status edit rejected", id)
			handlers.RespondError(w, http.StatusConflict, msgTerminalStatus)

		case errors.Is(err, updateAppointment.ErrAppointmentCompleted):
			h.logger.Warn("PATCH /appointments/%d - completed edit rejected", id)
			handlers.RespondError(w, http.StatusConflict, msgAppointmentCompleted)

		case errors.Is(err, updateAppointment.ErrInvalidTransition):
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, updateAppointment.ErrSlotConflict):
			h.logger.Warn("PATCH /appointments/%d - slot conflict", id)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, updateAppointment.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, updateAppointment.ErrEmployeeNotFound):
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, updateAppointment.ErrWrongBusiness):
			handlers.RespondForbidden(w, msgWrongBusiness)

		case errors.Is(err, updateAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/%d - invalid input: %v", id, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /appointments/%d - failed: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/%d - appointment updated, status=%s", id, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
