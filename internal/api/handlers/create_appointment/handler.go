package create_appointment

import (
	"errors"
	"net/http"

	"github.com/devsign-cl/appointment-service/internal/api/handlers"
	"github.com/devsign-cl/appointment-service/internal/api/middleware"
	createAppointment "github.com/devsign-cl/appointment-service/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInvalidDateOrTime  = "fecha u hora inválida, se espera YYYY-MM-DD y HH:MM"
	msgSlotConflict       = "el horario seleccionado ya está ocupado"
	msgServiceNotFound    = "servicio no encontrado"
	msgEmployeeNotFound   = "profesional no encontrado"
	msgClientNotFound     = "cliente no encontrado"
	msgWrongBusiness      = "el recurso pertenece a otro negocio"
	msgInvalidInput       = "datos de la cita inválidos"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		handlers.RespondForbidden(w, msgWrongBusiness)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(scope.BusinessID)
	if err != nil {
		h.logger.Warn("POST /appointments - failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotConflict):
			h.logger.Warn("POST /appointments - slot conflict: employee_id=%d date=%s", req.EmployeeID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrEmployeeNotFound):
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, createAppointment.ErrClientNotFound):
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, createAppointment.ErrWrongBusiness):
			handlers.RespondForbidden(w, msgWrongBusiness)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - failed to create appointment: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - appointment created: id=%d business_id=%d", result.ID, result.BusinessID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
