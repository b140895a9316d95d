package public_create_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/devsign-cl/appointment-service/internal/api/handlers"
	publicBooking "github.com/devsign-cl/appointment-service/internal/usecase/public_booking"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInvalidDateOrTime  = "fecha u hora inválida, se espera YYYY-MM-DD y HH:MM"
	msgSlotConflict       = "el horario seleccionado ya no está disponible"
	msgBusinessNotFound   = "negocio no encontrado"
	msgServiceNotFound    = "servicio no encontrado"
	msgEmployeeNotFound   = "profesional no encontrado"
	msgInvalidInput       = "datos de la reserva inválidos"
)

type Handler struct {
	useCase PublicBookingUseCase
	logger  Logger
}

func NewHandler(useCase PublicBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/public/{slug}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	var req PublicBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /public/%s/appointments - invalid request body: %v", slug, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(slug)
	if err != nil {
		h.logger.Warn("POST /public/%s/appointments - failed to parse request: %v", slug, err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, publicBooking.ErrSlotConflict):
			h.logger.Warn("POST /public/%s/appointments - slot conflict: employee_id=%d date=%s",
				slug, req.EmployeeID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, publicBooking.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, publicBooking.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, publicBooking.ErrEmployeeNotFound):
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, publicBooking.ErrInvalidInput):
			h.logger.Warn("POST /public/%s/appointments - invalid input: %v", slug, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /public/%s/appointments - failed to book: %v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /public/%s/appointments - appointment created: id=%d", slug, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
