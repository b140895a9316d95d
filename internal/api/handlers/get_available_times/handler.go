package get_available_times

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/devsign-cl/appointment-service/internal/api/handlers"
	"github.com/devsign-cl/appointment-service/internal/domain"
	businessRepo "github.com/devsign-cl/appointment-service/internal/infra/storage/business"
	getAvailableTimes "github.com/devsign-cl/appointment-service/internal/usecase/get_available_times"
)

const (
	msgBusinessNotFound = "negocio no encontrado"
	msgInvalidDate      = "fecha inválida, se espera YYYY-MM-DD"
	msgInvalidEmployee  = "identificador de profesional inválido"
)

type Handler struct {
	useCase      GetAvailableTimesUseCase
	businessRepo BusinessRepository
	logger       Logger
}

func NewHandler(useCase GetAvailableTimesUseCase, businessRepo BusinessRepository, logger Logger) *Handler {
	return &Handler{
		useCase:      useCase,
		businessRepo: businessRepo,
		logger:       logger,
	}
}

// Handle GET /api/v1/public/{slug}/available-times?date=YYYY-MM-DD&employeeId=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	business, err := h.businessRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			handlers.RespondNotFound(w, msgBusinessNotFound)
			return
		}
		h.logger.Error("GET /public/%s/available-times - failed to get business: %v", slug, err)
		handlers.RespondInternalError(w)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /public/%s/available-times - invalid date: %v", slug, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &getAvailableTimes.Request{
		BusinessID: business.ID,
		Date:       date,
	}

	if raw := r.URL.Query().Get("employeeId"); raw != "" {
		employeeID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || employeeID <= 0 {
			handlers.RespondBadRequest(w, msgInvalidEmployee)
			return
		}
		req.EmployeeID = &employeeID
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		if errors.Is(err, getAvailableTimes.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		h.logger.Error("GET /public/%s/available-times - failed: %v", slug, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
