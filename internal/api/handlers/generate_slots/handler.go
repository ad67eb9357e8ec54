package generate_slots

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/Clinic-AppointmentService/internal/api/handlers"
	"github.com/m04kA/Clinic-AppointmentService/internal/api/middleware"
	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
	generateSlots "github.com/m04kA/Clinic-AppointmentService/internal/usecase/generate_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры генерации"
	msgAdminOnly          = "операция доступна только администратору"
)

type Handler struct {
	useCase        GenerateSlotsUseCase
	defaultHorizon int
	logger         Logger
}

func NewHandler(useCase GenerateSlotsUseCase, defaultHorizon int, logger Logger) *Handler {
	if defaultHorizon <= 0 {
		defaultHorizon = domain.DefaultHorizonDays
	}
	return &Handler{
		useCase:        useCase,
		defaultHorizon: defaultHorizon,
		logger:         logger,
	}
}

// Handle POST /api/v1/slots/generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	role, _ := middleware.GetUserRole(r.Context())
	if role != domain.RoleAdmin {
		handlers.RespondForbidden(w, msgAdminOnly)
		return
	}

	var req GenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /slots/generate - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(h.defaultHorizon))
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrInvalidInput):
			h.logger.Warn("POST /slots/generate - invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("POST /slots/generate - generation failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/generate - created=%d, skipped=%d", result.Created, result.Skipped)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
