package reserve_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/Clinic-AppointmentService/internal/api/handlers"
	"github.com/m04kA/Clinic-AppointmentService/internal/api/middleware"
	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
	reserveSlot "github.com/m04kA/Clinic-AppointmentService/internal/usecase/reserve_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput       = "некорректные параметры бронирования"
	msgNoSlotAvailable    = "свободный слот на выбранное время не найден"
	msgPatientOnly        = "бронирование доступно только пациенту"
)

type Handler struct {
	useCase ReserveSlotUseCase
	logger  Logger
}

func NewHandler(useCase ReserveSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/reserve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	role, _ := middleware.GetUserRole(r.Context())
	if role != domain.RolePatient {
		handlers.RespondForbidden(w, msgPatientOnly)
		return
	}
	patientID, _ := middleware.GetUserID(r.Context())

	var req ReserveSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/reserve - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(patientID)
	if err != nil {
		h.logger.Warn("POST /slots/reserve - failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, reserveSlot.ErrNoSlotAvailable):
			h.logger.Warn("POST /slots/reserve - no slot available: patient=%d, specialty=%q",
				patientID, req.Specialty)
			handlers.RespondError(w, http.StatusConflict, msgNoSlotAvailable)

		case errors.Is(err, reserveSlot.ErrInvalidInput):
			h.logger.Warn("POST /slots/reserve - invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /slots/reserve - reservation failed: patient=%d, error=%v", patientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/reserve - slot id=%d reserved by patient=%d", result.SlotID, patientID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
