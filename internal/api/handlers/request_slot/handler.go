package request_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/Clinic-AppointmentService/internal/api/handlers"
	"github.com/m04kA/Clinic-AppointmentService/internal/api/middleware"
	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
	slotsService "github.com/m04kA/Clinic-AppointmentService/internal/service/slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput       = "некорректные параметры заявки"
	msgSlotConflict       = "на выбранную дату и время уже существует слот"
	msgPatientOnly        = "заявка на приём доступна только пациенту"
)

type Handler struct {
	service SlotsService
	logger  Logger
}

func NewHandler(service SlotsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/request
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	role, _ := middleware.GetUserRole(r.Context())
	if role != domain.RolePatient {
		handlers.RespondForbidden(w, msgPatientOnly)
		return
	}
	patientID, _ := middleware.GetUserID(r.Context())

	var req RequestSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/request - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(patientID)
	if err != nil {
		h.logger.Warn("POST /slots/request - failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.service.RequestSlot(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, slotsService.ErrSlotConflict):
			h.logger.Warn("POST /slots/request - triple already taken: patient=%d", patientID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, slotsService.ErrInvalidInput):
			h.logger.Warn("POST /slots/request - invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /slots/request - failed: patient=%d, error=%v", patientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/request - pending slot id=%d created by patient=%d", result.ID, patientID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
