package mark_attended

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Clinic-AppointmentService/internal/api/handlers"
	"github.com/m04kA/Clinic-AppointmentService/internal/api/middleware"
	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
	slotsService "github.com/m04kA/Clinic-AppointmentService/internal/service/slots"
	"github.com/m04kA/Clinic-AppointmentService/internal/service/slots/models"
)

const (
	msgInvalidSlotID      = "некорректный идентификатор слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSlotNotFound       = "слот не найден"
	msgInvalidTransition  = "приём нельзя закрыть в текущем статусе слота"
	msgNotAssignedDoctor  = "приём закрывает только назначенный врач"
	msgDoctorOnly         = "операция доступна только врачу"
	msgInvalidInput       = "некорректные параметры запроса"
)

// attendBody тело запроса с опциональной заметкой
type attendBody struct {
	Note *string `json:"note,omitempty"`
}

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

// Handle PATCH /api/v1/slots/{slotId}/attend
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	role, _ := middleware.GetUserRole(r.Context())
	if role != domain.RoleDoctor {
		handlers.RespondForbidden(w, msgDoctorOnly)
		return
	}
	doctorID, _ := middleware.GetUserID(r.Context())

	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil || slotID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var body attendBody
	if err := handlers.DecodeJSON(r, &body); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /slots/%d/attend - invalid request body: %v", slotID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req := &models.AttendRequest{DoctorID: doctorID, Note: body.Note}

	if err := h.service.MarkAttended(r.Context(), slotID, req); err != nil {
		switch {
		case errors.Is(err, slotsService.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slotsService.ErrInvalidTransition):
			h.logger.Warn("PATCH /slots/%d/attend - invalid transition", slotID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, slotsService.ErrNotAssignedDoctor):
			h.logger.Warn("PATCH /slots/%d/attend - doctor=%d is not assigned", slotID, doctorID)
			handlers.RespondForbidden(w, msgNotAssignedDoctor)

		case errors.Is(err, slotsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /slots/%d/attend - failed: %v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /slots/%d/attend - attended by doctor=%d", slotID, doctorID)
	handlers.RespondNoContent(w)
}
