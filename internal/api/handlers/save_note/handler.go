package save_note

import (
	"errors"
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
	msgNotAssignedDoctor  = "заметку сохраняет только назначенный врач"
	msgDoctorOnly         = "операция доступна только врачу"
	msgInvalidInput       = "некорректная заметка"
)

// noteBody тело запроса с заметкой
type noteBody struct {
	Note string `json:"note"`
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

// Handle PUT /api/v1/slots/{slotId}/note
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

	var body noteBody
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("PUT /slots/%d/note - invalid request body: %v", slotID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req := &models.SaveNoteRequest{DoctorID: doctorID, Note: body.Note}

	if err := h.service.SaveNote(r.Context(), slotID, req); err != nil {
		switch {
		case errors.Is(err, slotsService.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slotsService.ErrNotAssignedDoctor):
			h.logger.Warn("PUT /slots/%d/note - doctor=%d is not assigned", slotID, doctorID)
			handlers.RespondForbidden(w, msgNotAssignedDoctor)

		case errors.Is(err, slotsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /slots/%d/note - failed: %v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /slots/%d/note - note saved by doctor=%d", slotID, doctorID)
	handlers.RespondNoContent(w)
}
