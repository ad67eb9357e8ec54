package edit_slot_field

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
	msgSlotConflict       = "правка конфликтует с существующим слотом"
	msgInvalidInput       = "некорректное имя поля или значение"
	msgAdminOnly          = "операция доступна только администратору"
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

// Handle PATCH /api/v1/slots/{slotId}/field
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	role, _ := middleware.GetUserRole(r.Context())
	if role != domain.RoleAdmin {
		handlers.RespondForbidden(w, msgAdminOnly)
		return
	}

	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil || slotID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req models.EditFieldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /slots/%d/field - invalid request body: %v", slotID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.EditField(r.Context(), slotID, &req); err != nil {
		switch {
		case errors.Is(err, slotsService.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slotsService.ErrSlotConflict):
			h.logger.Warn("PATCH /slots/%d/field - conflict on field %q", slotID, req.Field)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, slotsService.ErrInvalidInput):
			h.logger.Warn("PATCH /slots/%d/field - invalid edit: %v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /slots/%d/field - failed: %v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /slots/%d/field - field %q updated", slotID, req.Field)
	handlers.RespondNoContent(w)
}
