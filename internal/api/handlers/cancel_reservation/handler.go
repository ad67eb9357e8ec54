package cancel_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Clinic-AppointmentService/internal/api/handlers"
	"github.com/m04kA/Clinic-AppointmentService/internal/api/middleware"
	slotsService "github.com/m04kA/Clinic-AppointmentService/internal/service/slots"
	"github.com/m04kA/Clinic-AppointmentService/internal/service/slots/models"
)

const (
	msgInvalidSlotID     = "некорректный идентификатор слота"
	msgSlotNotFound      = "слот не найден"
	msgInvalidTransition = "слот нельзя отменить в текущем статусе"
	msgAccessDenied      = "нет прав на отмену этого слота"
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

// Handle PATCH /api/v1/slots/{slotId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil || slotID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())
	role, _ := middleware.GetUserRole(r.Context())
	actor := models.Actor{UserID: userID, Role: role}

	if err := h.service.Cancel(r.Context(), slotID, actor); err != nil {
		switch {
		case errors.Is(err, slotsService.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slotsService.ErrInvalidTransition):
			h.logger.Warn("PATCH /slots/%d/cancel - invalid transition", slotID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, slotsService.ErrAccessDenied):
			h.logger.Warn("PATCH /slots/%d/cancel - access denied for user=%d", slotID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("PATCH /slots/%d/cancel - failed: %v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /slots/%d/cancel - cancelled by user=%d (%s)", slotID, userID, role)
	handlers.RespondNoContent(w)
}
