package get_patient_slots

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Clinic-AppointmentService/internal/api/handlers"
	"github.com/m04kA/Clinic-AppointmentService/internal/api/middleware"
	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
)

const (
	msgInvalidUserID = "некорректный идентификатор пользователя"
	msgAccessDenied  = "нет прав на просмотр чужих слотов"
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

// Handle GET /api/v1/patients/{userId}/slots
// Пациент видит только свои слоты, администратор — любые
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	patientID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil || patientID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	callerID, _ := middleware.GetUserID(r.Context())
	role, _ := middleware.GetUserRole(r.Context())
	if role != domain.RoleAdmin && callerID != patientID {
		h.logger.Warn("GET /patients/%d/slots - access denied for user=%d", patientID, callerID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	result, err := h.service.ListPatientSlots(r.Context(), patientID)
	if err != nil {
		h.logger.Error("GET /patients/%d/slots - failed: %v", patientID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
