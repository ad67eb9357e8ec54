package get_doctor_slots

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
	msgAccessDenied  = "нет прав на просмотр расписания этого врача"
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

// Handle GET /api/v1/doctors/{userId}/slots
// Врач видит только своё расписание, администратор — любое
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doctorID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil || doctorID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	callerID, _ := middleware.GetUserID(r.Context())
	role, _ := middleware.GetUserRole(r.Context())
	if role != domain.RoleAdmin && (role != domain.RoleDoctor || callerID != doctorID) {
		h.logger.Warn("GET /doctors/%d/slots - access denied for user=%d", doctorID, callerID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	result, err := h.service.ListDoctorSlots(r.Context(), doctorID)
	if err != nil {
		h.logger.Error("GET /doctors/%d/slots - failed: %v", doctorID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
