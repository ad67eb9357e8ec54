package reassign_specialty

import (
	"errors"
	"net/http"

	"github.com/m04kA/Clinic-AppointmentService/internal/api/handlers"
	"github.com/m04kA/Clinic-AppointmentService/internal/api/middleware"
	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
	slotsService "github.com/m04kA/Clinic-AppointmentService/internal/service/slots"
	"github.com/m04kA/Clinic-AppointmentService/internal/service/slots/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgDoctorNotFound     = "врач не найден"
	msgNotADoctor         = "целевой пользователь не является врачом"
	msgInvalidInput       = "некорректные параметры переназначения"
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

// Handle POST /api/v1/specialties/reassign
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	role, _ := middleware.GetUserRole(r.Context())
	if role != domain.RoleAdmin {
		handlers.RespondForbidden(w, msgAdminOnly)
		return
	}

	var req models.ReassignRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /specialties/reassign - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ReassignSpecialty(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, slotsService.ErrDoctorNotFound):
			h.logger.Warn("POST /specialties/reassign - doctor id=%d not found", req.DoctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, slotsService.ErrNotADoctor):
			h.logger.Warn("POST /specialties/reassign - user id=%d is not a doctor", req.DoctorID)
			handlers.RespondBadRequest(w, msgNotADoctor)

		case errors.Is(err, slotsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /specialties/reassign - failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /specialties/reassign - %d slots of %q moved to doctor=%d",
		result.Updated, req.Specialty, req.DoctorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
