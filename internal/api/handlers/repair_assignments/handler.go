package repair_assignments

import (
	"net/http"

	"github.com/m04kA/Clinic-AppointmentService/internal/api/handlers"
	"github.com/m04kA/Clinic-AppointmentService/internal/api/middleware"
	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
)

const (
	msgAdminOnly = "операция доступна только администратору"
)

// RepairResponse HTTP response model
type RepairResponse struct {
	Assigned int `json:"assigned"`
	Skipped  int `json:"skipped"`
}

type Handler struct {
	useCase RepairAssignmentsUseCase
	logger  Logger
}

func NewHandler(useCase RepairAssignmentsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/repair-assignments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	role, _ := middleware.GetUserRole(r.Context())
	if role != domain.RoleAdmin {
		handlers.RespondForbidden(w, msgAdminOnly)
		return
	}

	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("POST /slots/repair-assignments - failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /slots/repair-assignments - assigned=%d, skipped=%d",
		result.Assigned, result.Skipped)
	handlers.RespondJSON(w, http.StatusOK, &RepairResponse{
		Assigned: result.Assigned,
		Skipped:  result.Skipped,
	})
}
