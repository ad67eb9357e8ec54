package update_user_role

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Clinic-AppointmentService/internal/api/handlers"
	"github.com/m04kA/Clinic-AppointmentService/internal/api/middleware"
	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
	usersService "github.com/m04kA/Clinic-AppointmentService/internal/service/users"
	"github.com/m04kA/Clinic-AppointmentService/internal/service/users/models"
)

const (
	msgInvalidUserID      = "некорректный идентификатор пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUserNotFound       = "пользователь не найден"
	msgUnknownRole        = "неизвестная роль"
	msgLastAdmin          = "нельзя понизить последнего администратора"
	msgInvalidInput       = "некорректные параметры запроса"
	msgAdminOnly          = "операция доступна только администратору"
)

type Handler struct {
	service UsersService
	logger  Logger
}

func NewHandler(service UsersService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/users/{userId}/role
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	role, _ := middleware.GetUserRole(r.Context())
	if role != domain.RoleAdmin {
		handlers.RespondForbidden(w, msgAdminOnly)
		return
	}

	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil || userID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	var req models.ChangeRoleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /users/%d/role - invalid request body: %v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.ChangeRole(r.Context(), userID, &req); err != nil {
		switch {
		case errors.Is(err, usersService.ErrUserNotFound):
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, usersService.ErrUnknownRole):
			h.logger.Warn("PATCH /users/%d/role - unknown role %q", userID, req.Role)
			handlers.RespondBadRequest(w, msgUnknownRole)

		case errors.Is(err, usersService.ErrLastAdmin):
			h.logger.Warn("PATCH /users/%d/role - last admin guard triggered", userID)
			handlers.RespondError(w, http.StatusConflict, msgLastAdmin)

		case errors.Is(err, usersService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /users/%d/role - failed: %v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /users/%d/role - role changed to %q", userID, req.Role)
	handlers.RespondNoContent(w)
}
