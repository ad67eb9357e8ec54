package get_available_slots

import (
	"net/http"
	"time"

	"github.com/m04kA/Clinic-AppointmentService/internal/api/handlers"
	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
	"github.com/m04kA/Clinic-AppointmentService/internal/service/slots/models"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/slots/available?specialty=&date=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListAvailableRequest{}

	if specialty := r.URL.Query().Get("specialty"); specialty != "" {
		req.Specialty = &specialty
	}

	if rawDate := r.URL.Query().Get("date"); rawDate != "" {
		date, err := time.Parse(domain.DateFormat, rawDate)
		if err != nil {
			h.logger.Warn("GET /slots/available - invalid date %q: %v", rawDate, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	result, err := h.service.ListAvailable(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /slots/available - failed to list slots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
