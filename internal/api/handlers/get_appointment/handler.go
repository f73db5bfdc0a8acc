package get_appointment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Dramanable/rv-server-sub004/internal/api/handlers"
	"github.com/Dramanable/rv-server-sub004/internal/service/appointments"
	"github.com/Dramanable/rv-server-sub004/internal/service/appointments/models"
)

const (
	msgInvalidID           = "некорректный идентификатор бронирования"
	msgAppointmentNotFound = "бронирование не найдено"
)

// Handler обрабатывает получение бронирования по ID
type Handler struct {
	service AppointmentService
	logger  Logger
}

// New создает новый обработчик получения бронирования
func New(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle обрабатывает GET /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id, err := uuid.Parse(vars["appointmentId"])
	if err != nil {
		h.logger.Warn("[get_appointment] invalid appointment id %q: %v", vars["appointmentId"], err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	appt, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)
		default:
			h.logger.Error("[get_appointment] internal error: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromDomainAppointment(appt))
}
