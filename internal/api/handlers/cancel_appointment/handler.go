package cancel_appointment

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Dramanable/rv-server-sub004/internal/api/handlers"
	"github.com/Dramanable/rv-server-sub004/internal/domain"
	"github.com/Dramanable/rv-server-sub004/internal/service/appointments"
	"github.com/Dramanable/rv-server-sub004/internal/service/appointments/models"
)

const (
	msgInvalidID           = "некорректный идентификатор бронирования"
	msgInvalidBody         = "некорректное тело запроса"
	msgInvalidReason       = "некорректная причина отмены"
	msgAppointmentNotFound = "бронирование не найдено"
	msgAlreadyCancelled    = "бронирование уже отменено"
	msgCannotCancel        = "бронирование в текущем статусе отменить нельзя"
)

// Handler обрабатывает отмену бронирования
type Handler struct {
	service AppointmentService
	logger  Logger
}

// New создает новый обработчик отмены бронирования
func New(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle обрабатывает PATCH /api/v1/appointments/{appointmentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id, err := uuid.Parse(vars["appointmentId"])
	if err != nil {
		h.logger.Warn("[cancel_appointment] invalid appointment id %q: %v", vars["appointmentId"], err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	// тело запроса опционально: отмена возможна без причины
	var req CancelAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("[cancel_appointment] failed to decode request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	appt, err := h.service.Cancel(r.Context(), id, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("[cancel_appointment] invalid reason: %v", err)
			handlers.RespondBadRequest(w, msgInvalidReason)
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)
		case errors.Is(err, domain.ErrAlreadyInStatus):
			handlers.RespondConflict(w, msgAlreadyCancelled)
		case errors.Is(err, domain.ErrInvalidTransition):
			handlers.RespondConflict(w, msgCannotCancel)
		default:
			h.logger.Error("[cancel_appointment] internal error: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("[cancel_appointment] appointment %s cancelled", appt.ID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainAppointment(appt))
}
