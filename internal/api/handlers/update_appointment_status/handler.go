package update_appointment_status

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Dramanable/rv-server-sub004/internal/api/handlers"
	"github.com/Dramanable/rv-server-sub004/internal/domain"
	"github.com/Dramanable/rv-server-sub004/internal/service/appointments"
	"github.com/Dramanable/rv-server-sub004/internal/service/appointments/models"
)

const (
	msgInvalidID            = "некорректный идентификатор бронирования"
	msgInvalidBody          = "некорректное тело запроса"
	msgInvalidDetail        = "некорректное описание изменения статуса"
	msgUnknownStatus        = "неизвестный статус бронирования"
	msgAppointmentNotFound  = "бронирование не найдено"
	msgAlreadyInStatus      = "бронирование уже находится в запрошенном статусе"
	msgInvalidTransition    = "переход в запрошенный статус невозможен"
	msgStatusNotImplemented = "изменение на запрошенный статус не поддерживается"
)

// Handler обрабатывает изменение статуса бронирования
type Handler struct {
	service AppointmentService
	logger  Logger
}

// New создает новый обработчик изменения статуса
func New(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle обрабатывает PATCH /api/v1/appointments/{appointmentId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id, err := uuid.Parse(vars["appointmentId"])
	if err != nil {
		h.logger.Warn("[update_appointment_status] invalid appointment id %q: %v", vars["appointmentId"], err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("[update_appointment_status] failed to decode request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	target, err := domain.ParseStatus(req.Status)
	if err != nil {
		h.logger.Warn("[update_appointment_status] unknown status %q: %v", req.Status, err)
		handlers.RespondBadRequest(w, msgUnknownStatus)
		return
	}

	appt, err := h.service.UpdateStatus(r.Context(), id, target, req.Detail)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.logger.Info("[update_appointment_status] appointment %s is now %s", appt.ID, appt.Status)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainAppointment(appt))
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, appointments.ErrInvalidInput):
		h.logger.Warn("[update_appointment_status] invalid detail: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDetail)
	case errors.Is(err, appointments.ErrAppointmentNotFound):
		handlers.RespondNotFound(w, msgAppointmentNotFound)
	case errors.Is(err, domain.ErrAlreadyInStatus):
		handlers.RespondConflict(w, msgAlreadyInStatus)
	case errors.Is(err, domain.ErrInvalidTransition):
		handlers.RespondConflict(w, msgInvalidTransition)
	case errors.Is(err, appointments.ErrStatusNotImplemented):
		handlers.RespondBadRequest(w, msgStatusNotImplemented)
	default:
		h.logger.Error("[update_appointment_status] internal error: %v", err)
		handlers.RespondInternalError(w)
	}
}
