package book_appointment

import (
	"errors"
	"net/http"

	"github.com/Dramanable/rv-server-sub004/internal/api/handlers"
	bookAppointment "github.com/Dramanable/rv-server-sub004/internal/usecase/book_appointment"
)

const (
	msgInvalidBody        = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные бронирования"
	msgStartInPast        = "время начала записи уже прошло"
	msgInsufficientNotice = "до начала записи осталось меньше минимального времени предуведомления"
	msgSlotConflict       = "выбранный слот уже занят"
	msgBusinessNotFound   = "компания не найдена"
	msgServiceNotFound    = "услуга не найдена"
	msgCalendarNotFound   = "календарь не найден"
	msgStaffNotFound      = "сотрудник не найден"
	msgBusinessInactive   = "компания временно не принимает записи"
	msgServiceInactive    = "услуга недоступна для записи"
	msgNotBookableOnline  = "услуга недоступна для онлайн-записи"
)

// Handler обрабатывает создание бронирования
type Handler struct {
	useCase BookAppointmentUseCase
	logger  Logger
}

// New создает новый обработчик бронирования
func New(useCase BookAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle обрабатывает POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("[book_appointment] failed to decode request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	ucReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("[book_appointment] invalid request fields: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		h.respondUseCaseError(w, err)
		return
	}

	h.logger.Info("[book_appointment] appointment %s created in calendar %s",
		resp.Appointment.ID, resp.Appointment.CalendarID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp))
}

func (h *Handler) respondUseCaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, bookAppointment.ErrInvalidInput):
		h.logger.Warn("[book_appointment] validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
	case errors.Is(err, bookAppointment.ErrStartInPast):
		h.logger.Warn("[book_appointment] start in past: %v", err)
		handlers.RespondBadRequest(w, msgStartInPast)
	case errors.Is(err, bookAppointment.ErrInsufficientNotice):
		h.logger.Warn("[book_appointment] insufficient notice: %v", err)
		handlers.RespondBadRequest(w, msgInsufficientNotice)
	case errors.Is(err, bookAppointment.ErrSlotConflict):
		h.logger.Warn("[book_appointment] slot conflict: %v", err)
		handlers.RespondConflict(w, msgSlotConflict)
	case errors.Is(err, bookAppointment.ErrBusinessNotFound):
		handlers.RespondNotFound(w, msgBusinessNotFound)
	case errors.Is(err, bookAppointment.ErrServiceNotFound):
		handlers.RespondNotFound(w, msgServiceNotFound)
	case errors.Is(err, bookAppointment.ErrCalendarNotFound):
		handlers.RespondNotFound(w, msgCalendarNotFound)
	case errors.Is(err, bookAppointment.ErrStaffNotFound):
		handlers.RespondNotFound(w, msgStaffNotFound)
	case errors.Is(err, bookAppointment.ErrBusinessInactive):
		handlers.RespondBadRequest(w, msgBusinessInactive)
	case errors.Is(err, bookAppointment.ErrServiceInactive):
		handlers.RespondBadRequest(w, msgServiceInactive)
	case errors.Is(err, bookAppointment.ErrServiceNotBookableOnline):
		handlers.RespondBadRequest(w, msgNotBookableOnline)
	default:
		h.logger.Error("[book_appointment] internal error: %v", err)
		handlers.RespondInternalError(w)
	}
}
