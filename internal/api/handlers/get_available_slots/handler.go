package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Dramanable/rv-server-sub004/internal/api/handlers"
	generateSlots "github.com/Dramanable/rv-server-sub004/internal/usecase/generate_slots"
)

const (
	msgInvalidParams    = "некорректные параметры запроса"
	msgCalendarNotFound = "календарь не найден"
	msgServiceNotFound  = "услуга не найдена"
)

// Handler обрабатывает получение доступных слотов
type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

// New создает новый обработчик слотов
func New(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle обрабатывает GET /api/v1/calendars/{calendarId}/available-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	req, err := ParseRequest(r, vars["calendarId"])
	if err != nil {
		h.logger.Warn("[get_available_slots] invalid request params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrInvalidInput):
			h.logger.Warn("[get_available_slots] validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
		case errors.Is(err, generateSlots.ErrCalendarNotFound):
			handlers.RespondNotFound(w, msgCalendarNotFound)
		case errors.Is(err, generateSlots.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)
		default:
			h.logger.Error("[get_available_slots] internal error: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
