package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда бронирование не найдено
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrStatusNotImplemented возвращается, когда запрошенный целевой статус
	// не покрыт таблицей переходов жизненного цикла
	ErrStatusNotImplemented = errors.New("appointments: status transition not implemented")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("appointments: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)
