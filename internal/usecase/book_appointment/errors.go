package book_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_appointment: invalid input data")

	// ErrStartInPast возвращается, когда начало бронирования не в будущем
	ErrStartInPast = errors.New("book_appointment: start time is in the past")

	// ErrInsufficientNotice возвращается, когда до начала меньше минимального
	// времени предуведомления (отличается от ErrStartInPast)
	ErrInsufficientNotice = errors.New("book_appointment: insufficient booking notice")

	// ErrSlotConflict возвращается, когда интервал пересекается с существующим бронированием
	ErrSlotConflict = errors.New("book_appointment: time slot conflicts with an existing appointment")

	// ErrBusinessNotFound возвращается, когда компания не найдена
	ErrBusinessNotFound = errors.New("book_appointment: business not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("book_appointment: service not found")

	// ErrCalendarNotFound возвращается, когда календарь не найден
	ErrCalendarNotFound = errors.New("book_appointment: calendar not found")

	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("book_appointment: staff member not found")

	// ErrBusinessInactive возвращается, когда компания деактивирована
	ErrBusinessInactive = errors.New("book_appointment: business is not active")

	// ErrServiceInactive возвращается, когда услуга деактивирована
	ErrServiceInactive = errors.New("book_appointment: service is not active")

	// ErrServiceNotBookableOnline возвращается, когда услуга не разрешена
	// для онлайн-бронирования (только очная/ручная запись)
	ErrServiceNotBookableOnline = errors.New("book_appointment: service is not bookable online")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)
