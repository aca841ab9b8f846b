package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("service not found")

	// ErrWorkerNotFound возвращается, когда мастер не существует или в архиве
	ErrWorkerNotFound = errors.New("worker not found")

	// ErrReferenceNotFound возвращается, когда клиент или услуга записи удалены из БД
	ErrReferenceNotFound = errors.New("referenced client or service not found")

	// ErrConflict возвращается, когда интервал пересекается с другой записью мастера
	ErrConflict = errors.New("an appointment already exists for this time")

	// ErrForbidden возвращается, когда у пользователя нет прав на операцию
	ErrForbidden = errors.New("access denied")

	// ErrAppointmentFinished оборачивает ErrForbidden: удалять оконченные записи может только администратор
	ErrAppointmentFinished = errors.New("appointment already finished")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
