package create_appointment_with_client

import "errors"

var (
	// ErrClientBlocked возвращается, когда телефон клиента в черном списке
	ErrClientBlocked = errors.New("create_appointment_with_client: client is blocked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment_with_client: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment_with_client: internal error")
)
