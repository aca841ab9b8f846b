package availability

import "errors"

var (
	// ErrInvalidInterval возвращается, если конец интервала не позже начала
	ErrInvalidInterval = errors.New("availability: end must be after start")

	// ErrInternal возвращается при ошибках чтения записей
	ErrInternal = errors.New("availability: internal error")
)
