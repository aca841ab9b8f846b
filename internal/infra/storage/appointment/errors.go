package appointment

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL, которые репозиторий различает
const (
	pgUniqueViolation      pq.ErrorCode = "23505"
	pgForeignKeyViolation  pq.ErrorCode = "23503"
	pgCheckViolation       pq.ErrorCode = "23514"
	pgExclusionViolation   pq.ErrorCode = "23P01"
	pgSerializationFailure pq.ErrorCode = "40001"
	pgDeadlockDetected     pq.ErrorCode = "40P01"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrConflict возвращается, когда запись отклонена ограничением БД:
	// исключающим ограничением на пересечение интервалов мастера,
	// уникальностью или конфликтом сериализации
	ErrConflict = errors.New("appointment.repository: conflicting appointment")

	// ErrReferenceNotFound возвращается, когда клиент или услуга, на которые ссылается запись, не существуют
	ErrReferenceNotFound = errors.New("appointment.repository: referenced entity not found")

	// ErrInvalidInterval возвращается, когда end_at не позже start_at
	ErrInvalidInterval = errors.New("appointment.repository: invalid interval")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)

// classifyWriteError переводит ошибки PostgreSQL при записи в ошибки репозитория
func classifyWriteError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgExclusionViolation, pgUniqueViolation, pgSerializationFailure, pgDeadlockDetected:
			return fmt.Errorf("%w: %s - %s (%s)", ErrConflict, op, pqErr.Message, pqErr.Constraint)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s - %s", ErrReferenceNotFound, op, pqErr.Constraint)
		case pgCheckViolation:
			return fmt.Errorf("%w: %s - %s", ErrInvalidInterval, op, pqErr.Constraint)
		}
	}
	return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
}

// classifyReadError отделяет конфликт сериализации при чтении с блокировкой от прочих ошибок
func classifyReadError(sentinel error, op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && (pqErr.Code == pgSerializationFailure || pqErr.Code == pgDeadlockDetected) {
		return fmt.Errorf("%w: %s - %s", ErrConflict, op, pqErr.Message)
	}
	return fmt.Errorf("%w: %s: %v", sentinel, op, err)
}
