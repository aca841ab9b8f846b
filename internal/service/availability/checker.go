// Package availability отвечает на вопрос, свободен ли мастер в интервале [startAt, endAt)
package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-QueueService/internal/domain"
)

// Checker проверяет, что интервал не пересекается с записями мастера.
// Вызывается внутри транзакции записи, тогда найденные строки блокируются.
type Checker struct {
	repo AppointmentRepository
}

// NewChecker создает новый экземпляр проверки доступности
func NewChecker(repo AppointmentRepository) *Checker {
	return &Checker{repo: repo}
}

// IsAvailable возвращает true, если у мастера нет записей, пересекающих [startAt, endAt).
// excludeID исключает одну запись (саму себя при переносе).
// Записи, касающиеся интервала концом или началом, конфликтом не считаются.
func (c *Checker) IsAvailable(ctx context.Context, workerID int64, startAt, endAt time.Time, excludeID *int64) (bool, error) {
	if !endAt.After(startAt) {
		return false, fmt.Errorf("%w: start=%s, end=%s", ErrInvalidInterval,
			startAt.Format(domain.DateTimeFormat), endAt.Format(domain.DateTimeFormat))
	}

	existing, err := c.repo.FindMany(ctx, domain.AppointmentFilter{
		WorkerID:  &workerID,
		ExcludeID: excludeID,
		DateFrom:  &startAt,
		DateTo:    &endAt,
	})
	if err != nil {
		return false, fmt.Errorf("%w: find overlapping: %w", ErrInternal, err)
	}

	for _, a := range existing {
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		if a.WorkerID == workerID && a.OverlapsWith(startAt, endAt) {
			return false, nil
		}
	}

	return true, nil
}
