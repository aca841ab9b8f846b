// Package lock сериализует операции записи по мастеру: проверка доступности
// и запись выполняются, пока удерживается блокировка мастера.
package lock

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// LocalLocker блокировки мастеров внутри одного процесса.
// Для каждого мастера хранится семафор на один слот, запись удаляется,
// когда его никто не ждет.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[int64]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

// NewLocalLocker создает блокировщик в памяти процесса
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[int64]*slot)}
}

// Lock захватывает блокировки всех переданных мастеров в порядке возрастания ID.
// Возвращенную функцию unlock нужно вызвать ровно один раз.
func (l *LocalLocker) Lock(ctx context.Context, workerIDs ...int64) (func(), error) {
	ids := normalize(workerIDs)
	acquired := make([]int64, 0, len(ids))

	release := func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			l.release(acquired[i])
		}
	}

	for _, id := range ids {
		if err := l.acquire(ctx, id); err != nil {
			release()
			return nil, err
		}
		acquired = append(acquired, id)
	}

	var once sync.Once
	return func() { once.Do(release) }, nil
}

func (l *LocalLocker) acquire(ctx context.Context, workerID int64) error {
	l.mu.Lock()
	s, ok := l.slots[workerID]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[workerID] = s
	}
	s.refs++
	l.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		l.unref(workerID, s)
		return fmt.Errorf("%w: worker=%d: %v", ErrLockTimeout, workerID, ctx.Err())
	}
}

func (l *LocalLocker) release(workerID int64) {
	l.mu.Lock()
	s := l.slots[workerID]
	l.mu.Unlock()

	<-s.ch
	l.unref(workerID, s)
}

func (l *LocalLocker) unref(workerID int64, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(l.slots, workerID)
	}
}

// normalize сортирует ID и убирает дубликаты, чтобы два запроса
// на одних и тех же мастеров не взяли блокировки в разном порядке
func normalize(workerIDs []int64) []int64 {
	ids := make([]int64, 0, len(workerIDs))
	seen := make(map[int64]struct{}, len(workerIDs))
	for _, id := range workerIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
