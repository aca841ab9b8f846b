package lock

import "errors"

var (
	// ErrLockTimeout возвращается, если блокировку не удалось получить до отмены контекста
	ErrLockTimeout = errors.New("lock: failed to acquire worker lock")

	// ErrLockBackend возвращается при ошибке хранилища блокировок (redis)
	ErrLockBackend = errors.New("lock: backend error")
)
