package lock

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultRetryInterval = 25 * time.Millisecond

// unlockScript удаляет ключ, только если он всё ещё принадлежит владельцу токена
var unlockScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

// RedisLocker блокировки мастеров, общие для нескольких экземпляров сервиса.
// Каждый ключ ставится через SET NX PX с уникальным токеном владельца,
// TTL ограничивает время жизни блокировки упавшего экземпляра.
type RedisLocker struct {
	client        *redis.Client
	prefix        string
	ttl           time.Duration
	retryInterval time.Duration
}

// NewRedisLocker создает распределенный блокировщик
func NewRedisLocker(client *redis.Client, prefix string, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		client:        client,
		prefix:        prefix,
		ttl:           ttl,
		retryInterval: defaultRetryInterval,
	}
}

// Lock захватывает блокировки мастеров в порядке возрастания ID, повторяя
// попытки до отмены контекста
func (l *RedisLocker) Lock(ctx context.Context, workerIDs ...int64) (func(), error) {
	ids := normalize(workerIDs)
	token := uuid.NewString()
	acquired := make([]string, 0, len(ids))

	release := func() {
		// Снимаем блокировки даже если контекст запроса уже отменен
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		for i := len(acquired) - 1; i >= 0; i-- {
			_ = unlockScript.Run(releaseCtx, l.client, []string{acquired[i]}, token).Err()
		}
	}

	for _, id := range ids {
		key := l.key(id)
		if err := l.acquire(ctx, key, token); err != nil {
			release()
			return nil, fmt.Errorf("%w: worker=%d", err, id)
		}
		acquired = append(acquired, key)
	}

	var once sync.Once
	return func() { once.Do(release) }, nil
}

func (l *RedisLocker) acquire(ctx context.Context, key, token string) error {
	ticker := time.NewTicker(l.retryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("%w: %v", ErrLockTimeout, ctx.Err())
			}
			return fmt.Errorf("%w: %v", ErrLockBackend, err)
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrLockTimeout, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) key(workerID int64) string {
	return l.prefix + ":worker:" + strconv.FormatInt(workerID, 10)
}
