package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker_SerializesSameWorker(t *testing.T) {
	locker := NewLocalLocker()

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(context.Background(), 5)
			if !assert.NoError(t, err) {
				return
			}
			defer unlock()

			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.Empty(t, locker.slots, "slots are removed once nobody holds them")
}

func TestLocalLocker_DifferentWorkersDoNotBlock(t *testing.T) {
	locker := NewLocalLocker()

	unlock5, err := locker.Lock(context.Background(), 5)
	require.NoError(t, err)
	defer unlock5()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	unlock6, err := locker.Lock(ctx, 6)
	require.NoError(t, err)
	unlock6()
}

func TestLocalLocker_ContextCancelled(t *testing.T) {
	locker := NewLocalLocker()

	unlock, err := locker.Lock(context.Background(), 5)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = locker.Lock(ctx, 7, 5)
	assert.ErrorIs(t, err, ErrLockTimeout)

	// 7 отпущен после неудачи на 5
	unlock7, err := locker.Lock(context.Background(), 7)
	require.NoError(t, err)
	unlock7()

	unlock()
	unlock() // повторный вызов ничего не делает
	assert.Empty(t, locker.slots)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, []int64{3, 5, 9}, normalize([]int64{9, 5, 3, 5}))
	assert.Empty(t, normalize(nil))
}
