package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-QueueService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-QueueService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-QueueService/pkg/logger"
)

type fakeRepo struct {
	services map[int64]*domain.Service
	calls    int
	err      error
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	s, ok := r.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

func TestService_GetDuration(t *testing.T) {
	repo := &fakeRepo{services: map[int64]*domain.Service{
		3: {ID: 3, Name: "Стрижка", DurationMinutes: 30},
		4: {ID: 4, Name: "Сломанная", DurationMinutes: 0},
	}}
	svc := NewService(repo, nil, logger.NewNop())

	duration, err := svc.GetDuration(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 30, duration)

	_, err = svc.GetDuration(context.Background(), 99)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = svc.GetDuration(context.Background(), 4)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestService_GetDuration_RepoFailure(t *testing.T) {
	svc := NewService(&fakeRepo{err: errors.New("connection refused")}, nil, logger.NewNop())

	_, err := svc.GetDuration(context.Background(), 3)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_Cache(t *testing.T) {
	repo := &fakeRepo{services: map[int64]*domain.Service{
		3: {ID: 3, Name: "Стрижка", DurationMinutes: 30, Price: 1500},
	}}
	svc := NewService(repo, NewCache(16, time.Minute), logger.NewNop())

	for i := 0; i < 3; i++ {
		resp, err := svc.GetByID(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, "Стрижка", resp.Name)
	}
	assert.Equal(t, 1, repo.calls)

	// промах не кешируется
	_, err := svc.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrServiceNotFound)
	_, err = svc.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.Equal(t, 3, repo.calls)
}

func TestService_DurationChange(t *testing.T) {
	tests := []struct {
		name  string
		cache *Cache
		want  int
	}{
		{"without cache sees change at once", nil, 45},
		{"cached value kept until ttl", NewCache(16, time.Minute), 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{services: map[int64]*domain.Service{
				3: {ID: 3, Name: "Стрижка", DurationMinutes: 30},
			}}
			svc := NewService(repo, tt.cache, logger.NewNop())

			_, err := svc.GetDuration(context.Background(), 3)
			require.NoError(t, err)

			repo.services[3] = &domain.Service{ID: 3, Name: "Стрижка", DurationMinutes: 45}

			duration, err := svc.GetDuration(context.Background(), 3)
			require.NoError(t, err)
			assert.Equal(t, tt.want, duration)
		})
	}
}
