package catalog

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-QueueService/pkg/dbmetrics"
)

func TestRepository_GetDuration(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT duration_minutes FROM services WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"duration_minutes"}).AddRow(30))

	duration, err := repo.GetDuration(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 30, duration)

	mock.ExpectQuery("SELECT duration_minutes FROM services").
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"duration_minutes"}))

	_, err = repo.GetDuration(context.Background(), 4)
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil))
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM services WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "duration_minutes", "price", "created_at", "updated_at"}).
			AddRow(int64(3), "Стрижка", 30, 1500.0, now, now))

	service, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Стрижка", service.Name)
	assert.Equal(t, 30, service.DurationMinutes)
	assert.Equal(t, now, service.CreatedAt)
}
