package client

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-QueueService/internal/domain"
	"github.com/m04kA/SMC-QueueService/pkg/dbmetrics"
)

func TestRepository_GetByPhone(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil))
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM clients WHERE phone = $1")).
		WithArgs("+992900000001").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone", "blocked", "created_at", "updated_at"}).
			AddRow(int64(7), "Али", "+992900000001", false, now, now))

	c, err := repo.GetByPhone(context.Background(), "+992900000001")
	require.NoError(t, err)
	assert.Equal(t, int64(7), c.ID)
	assert.False(t, c.Blocked)

	mock.ExpectQuery("FROM clients").
		WithArgs("+992900000002").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone", "blocked", "created_at", "updated_at"}))

	_, err = repo.GetByPhone(context.Background(), "+992900000002")
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil))
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO clients (name,phone,blocked) VALUES ($1,$2,$3) RETURNING id, created_at, updated_at")).
		WithArgs("Али", "+992900000001", false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(8), now, now))

	c, err := repo.Create(context.Background(), &domain.Client{Name: "Али", Phone: "+992900000001"})
	require.NoError(t, err)
	assert.Equal(t, int64(8), c.ID)

	mock.ExpectQuery("INSERT INTO clients").
		WillReturnError(&pq.Error{Code: pgUniqueViolation})

	_, err = repo.Create(context.Background(), &domain.Client{Name: "Али", Phone: "+992900000001"})
	assert.ErrorIs(t, err, ErrDuplicatePhone)
}
