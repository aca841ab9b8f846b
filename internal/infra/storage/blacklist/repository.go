package blacklist

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-QueueService/pkg/dbmetrics"
	"github.com/m04kA/SMC-QueueService/pkg/psqlbuilder"
)

// Repository репозиторий черного списка телефонов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория черного списка
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// IsBlocked проверяет, находится ли телефон в черном списке
func (r *Repository) IsBlocked(ctx context.Context, phone string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	sub := psqlbuilder.Select("1").
		From("black_list").
		Where(squirrel.Eq{"phone": phone})

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr("EXISTS(?)", sub)).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsBlocked - build select query: %v", ErrBuildQuery, err)
	}

	var blocked bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&blocked); err != nil {
		return false, fmt.Errorf("%w: IsBlocked - scan result: %v", ErrScanRow, err)
	}

	return blocked, nil
}
