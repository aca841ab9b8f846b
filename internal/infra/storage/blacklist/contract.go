package blacklist

import (
	"github.com/m04kA/SMC-QueueService/pkg/dbmetrics"
)

// DBExecutor интерфейс для выполнения запросов (БД или транзакция)
type DBExecutor = dbmetrics.DBExecutor
