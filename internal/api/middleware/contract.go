package middleware

import "github.com/m04kA/SMC-QueueService/pkg/auth"

// TokenParser проверяет bearer токен (*auth.Verifier)
type TokenParser interface {
	Parse(tokenStr string) (*auth.Claims, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
