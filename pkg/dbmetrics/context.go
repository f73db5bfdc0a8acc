package dbmetrics

import "context"

type executorKey struct{}

// WithExecutor кладет executor (обычно транзакцию) в контекст.
// Репозитории используют его вместо обычного соединения, если он присутствует.
func WithExecutor(ctx context.Context, executor DBExecutor) context.Context {
	return context.WithValue(ctx, executorKey{}, executor)
}

// GetExecutor возвращает executor из контекста или fallback, если в контексте его нет
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if executor, ok := ctx.Value(executorKey{}).(DBExecutor); ok && executor != nil {
		return executor
	}
	return fallback
}
