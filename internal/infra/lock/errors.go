package lock

import "errors"

var (
	// ErrNotAcquired возвращается, когда ключ уже заблокирован другим запросом
	ErrNotAcquired = errors.New("lock: already held")

	// ErrRedis возвращается при ошибках обращения к Redis
	ErrRedis = errors.New("lock: redis error")
)
