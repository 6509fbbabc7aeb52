package appointment

import "github.com/autoshop/garage-booking/pkg/dbmetrics"

// Переиспользуем интерфейс из dbmetrics; поддерживает *dbmetrics.DB и транзакцию из контекста
type DBExecutor = dbmetrics.DBExecutor
