package hours

import "github.com/autoshop/garage-booking/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
