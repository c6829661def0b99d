package slot

import "github.com/m04kA/SMC-FieldBookingService/pkg/txmanager"

// DBExecutor общий интерфейс *sql.DB / *sql.Tx, репозиторий присоединяется
// к транзакции из контекста через txmanager.GetExecutor
type DBExecutor = txmanager.Executor
