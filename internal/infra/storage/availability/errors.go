package availability

import "errors"

var (
	// ErrTemplateNotFound возвращается, когда на день недели нет записи расписания
	ErrTemplateNotFound = errors.New("availability.repository: template not found")

	// ErrExceptionNotFound возвращается, когда на дату нет исключения
	ErrExceptionNotFound = errors.New("availability.repository: exception not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
