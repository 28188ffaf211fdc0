package model

// AppRole — запись демонстрационного CRUD «управление ролями»
// (superadmin). Список НЕ связан с закрытым перечислением roles.Role,
// которым руководствуется маршрутизатор: это отражение исходного
// приложения, где управление ролями — презентационная заглушка.
// Не подключать к реальной авторизации без пересмотра этой развязки.
type AppRole struct {
	// ID — идентификатор записи.
	ID int64 `json:"id"`
	// Name — отображаемое имя роли.
	Name string `json:"name"`
}
