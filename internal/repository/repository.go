// Пакет repository — слой доступа к данным goresto.
// Сервис работает на mock-данных, поэтому все репозитории — in-memory
// (мьютекс + срез), персистентного хранилища нет. Контракт повторяет
// обычный слой репозиториев: интерфейс + невидимая реализация,
// сигнальные ошибки ErrNotFound/ErrConflict, пагинация limit/offset.
package repository

import "errors"

// Ошибки слоя репозиториев.
var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("запись не найдена")
	// ErrConflict — конфликт уникальности (дублирующийся ресурс).
	ErrConflict = errors.New("конфликт — запись уже существует")
)

// paginate возвращает границы страницы для среза длиной n.
// Отрицательный offset нормализуется в 0, limit ≤ 0 — «вся выборка».
func paginate(n, limit, offset int) (lo, hi int) {
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		return n, n
	}
	if limit <= 0 {
		return offset, n
	}
	hi = offset + limit
	if hi > n {
		hi = n
	}
	return offset, hi
}
