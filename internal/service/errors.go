// errors.go — ошибки бизнес-логики сервисного слоя.
package service

import "errors"

var (
	// ErrNotFound — ресурс не найден.
	ErrNotFound = errors.New("ресурс не найден")
	// ErrConflict — конфликт (дублирующийся ресурс).
	ErrConflict = errors.New("конфликт — ресурс уже существует")
	// ErrEmptyCart — попытка оформить заказ из пустой корзины.
	ErrEmptyCart = errors.New("корзина пуста")
	// ErrForbidden — доступ к чужому заказу запрещён.
	ErrForbidden = errors.New("доступ к чужому заказу запрещён")
	// ErrOrderFinal — заказ уже в конечном статусе, отмена невозможна.
	ErrOrderFinal = errors.New("заказ уже в конечном статусе")
	// ErrValidation — ошибка валидации входных данных.
	ErrValidation = errors.New("ошибка валидации")
)
