// cart.go — корзина и её строки.
//
// Инварианты:
//   - не более одной строки на dish id; повторное добавление суммирует количество
//   - порядок строк — порядок первого добавления
//   - ItemCount и Total — производные величины, пересчитываются при каждом
//     обращении и нигде не кэшируются
package model

import "errors"

// ErrInvalidQuantity — количество должно быть положительным целым.
var ErrInvalidQuantity = errors.New("количество должно быть положительным")

// CartLine — одна строка корзины: снимок блюда и количество.
type CartLine struct {
	// Dish — снимок позиции каталога на момент добавления.
	Dish Dish `json:"dish"`
	// Quantity — количество (целое ≥ 1).
	Quantity int `json:"quantity"`
}

// Cart — упорядоченная последовательность строк корзины.
// Не потокобезопасна: экземпляр живёт в рамках одного запроса
// (загружается из cookie и сохраняется обратно после каждой мутации).
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// NewCart создаёт пустую корзину.
func NewCart() *Cart {
	return &Cart{Lines: []CartLine{}}
}

// AddItem добавляет блюдо в корзину.
// Если строка для dish.ID уже есть — увеличивает её количество на qty,
// иначе добавляет новую строку в конец (порядок вставки сохраняется).
// qty ≤ 0 отклоняется до записи в хранилище.
func (c *Cart) AddItem(dish Dish, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	for i := range c.Lines {
		if c.Lines[i].Dish.ID == dish.ID {
			c.Lines[i].Quantity += qty
			return nil
		}
	}
	c.Lines = append(c.Lines, CartLine{Dish: dish, Quantity: qty})
	return nil
}

// RemoveItem удаляет строку с указанным dish id.
// Отсутствие строки — не ошибка (no-op).
func (c *Cart) RemoveItem(dishID int64) {
	for i := range c.Lines {
		if c.Lines[i].Dish.ID == dishID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// SetQuantity устанавливает точное количество для строки (не аддитивно).
// qty ≤ 0 эквивалентно RemoveItem. Отсутствующий dish id молча
// игнорируется — решение зафиксировано в DESIGN.md.
func (c *Cart) SetQuantity(dishID int64, qty int) {
	if qty <= 0 {
		c.RemoveItem(dishID)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].Dish.ID == dishID {
			c.Lines[i].Quantity = qty
			return
		}
	}
}

// Clear опустошает корзину.
func (c *Cart) Clear() {
	c.Lines = []CartLine{}
}

// ItemCount возвращает суммарное количество позиций (сумма quantity).
func (c *Cart) ItemCount() int {
	total := 0
	for _, l := range c.Lines {
		total += l.Quantity
	}
	return total
}

// Total возвращает стоимость корзины: сумма price × quantity по строкам.
func (c *Cart) Total() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.Dish.Price * int64(l.Quantity)
	}
	return total
}
