package model

import (
	"errors"
	"testing"
)

func testDish(id int64, price int64) Dish {
	return Dish{
		ID:       id,
		Name:     "Блюдо",
		Price:    price,
		Category: CategoryMainCourse,
	}
}

func TestCart_AddItem_MergeByID(t *testing.T) {
	c := NewCart()

	if err := c.AddItem(testDish(1, 100), 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := c.AddItem(testDish(1, 100), 3); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if len(c.Lines) != 1 {
		t.Fatalf("строк: %d, ожидали 1 (merge по dish id)", len(c.Lines))
	}
	if c.Lines[0].Quantity != 5 {
		t.Errorf("quantity = %d, хотели 5 (сумма добавлений)", c.Lines[0].Quantity)
	}
}

func TestCart_AddItem_InsertionOrder(t *testing.T) {
	c := NewCart()
	_ = c.AddItem(testDish(3, 10), 1)
	_ = c.AddItem(testDish(1, 20), 1)
	_ = c.AddItem(testDish(2, 30), 1)
	_ = c.AddItem(testDish(1, 20), 1) // merge не меняет позицию

	want := []int64{3, 1, 2}
	if len(c.Lines) != len(want) {
		t.Fatalf("строк: %d, ожидали %d", len(c.Lines), len(want))
	}
	for i, id := range want {
		if c.Lines[i].Dish.ID != id {
			t.Errorf("Lines[%d].Dish.ID = %d, хотели %d (порядок вставки)", i, c.Lines[i].Dish.ID, id)
		}
	}
}

func TestCart_AddItem_InvalidQuantity(t *testing.T) {
	c := NewCart()

	for _, qty := range []int{0, -1, -100} {
		if err := c.AddItem(testDish(1, 100), qty); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("AddItem(qty=%d): err = %v, хотели ErrInvalidQuantity", qty, err)
		}
	}
	if len(c.Lines) != 0 {
		t.Errorf("некорректное количество не должно менять корзину, строк: %d", len(c.Lines))
	}
}

func TestCart_RemoveItem(t *testing.T) {
	c := NewCart()
	_ = c.AddItem(testDish(1, 100), 1)
	_ = c.AddItem(testDish(2, 200), 1)

	c.RemoveItem(1)
	if len(c.Lines) != 1 || c.Lines[0].Dish.ID != 2 {
		t.Errorf("после RemoveItem(1) ожидали одну строку с id=2, получили %+v", c.Lines)
	}

	// Отсутствующий id — no-op, не ошибка
	c.RemoveItem(42)
	if len(c.Lines) != 1 {
		t.Errorf("RemoveItem несуществующего id изменил корзину: %+v", c.Lines)
	}
}

func TestCart_SetQuantity(t *testing.T) {
	t.Run("точная установка, не аддитивно", func(t *testing.T) {
		c := NewCart()
		_ = c.AddItem(testDish(1, 100), 5)

		c.SetQuantity(1, 2)
		if c.Lines[0].Quantity != 2 {
			t.Errorf("quantity = %d, хотели 2", c.Lines[0].Quantity)
		}
	})

	t.Run("ноль удаляет строку", func(t *testing.T) {
		c := NewCart()
		_ = c.AddItem(testDish(1, 100), 3)
		_ = c.AddItem(testDish(2, 200), 1)
		before := c.ItemCount()

		c.SetQuantity(1, 0)
		if len(c.Lines) != 1 {
			t.Fatalf("строк: %d, ожидали 1", len(c.Lines))
		}
		if got := before - c.ItemCount(); got != 3 {
			t.Errorf("ItemCount уменьшился на %d, хотели на 3 (прежнее количество строки)", got)
		}
	})

	t.Run("отрицательное количество удаляет строку", func(t *testing.T) {
		c := NewCart()
		_ = c.AddItem(testDish(1, 100), 3)

		c.SetQuantity(1, -1)
		if len(c.Lines) != 0 {
			t.Errorf("строк: %d, ожидали 0", len(c.Lines))
		}
	})

	t.Run("несуществующий id молча игнорируется", func(t *testing.T) {
		c := NewCart()
		_ = c.AddItem(testDish(1, 100), 1)

		c.SetQuantity(42, 7)
		if len(c.Lines) != 1 || c.Lines[0].Quantity != 1 {
			t.Errorf("SetQuantity несуществующего id изменил корзину: %+v", c.Lines)
		}
	})
}

func TestCart_DerivedValues(t *testing.T) {
	c := NewCart()
	_ = c.AddItem(testDish(1, 1160), 2)
	_ = c.AddItem(testDish(2, 900), 3)

	if got := c.ItemCount(); got != 5 {
		t.Errorf("ItemCount = %d, хотели 5", got)
	}
	if got, want := c.Total(), int64(2*1160+3*900); got != want {
		t.Errorf("Total = %d, хотели %d", got, want)
	}

	// Производные значения пересчитываются после мутации, а не кэшируются
	c.SetQuantity(2, 1)
	if got := c.ItemCount(); got != 3 {
		t.Errorf("ItemCount после мутации = %d, хотели 3", got)
	}
	if got, want := c.Total(), int64(2*1160+900); got != want {
		t.Errorf("Total после мутации = %d, хотели %d", got, want)
	}

	c.Clear()
	if c.ItemCount() != 0 || c.Total() != 0 {
		t.Errorf("после Clear: ItemCount = %d, Total = %d, ожидали нули", c.ItemCount(), c.Total())
	}
}
