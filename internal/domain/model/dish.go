package model

// Категории блюд каталога.
const (
	CategoryAppetizer  = "Appetizer"
	CategoryMainCourse = "Main Course"
	CategoryDessert    = "Dessert"
	CategoryBeverage   = "Beverage"
)

// Categories возвращает все категории каталога в порядке отображения меню.
func Categories() []string {
	return []string{CategoryAppetizer, CategoryMainCourse, CategoryDessert, CategoryBeverage}
}

// Dish — позиция каталога (неизменяемая для корзины: строка корзины
// хранит снимок блюда на момент добавления).
type Dish struct {
	// ID — уникальный идентификатор блюда.
	ID int64 `json:"id"`
	// Name — название блюда.
	Name string `json:"name"`
	// Description — описание.
	Description string `json:"description"`
	// Price — цена в минорных единицах валюты.
	Price int64 `json:"price"`
	// Category — категория (Appetizer, Main Course, Dessert, Beverage).
	Category string `json:"category"`
	// ImageURL — ссылка на изображение.
	ImageURL string `json:"image_url"`
	// Rating — средний рейтинг (0.0–5.0).
	Rating float64 `json:"rating"`
	// Reviews — количество отзывов.
	Reviews int `json:"reviews"`
}

// IsValidCategory проверяет, является ли строка допустимой категорией.
func IsValidCategory(c string) bool {
	switch c {
	case CategoryAppetizer, CategoryMainCourse, CategoryDessert, CategoryBeverage:
		return true
	default:
		return false
	}
}
