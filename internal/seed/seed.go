// Пакет seed — демонстрационные данные goresto.
// Сервис работает целиком на mock-данных: справочник пользователей,
// меню из девяти позиций и историческая выборка заказов загружаются
// в in-memory репозитории при старте.
package seed

import (
	"time"

	"github.com/bigkaa/goresto/internal/domain/model"
	"github.com/bigkaa/goresto/internal/domain/roles"
)

// Users возвращает демонстрационный справочник пользователей —
// по одному на каждую роль.
func Users() []*model.User {
	return []*model.User{
		{
			ID:      1,
			Name:    "Alice Customer",
			Email:   "customer@example.com",
			Role:    roles.RoleCustomer,
			Phone:   "123-456-7890",
			Address: "123 Maple St, Springfield",
		},
		{
			ID:      2,
			Name:    "Bob Staff",
			Email:   "staff@example.com",
			Role:    roles.RoleStaff,
			Phone:   "234-567-8901",
			Address: "456 Oak Ave, Shelbyville",
		},
		{
			ID:      3,
			Name:    "Janani Sree",
			Email:   "admin@example.com",
			Role:    roles.RoleAdmin,
			Phone:   "345-678-9012",
			Address: "789 Pine Ln, Capital City",
		},
		{
			ID:      4,
			Name:    "Hari",
			Email:   "superadmin@example.com",
			Role:    roles.RoleSuperadmin,
			Phone:   "456-789-0123",
			Address: "101 Main Blvd, Metropolis",
		},
	}
}

// Menu возвращает демонстрационное меню ресторана.
// Цены — в минорных единицах валюты.
func Menu() []*model.Dish {
	return []*model.Dish{
		{
			ID:          1,
			Name:        "Quinoa & Avocado Salad",
			Description: "A vibrant mix of organic quinoa, avocado, cherry tomatoes, and a zesty lemon-tahini dressing. A healthy and refreshing starter.",
			Price:       1160,
			Category:    model.CategoryAppetizer,
			ImageURL:    "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?q=80&w=870&auto=format&fit=crop",
			Rating:      4.8,
			Reviews:     125,
		},
		{
			ID:          2,
			Name:        "Grilled Salmon Steak",
			Description: "Perfectly grilled salmon fillet with a citrus glaze, served with asparagus and roasted potatoes.",
			Price:       2240,
			Category:    model.CategoryMainCourse,
			ImageURL:    "https://images.unsplash.com/photo-1519708227418-c8fd9a32b7a2?q=80&w=870&auto=format&fit=crop",
			Rating:      4.9,
			Reviews:     210,
		},
		{
			ID:          3,
			Name:        "Savory Ramen Noodles",
			Description: "A delicious bowl of handmade noodles in a savory broth, topped with tender pork belly, a soft-boiled egg, and fresh scallions.",
			Price:       1820,
			Category:    model.CategoryMainCourse,
			ImageURL:    "https://images.unsplash.com/photo-1552611052-33e04de081de?q=80&w=764&auto=format&fit=crop",
			Rating:      4.7,
			Reviews:     180,
		},
		{
			ID:          4,
			Name:        "Chocolate Lava Cake",
			Description: "A decadent chocolate cake with a molten lava center, served with a scoop of vanilla bean ice cream and a raspberry coulis.",
			Price:       960,
			Category:    model.CategoryDessert,
			ImageURL:    "https://images.unsplash.com/photo-1586985289936-e04c07238918?q=80&w=774&auto=format&fit=crop",
			Rating:      5.0,
			Reviews:     350,
		},
		{
			ID:          5,
			Name:        "Classic Tomato Bruschetta",
			Description: "Toasted artisan bread topped with a mix of fresh tomatoes, garlic, basil, and a drizzle of balsamic glaze.",
			Price:       900,
			Category:    model.CategoryAppetizer,
			ImageURL:    "https://images.unsplash.com/photo-1505253716362-afb54249332f?q=80&w=870&auto=format&fit=crop",
			Rating:      4.6,
			Reviews:     95,
		},
		{
			ID:          6,
			Name:        "Chicken Caesar Salad",
			Description: "Crisp romaine lettuce, parmesan cheese, and crunchy croutons tossed in our signature Caesar dressing. Topped with grilled chicken.",
			Price:       1200,
			Category:    model.CategoryAppetizer,
			ImageURL:    "https://images.unsplash.com/photo-1550304943-4f24f54ddde9?q=80&w=870&auto=format&fit=crop",
			Rating:      4.5,
			Reviews:     150,
		},
		{
			ID:          7,
			Name:        "Prime Ribeye Steak",
			Description: "A 12oz prime ribeye steak, cooked to perfection, served with a side of garlic mashed potatoes and seasonal vegetables.",
			Price:       3640,
			Category:    model.CategoryMainCourse,
			ImageURL:    "https://images.unsplash.com/photo-1551028150-64b9f398f67b?q=80&w=870&auto=format&fit=crop",
			Rating:      4.9,
			Reviews:     250,
		},
		{
			ID:          8,
			Name:        "Fresh Mint Mojito",
			Description: "A refreshing blend of white rum, fresh mint, lime juice, sugar, and a splash of soda water. The perfect cocktail.",
			Price:       1040,
			Category:    model.CategoryBeverage,
			ImageURL:    "https://images.unsplash.com/photo-1604323223639-2a0914f6b0b2?q=80&w=774&auto=format&fit=crop",
			Rating:      4.8,
			Reviews:     88,
		},
		{
			ID:          9,
			Name:        "Italian Tiramisu",
			Description: "Classic Italian dessert with layers of coffee-soaked ladyfingers and creamy mascarpone, dusted with cocoa powder.",
			Price:       920,
			Category:    model.CategoryDessert,
			ImageURL:    "https://images.unsplash.com/photo-1571683407094-c14b5397a688?q=80&w=774&auto=format&fit=crop",
			Rating:      4.9,
			Reviews:     190,
		},
	}
}

// AppRoles возвращает стартовый список демонстрационного CRUD
// «управление ролями». Список развязан с перечислением roles.Role.
func AppRoles() []*model.AppRole {
	return []*model.AppRole{
		{ID: 1, Name: "Customer"},
		{ID: 2, Name: "Staff"},
		{ID: 3, Name: "Admin"},
		{ID: 4, Name: "Super Admin"},
	}
}

// Orders возвращает историческую выборку заказов для дашбордов
// и истории заказов. Заказы оформлены демонстрационным customer.
func Orders() []*model.Order {
	menu := Menu()
	dish := func(id int64) model.Dish {
		for _, d := range menu {
			if d.ID == id {
				return *d
			}
		}
		return model.Dish{}
	}

	mk := func(id string, status model.OrderStatus, placed string, lines ...model.CartLine) *model.Order {
		orderDate, _ := time.Parse(time.RFC3339, placed)
		var total int64
		for _, l := range lines {
			total += l.Dish.Price * int64(l.Quantity)
		}
		return &model.Order{
			ID:                id,
			UserID:            1,
			Items:             lines,
			Total:             total,
			Status:            status,
			PlacedBy:          roles.RoleCustomer,
			OrderDate:         orderDate,
			EstimatedDelivery: orderDate.Add(45 * time.Minute),
		}
	}

	return []*model.Order{
		mk("a1b2c3d4", model.StatusDelivered, "2024-07-20T19:30:00Z",
			model.CartLine{Dish: dish(2), Quantity: 2},
			model.CartLine{Dish: dish(8), Quantity: 1},
		),
		mk("e5f6g7h8", model.StatusCancelled, "2024-07-20T12:10:00Z",
			model.CartLine{Dish: dish(3), Quantity: 1},
		),
		mk("i9j0k1l2", model.StatusDelivered, "2024-07-19T21:05:00Z",
			model.CartLine{Dish: dish(4), Quantity: 1},
			model.CartLine{Dish: dish(9), Quantity: 1},
		),
		mk("m3n4o5p6", model.StatusDelivered, "2024-07-18T13:00:00Z",
			model.CartLine{Dish: dish(1), Quantity: 1},
		),
		mk("q7r8s9t0", model.StatusDelivered, "2024-07-17T18:45:00Z",
			model.CartLine{Dish: dish(5), Quantity: 2},
		),
		mk("u1v2w3x4", model.StatusDelivered, "2024-07-16T20:00:00Z",
			model.CartLine{Dish: dish(6), Quantity: 1},
			model.CartLine{Dish: dish(7), Quantity: 1},
		),
		mk("y5z6a7b8", model.StatusCancelled, "2024-07-15T11:20:00Z",
			model.CartLine{Dish: dish(2), Quantity: 1},
		),
	}
}
