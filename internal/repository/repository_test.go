package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bigkaa/goresto/internal/domain/model"
	"github.com/bigkaa/goresto/internal/domain/roles"
	"github.com/bigkaa/goresto/internal/seed"
)

func TestDishRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewDishRepository(seed.Menu())

	d, err := repo.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get(1): неожиданная ошибка: %v", err)
	}
	if d.Name == "" {
		t.Error("Get(1): пустое название блюда")
	}

	// Изменение копии не должно влиять на хранилище.
	d.Name = "изменено локально"
	again, _ := repo.Get(ctx, 1)
	if again.Name == "изменено локально" {
		t.Error("Get возвращает ссылку на внутренние данные вместо копии")
	}

	created := &model.Dish{Name: "Тестовое блюдо", Price: 999, Category: model.CategoryMainCourse}
	if err := repo.Create(ctx, created); err != nil {
		t.Fatalf("Create: неожиданная ошибка: %v", err)
	}
	if created.ID == 0 {
		t.Error("Create: ID не присвоен")
	}

	created.Price = 1099
	if err := repo.Update(ctx, created); err != nil {
		t.Fatalf("Update: неожиданная ошибка: %v", err)
	}
	got, _ := repo.Get(ctx, created.ID)
	if got.Price != 1099 {
		t.Errorf("Update: цена = %d, ожидалась 1099", got.Price)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: неожиданная ошибка: %v", err)
	}
	if _, err := repo.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get после Delete: ошибка = %v, ожидалась ErrNotFound", err)
	}
	if err := repo.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("повторный Delete: ошибка = %v, ожидалась ErrNotFound", err)
	}
}

func TestDishRepositoryList(t *testing.T) {
	ctx := context.Background()
	repo := NewDishRepository(seed.Menu())

	tests := []struct {
		name   string
		filter DishFilter
		check  func(t *testing.T, page []*model.Dish, total int)
	}{
		{
			name:   "без фильтра — весь каталог",
			filter: DishFilter{},
			check: func(t *testing.T, page []*model.Dish, total int) {
				if total != len(seed.Menu()) {
					t.Errorf("total = %d, ожидалось %d", total, len(seed.Menu()))
				}
			},
		},
		{
			name:   "фильтр по категории",
			filter: DishFilter{Category: model.CategoryDessert},
			check: func(t *testing.T, page []*model.Dish, total int) {
				for _, d := range page {
					if d.Category != model.CategoryDessert {
						t.Errorf("блюдо %q: категория %q", d.Name, d.Category)
					}
				}
			},
		},
		{
			name:   "поиск без учёта регистра",
			filter: DishFilter{Search: "SALAD"},
			check: func(t *testing.T, page []*model.Dish, total int) {
				if total != 2 {
					t.Errorf("поиск SALAD: total = %d, ожидалось 2", total)
				}
			},
		},
		{
			name:   "сортировка по возрастанию цены",
			filter: DishFilter{Sort: SortPriceAsc},
			check: func(t *testing.T, page []*model.Dish, total int) {
				for i := 1; i < len(page); i++ {
					if page[i].Price < page[i-1].Price {
						t.Errorf("нарушен порядок цен: %d после %d", page[i].Price, page[i-1].Price)
					}
				}
			},
		},
		{
			name:   "пагинация",
			filter: DishFilter{Limit: 3, Offset: 3},
			check: func(t *testing.T, page []*model.Dish, total int) {
				if len(page) != 3 {
					t.Errorf("страница = %d, ожидалось 3", len(page))
				}
				if total != len(seed.Menu()) {
					t.Errorf("total = %d, ожидалось %d", total, len(seed.Menu()))
				}
			},
		},
		{
			name:   "offset за пределами выборки",
			filter: DishFilter{Limit: 5, Offset: 1000},
			check: func(t *testing.T, page []*model.Dish, total int) {
				if len(page) != 0 {
					t.Errorf("страница = %d, ожидалась пустая", len(page))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, total, err := repo.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List: неожиданная ошибка: %v", err)
			}
			tt.check(t, page, total)
		})
	}
}

func TestUserRepositoryEmailUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(seed.Users())

	u, err := repo.GetByEmail(ctx, "CUSTOMER@EXAMPLE.COM")
	if err != nil {
		t.Fatalf("GetByEmail без учёта регистра: %v", err)
	}
	if u.Role != roles.RoleCustomer {
		t.Errorf("роль = %q, ожидалась %q", u.Role, roles.RoleCustomer)
	}

	dup := &model.User{Name: "Дубль", Email: "Customer@Example.com", Role: roles.RoleStaff}
	if err := repo.Create(ctx, dup); !errors.Is(err, ErrConflict) {
		t.Errorf("Create с дублирующимся email: ошибка = %v, ожидалась ErrConflict", err)
	}

	fresh := &model.User{Name: "Новый", Email: "new@example.com", Role: roles.RoleStaff}
	if err := repo.Create(ctx, fresh); err != nil {
		t.Fatalf("Create: %v", err)
	}
	fresh.Email = "customer@example.com"
	if err := repo.Update(ctx, fresh); !errors.Is(err, ErrConflict) {
		t.Errorf("Update на занятый email: ошибка = %v, ожидалась ErrConflict", err)
	}
}

func TestUserRepositoryListByRole(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(seed.Users())

	staff, total, err := repo.List(ctx, roles.RoleStaff, 0, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(staff) != 1 {
		t.Fatalf("List(staff): total = %d, len = %d, ожидалось 1/1", total, len(staff))
	}
	if staff[0].Role != roles.RoleStaff {
		t.Errorf("роль = %q, ожидалась %q", staff[0].Role, roles.RoleStaff)
	}

	all, total, err := repo.List(ctx, "", 0, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != len(seed.Users()) || len(all) != len(seed.Users()) {
		t.Errorf("List(все): total = %d, ожидалось %d", total, len(seed.Users()))
	}
}

func TestOrderRepositoryOrdering(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(seed.Orders())

	all, total, err := repo.List(ctx, 0, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != len(seed.Orders()) {
		t.Fatalf("total = %d, ожидалось %d", total, len(seed.Orders()))
	}
	for i := 1; i < len(all); i++ {
		if all[i].OrderDate.After(all[i-1].OrderDate) {
			t.Errorf("нарушен порядок: заказ %s новее предыдущего", all[i].ID)
		}
	}
}

func TestOrderRepositoryCreateAndStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(nil)

	o := &model.Order{
		ID:        "test-order-1",
		UserID:    1,
		Status:    model.StatusPlaced,
		OrderDate: time.Now(),
		Items: []model.CartLine{
			{Dish: model.Dish{ID: 1, Name: "Салат", Price: 1299}, Quantity: 2},
		},
		Total: 2598,
	}
	if err := repo.Create(ctx, o); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, o); !errors.Is(err, ErrConflict) {
		t.Errorf("повторный Create: ошибка = %v, ожидалась ErrConflict", err)
	}

	upd, err := repo.UpdateStatus(ctx, o.ID, model.StatusPreparing)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if upd.Status != model.StatusPreparing {
		t.Errorf("статус = %q, ожидался %q", upd.Status, model.StatusPreparing)
	}

	if _, err := repo.UpdateStatus(ctx, "нет-такого", model.StatusDelivered); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateStatus несуществующего: ошибка = %v, ожидалась ErrNotFound", err)
	}

	// Изменение строк возвращённого заказа не должно протекать в хранилище.
	upd.Items[0].Quantity = 99
	again, _ := repo.Get(ctx, o.ID)
	if again.Items[0].Quantity == 99 {
		t.Error("Get возвращает ссылку на внутренние строки заказа")
	}
}

func TestOrderRepositoryListByUser(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(seed.Orders())

	mine, err := repo.ListByUser(ctx, 1)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(mine) == 0 {
		t.Fatal("у пользователя 1 нет заказов в демо-данных")
	}
	for _, o := range mine {
		if o.UserID != 1 {
			t.Errorf("заказ %s принадлежит пользователю %d", o.ID, o.UserID)
		}
	}
}

func TestAppRoleRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewAppRoleRepository(seed.AppRoles())

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != len(seed.AppRoles()) {
		t.Fatalf("List: %d записей, ожидалось %d", len(list), len(seed.AppRoles()))
	}

	dup := &model.AppRole{Name: list[0].Name}
	if err := repo.Create(ctx, dup); !errors.Is(err, ErrConflict) {
		t.Errorf("Create с дублирующимся именем: ошибка = %v, ожидалась ErrConflict", err)
	}

	fresh := &model.AppRole{Name: "auditor"}
	if err := repo.Create(ctx, fresh); err != nil {
		t.Fatalf("Create: %v", err)
	}
	fresh.Name = "auditor-2"
	if err := repo.Update(ctx, fresh); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := repo.Delete(ctx, fresh.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, fresh.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get после Delete: ошибка = %v, ожидалась ErrNotFound", err)
	}
}
