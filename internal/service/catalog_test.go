package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bigkaa/goresto/internal/domain/model"
	"github.com/bigkaa/goresto/internal/repository"
	"github.com/bigkaa/goresto/internal/seed"
)

func TestCatalogGet(t *testing.T) {
	svc := NewCatalogService(repository.NewDishRepository(seed.Menu()), discardLogger())
	ctx := context.Background()

	d, err := svc.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if d.Name == "" {
		t.Error("пустое название")
	}

	if _, err := svc.Get(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get несуществующего: ошибка = %v, ожидалась ErrNotFound", err)
	}
}

func TestCatalogCreateValidation(t *testing.T) {
	svc := NewCatalogService(repository.NewDishRepository(nil), discardLogger())
	ctx := context.Background()

	tests := []struct {
		name string
		dish model.Dish
	}{
		{"без названия", model.Dish{Price: 100, Category: model.CategoryDessert}},
		{"нулевая цена", model.Dish{Name: "Блюдо", Category: model.CategoryDessert}},
		{"отрицательная цена", model.Dish{Name: "Блюдо", Price: -5, Category: model.CategoryDessert}},
		{"неизвестная категория", model.Dish{Name: "Блюдо", Price: 100, Category: "Street Food"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.dish
			if _, err := svc.Create(ctx, &d); !errors.Is(err, ErrValidation) {
				t.Errorf("ошибка = %v, ожидалась ErrValidation", err)
			}
		})
	}

	ok := &model.Dish{Name: "Новое блюдо", Price: 500, Category: model.CategoryAppetizer}
	created, err := svc.Create(ctx, ok)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Error("ID не присвоен")
	}
}

func TestCatalogUpdateDelete(t *testing.T) {
	svc := NewCatalogService(repository.NewDishRepository(seed.Menu()), discardLogger())
	ctx := context.Background()

	d, _ := svc.Get(ctx, 3)
	d.Price = 1999
	if _, err := svc.Update(ctx, d); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := svc.Get(ctx, 3)
	if got.Price != 1999 {
		t.Errorf("цена = %d", got.Price)
	}

	missing := &model.Dish{ID: 9999, Name: "Нет", Price: 1, Category: model.CategoryDessert}
	if _, err := svc.Update(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update несуществующего: %v", err)
	}

	if err := svc.Delete(ctx, 3); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, 3); !errors.Is(err, ErrNotFound) {
		t.Errorf("повторный Delete: %v", err)
	}
}
