// catalog.go — сервис каталога блюд.
// Выборка меню для покупателя/официанта и CRUD позиций для superadmin.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bigkaa/goresto/internal/domain/model"
	"github.com/bigkaa/goresto/internal/repository"
)

// CatalogService — сервис каталога блюд.
type CatalogService struct {
	dishes repository.DishRepository
	logger *slog.Logger
}

// NewCatalogService создаёт сервис каталога.
func NewCatalogService(dishes repository.DishRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		dishes: dishes,
		logger: logger.With(slog.String("component", "catalog_service")),
	}
}

// List возвращает страницу каталога по фильтру.
func (s *CatalogService) List(ctx context.Context, f repository.DishFilter) ([]*model.Dish, int, error) {
	return s.dishes.List(ctx, f)
}

// Get возвращает блюдо по ID.
func (s *CatalogService) Get(ctx context.Context, id int64) (*model.Dish, error) {
	d, err := s.dishes.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

// Create добавляет блюдо в каталог (superadmin).
func (s *CatalogService) Create(ctx context.Context, d *model.Dish) (*model.Dish, error) {
	if err := validateDish(d); err != nil {
		return nil, err
	}
	if err := s.dishes.Create(ctx, d); err != nil {
		return nil, err
	}

	s.logger.Info("блюдо добавлено в каталог",
		slog.Int64("id", d.ID),
		slog.String("name", d.Name),
	)
	return d, nil
}

// Update обновляет блюдо (superadmin).
func (s *CatalogService) Update(ctx context.Context, d *model.Dish) (*model.Dish, error) {
	if err := validateDish(d); err != nil {
		return nil, err
	}
	if err := s.dishes.Update(ctx, d); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.logger.Info("блюдо обновлено", slog.Int64("id", d.ID))
	return d, nil
}

// Delete удаляет блюдо из каталога (superadmin).
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	if err := s.dishes.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.logger.Info("блюдо удалено из каталога", slog.Int64("id", id))
	return nil
}

// validateDish проверяет поля блюда перед записью.
func validateDish(d *model.Dish) error {
	if d.Name == "" {
		return fmt.Errorf("%w: название блюда обязательно", ErrValidation)
	}
	if d.Price <= 0 {
		return fmt.Errorf("%w: цена должна быть положительной", ErrValidation)
	}
	if !model.IsValidCategory(d.Category) {
		return fmt.Errorf("%w: неизвестная категория %q", ErrValidation, d.Category)
	}
	return nil
}
