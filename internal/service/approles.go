// approles.go — сервис демонстрационного CRUD «управление ролями».
// Список ролей развязан с перечислением ролей маршрутизатора:
// создание или удаление записи здесь не открывает и не закрывает
// никаких маршрутов.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bigkaa/goresto/internal/domain/model"
	"github.com/bigkaa/goresto/internal/repository"
)

// AppRoleService — сервис демонстрационного списка ролей.
type AppRoleService struct {
	appRoles repository.AppRoleRepository
	logger   *slog.Logger
}

// NewAppRoleService создаёт сервис списка ролей.
func NewAppRoleService(appRoles repository.AppRoleRepository, logger *slog.Logger) *AppRoleService {
	return &AppRoleService{
		appRoles: appRoles,
		logger:   logger.With(slog.String("component", "approle_service")),
	}
}

// List возвращает все записи в порядке создания.
func (s *AppRoleService) List(ctx context.Context) ([]*model.AppRole, error) {
	return s.appRoles.List(ctx)
}

// Create добавляет запись.
func (s *AppRoleService) Create(ctx context.Context, name string) (*model.AppRole, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: имя роли обязательно", ErrValidation)
	}

	ar := &model.AppRole{Name: name}
	if err := s.appRoles.Create(ctx, ar); err != nil {
		return nil, mapRepoErr(err)
	}

	s.logger.Info("запись роли создана", slog.Int64("id", ar.ID), slog.String("name", name))
	return ar, nil
}

// Update переименовывает запись.
func (s *AppRoleService) Update(ctx context.Context, id int64, name string) (*model.AppRole, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: имя роли обязательно", ErrValidation)
	}

	ar := &model.AppRole{ID: id, Name: name}
	if err := s.appRoles.Update(ctx, ar); err != nil {
		return nil, mapRepoErr(err)
	}

	s.logger.Info("запись роли переименована", slog.Int64("id", id), slog.String("name", name))
	return ar, nil
}

// Delete удаляет запись.
func (s *AppRoleService) Delete(ctx context.Context, id int64) error {
	if err := s.appRoles.Delete(ctx, id); err != nil {
		return mapRepoErr(err)
	}

	s.logger.Info("запись роли удалена", slog.Int64("id", id))
	return nil
}
