// users.go — сервис управления пользователями.
// Admin управляет официантами (только роль staff), superadmin — всеми
// пользователями, покупатель — собственным профилем.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"

	"github.com/bigkaa/goresto/internal/domain/model"
	"github.com/bigkaa/goresto/internal/domain/roles"
	"github.com/bigkaa/goresto/internal/repository"
)

// UserService — сервис управления пользователями.
type UserService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

// NewUserService создаёт сервис пользователей.
func NewUserService(users repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger.With(slog.String("component", "user_service")),
	}
}

// List возвращает страницу пользователей. role != "" — одна роль.
func (s *UserService) List(ctx context.Context, role roles.Role, limit, offset int) ([]*model.User, int, error) {
	return s.users.List(ctx, role, limit, offset)
}

// Get возвращает пользователя по ID.
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return u, nil
}

// Create добавляет пользователя.
func (s *UserService) Create(ctx context.Context, u *model.User) (*model.User, error) {
	if err := validateUser(u); err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, mapRepoErr(err)
	}

	s.logger.Info("пользователь создан",
		slog.Int64("id", u.ID),
		slog.String("email", u.Email),
		slog.String("role", string(u.Role)),
	)
	return u, nil
}

// Update обновляет пользователя целиком.
func (s *UserService) Update(ctx context.Context, u *model.User) (*model.User, error) {
	if err := validateUser(u); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, mapRepoErr(err)
	}

	s.logger.Info("пользователь обновлён", slog.Int64("id", u.ID))
	return u, nil
}

// Delete удаляет пользователя.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return mapRepoErr(err)
	}

	s.logger.Info("пользователь удалён", slog.Int64("id", id))
	return nil
}

// UpdateProfile обновляет контактные данные пользователя.
// Email и роль профилем не меняются.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, name, phone, address string) (*model.User, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	if name != "" {
		u.Name = name
	}
	u.Phone = phone
	u.Address = address

	if err := s.users.Update(ctx, u); err != nil {
		return nil, mapRepoErr(err)
	}

	s.logger.Info("профиль обновлён", slog.Int64("id", userID))
	return u, nil
}

// validateUser проверяет поля пользователя перед записью.
func validateUser(u *model.User) error {
	if u.Name == "" {
		return fmt.Errorf("%w: имя обязательно", ErrValidation)
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return fmt.Errorf("%w: некорректный email %q", ErrValidation, u.Email)
	}
	if !u.Role.IsValid() {
		return fmt.Errorf("%w: неизвестная роль %q", ErrValidation, u.Role)
	}
	return nil
}

// mapRepoErr переводит ошибки репозитория в ошибки сервисного слоя.
func mapRepoErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrConflict):
		return ErrConflict
	default:
		return err
	}
}
