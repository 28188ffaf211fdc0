package directory

import (
	"context"
	"errors"

	"github.com/bigkaa/goresto/internal/domain/model"
	"github.com/bigkaa/goresto/internal/repository"
)

// Static — mock-справочник поверх репозитория пользователей.
// Секрет не проверяется: демонстрационный вход по одному email.
type Static struct {
	users repository.UserRepository
}

// NewStatic создаёт mock-справочник.
func NewStatic(users repository.UserRepository) *Static {
	return &Static{users: users}
}

// Authenticate ищет пользователя по email. Секрет игнорируется.
func (s *Static) Authenticate(ctx context.Context, email, _ string) (*model.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}
