package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/bigkaa/goresto/internal/domain/model"
	"github.com/bigkaa/goresto/internal/domain/roles"
)

// UserRepository — справочник пользователей.
// Email уникален без учёта регистра.
type UserRepository interface {
	// Create добавляет пользователя, присваивая следующий ID.
	// Возвращает ErrConflict при дублирующемся email.
	Create(ctx context.Context, u *model.User) error
	// Get возвращает пользователя по ID.
	Get(ctx context.Context, id int64) (*model.User, error)
	// GetByEmail возвращает пользователя по email (без учёта регистра).
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// Update обновляет пользователя по u.ID.
	Update(ctx context.Context, u *model.User) error
	// Delete удаляет пользователя по ID.
	Delete(ctx context.Context, id int64) error
	// List возвращает страницу пользователей и общее количество.
	// role != "" ограничивает выборку одной ролью.
	List(ctx context.Context, role roles.Role, limit, offset int) ([]*model.User, int, error)
}

// userRepo — in-memory реализация UserRepository.
type userRepo struct {
	mu     sync.RWMutex
	users  []*model.User
	nextID int64
}

// NewUserRepository создаёт справочник пользователей с начальными данными.
func NewUserRepository(initial []*model.User) UserRepository {
	r := &userRepo{nextID: 1}
	for _, u := range initial {
		cp := *u
		r.users = append(r.users, &cp)
		if cp.ID >= r.nextID {
			r.nextID = cp.ID + 1
		}
	}
	return r
}

func (r *userRepo) Create(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return ErrConflict
		}
	}

	u.ID = r.nextID
	r.nextID++
	cp := *u
	r.users = append(r.users, &cp)
	return nil
}

func (r *userRepo) Get(_ context.Context, id int64) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *userRepo) Update(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.ID != u.ID && strings.EqualFold(existing.Email, u.Email) {
			return ErrConflict
		}
	}
	for i, existing := range r.users {
		if existing.ID == u.ID {
			cp := *u
			r.users[i] = &cp
			return nil
		}
	}
	return ErrNotFound
}

func (r *userRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *userRepo) List(_ context.Context, role roles.Role, limit, offset int) ([]*model.User, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := make([]*model.User, 0, len(r.users))
	for _, u := range r.users {
		if role != "" && u.Role != role {
			continue
		}
		cp := *u
		filtered = append(filtered, &cp)
	}

	total := len(filtered)
	lo, hi := paginate(total, limit, offset)
	return filtered[lo:hi], total, nil
}
