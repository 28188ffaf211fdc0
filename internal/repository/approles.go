package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/bigkaa/goresto/internal/domain/model"
)

// AppRoleRepository — CRUD демонстрационного списка ролей (superadmin UI).
// Список НЕ подключён к перечислению roles.Role маршрутизатора.
type AppRoleRepository interface {
	// Create добавляет роль, присваивая следующий ID.
	// Возвращает ErrConflict при дублирующемся имени (без учёта регистра).
	Create(ctx context.Context, ar *model.AppRole) error
	// Get возвращает роль по ID.
	Get(ctx context.Context, id int64) (*model.AppRole, error)
	// Update переименовывает роль по ar.ID.
	Update(ctx context.Context, ar *model.AppRole) error
	// Delete удаляет роль по ID.
	Delete(ctx context.Context, id int64) error
	// List возвращает все роли в порядке создания.
	List(ctx context.Context) ([]*model.AppRole, error)
}

// appRoleRepo — in-memory реализация AppRoleRepository.
type appRoleRepo struct {
	mu     sync.RWMutex
	items  []*model.AppRole
	nextID int64
}

// NewAppRoleRepository создаёт репозиторий демонстрационных ролей.
func NewAppRoleRepository(initial []*model.AppRole) AppRoleRepository {
	r := &appRoleRepo{nextID: 1}
	for _, ar := range initial {
		cp := *ar
		r.items = append(r.items, &cp)
		if cp.ID >= r.nextID {
			r.nextID = cp.ID + 1
		}
	}
	return r
}

func (r *appRoleRepo) Create(_ context.Context, ar *model.AppRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if strings.EqualFold(existing.Name, ar.Name) {
			return ErrConflict
		}
	}

	ar.ID = r.nextID
	r.nextID++
	cp := *ar
	r.items = append(r.items, &cp)
	return nil
}

func (r *appRoleRepo) Get(_ context.Context, id int64) (*model.AppRole, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ar := range r.items {
		if ar.ID == id {
			cp := *ar
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *appRoleRepo) Update(_ context.Context, ar *model.AppRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.ID != ar.ID && strings.EqualFold(existing.Name, ar.Name) {
			return ErrConflict
		}
	}
	for i, existing := range r.items {
		if existing.ID == ar.ID {
			cp := *ar
			r.items[i] = &cp
			return nil
		}
	}
	return ErrNotFound
}

func (r *appRoleRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, ar := range r.items {
		if ar.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *appRoleRepo) List(_ context.Context) ([]*model.AppRole, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.AppRole, 0, len(r.items))
	for _, ar := range r.items {
		cp := *ar
		result = append(result, &cp)
	}
	return result, nil
}
