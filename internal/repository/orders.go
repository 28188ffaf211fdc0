package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/bigkaa/goresto/internal/domain/model"
)

// OrderRepository — хранилище заказов.
type OrderRepository interface {
	// Create сохраняет заказ (ID присваивает вызывающий сервис).
	Create(ctx context.Context, o *model.Order) error
	// Get возвращает заказ по ID.
	Get(ctx context.Context, id string) (*model.Order, error)
	// UpdateStatus меняет статус заказа и возвращает обновлённый заказ.
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
	// List возвращает страницу заказов (новые первыми) и общее количество.
	List(ctx context.Context, limit, offset int) ([]*model.Order, int, error)
	// ListByUser возвращает заказы пользователя (новые первыми).
	ListByUser(ctx context.Context, userID int64) ([]*model.Order, error)
}

// orderRepo — in-memory реализация OrderRepository.
type orderRepo struct {
	mu     sync.RWMutex
	orders map[string]*model.Order
}

// NewOrderRepository создаёт хранилище заказов с начальными данными.
func NewOrderRepository(initial []*model.Order) OrderRepository {
	r := &orderRepo{orders: make(map[string]*model.Order, len(initial))}
	for _, o := range initial {
		cp := cloneOrder(o)
		r.orders[cp.ID] = cp
	}
	return r
}

func (r *orderRepo) Create(_ context.Context, o *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[o.ID]; exists {
		return ErrConflict
	}
	r.orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *orderRepo) Get(_ context.Context, id string) (*model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneOrder(o), nil
}

func (r *orderRepo) UpdateStatus(_ context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	o.Status = status
	return cloneOrder(o), nil
}

func (r *orderRepo) List(_ context.Context, limit, offset int) ([]*model.Order, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.sortedLocked()
	total := len(all)
	lo, hi := paginate(total, limit, offset)
	return all[lo:hi], total, nil
}

func (r *orderRepo) ListByUser(_ context.Context, userID int64) ([]*model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Order
	for _, o := range r.sortedLocked() {
		if o.UserID == userID {
			result = append(result, o)
		}
	}
	return result, nil
}

// sortedLocked возвращает копии всех заказов, новые первыми.
// Вызывается под мьютексом.
func (r *orderRepo) sortedLocked() []*model.Order {
	all := make([]*model.Order, 0, len(r.orders))
	for _, o := range r.orders {
		all = append(all, cloneOrder(o))
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].OrderDate.Equal(all[j].OrderDate) {
			return all[i].OrderDate.After(all[j].OrderDate)
		}
		return all[i].ID < all[j].ID
	})
	return all
}

// cloneOrder копирует заказ вместе со строками,
// чтобы вызывающие не разделяли внутренние срезы.
func cloneOrder(o *model.Order) *model.Order {
	cp := *o
	cp.Items = make([]model.CartLine, len(o.Items))
	copy(cp.Items, o.Items)
	return &cp
}
