package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/bigkaa/goresto/internal/domain/model"
)

// Допустимые значения сортировки каталога.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortRating    = "rating"
	SortName      = "name"
)

// DishFilter — параметры выборки каталога.
type DishFilter struct {
	// Category — точное совпадение категории ("" — все).
	Category string
	// Search — подстрока названия без учёта регистра ("" — без поиска).
	Search string
	// Sort — порядок сортировки (SortPriceAsc и др.; "" — порядок каталога).
	Sort string
	// Limit, Offset — пагинация (limit ≤ 0 — вся выборка).
	Limit  int
	Offset int
}

// DishRepository — CRUD каталога блюд.
type DishRepository interface {
	// Create добавляет блюдо, присваивая ему следующий ID.
	Create(ctx context.Context, d *model.Dish) error
	// Get возвращает блюдо по ID.
	Get(ctx context.Context, id int64) (*model.Dish, error)
	// Update обновляет блюдо по d.ID.
	Update(ctx context.Context, d *model.Dish) error
	// Delete удаляет блюдо по ID.
	Delete(ctx context.Context, id int64) error
	// List возвращает страницу каталога и общее количество после фильтрации.
	List(ctx context.Context, f DishFilter) ([]*model.Dish, int, error)
}

// dishRepo — in-memory реализация DishRepository.
type dishRepo struct {
	mu     sync.RWMutex
	dishes []*model.Dish
	nextID int64
}

// NewDishRepository создаёт репозиторий каталога с начальными данными.
func NewDishRepository(initial []*model.Dish) DishRepository {
	r := &dishRepo{nextID: 1}
	for _, d := range initial {
		cp := *d
		r.dishes = append(r.dishes, &cp)
		if cp.ID >= r.nextID {
			r.nextID = cp.ID + 1
		}
	}
	return r
}

func (r *dishRepo) Create(_ context.Context, d *model.Dish) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d.ID = r.nextID
	r.nextID++
	cp := *d
	r.dishes = append(r.dishes, &cp)
	return nil
}

func (r *dishRepo) Get(_ context.Context, id int64) (*model.Dish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.dishes {
		if d.ID == id {
			cp := *d
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *dishRepo) Update(_ context.Context, d *model.Dish) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.dishes {
		if existing.ID == d.ID {
			cp := *d
			r.dishes[i] = &cp
			return nil
		}
	}
	return ErrNotFound
}

func (r *dishRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, d := range r.dishes {
		if d.ID == id {
			r.dishes = append(r.dishes[:i], r.dishes[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *dishRepo) List(_ context.Context, f DishFilter) ([]*model.Dish, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(f.Search)
	filtered := make([]*model.Dish, 0, len(r.dishes))
	for _, d := range r.dishes {
		if f.Category != "" && d.Category != f.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(d.Name), search) {
			continue
		}
		cp := *d
		filtered = append(filtered, &cp)
	}

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price < filtered[j].Price })
	case SortPriceDesc:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price > filtered[j].Price })
	case SortRating:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Rating > filtered[j].Rating })
	case SortName:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Name < filtered[j].Name })
	}

	total := len(filtered)
	lo, hi := paginate(total, f.Limit, f.Offset)
	return filtered[lo:hi], total, nil
}
