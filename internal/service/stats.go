// stats.go — агрегаты для дашбордов staff/admin/superadmin.
// Все значения производные: пересчитываются при каждом запросе,
// кэша нет (mock-данные малы).
package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/bigkaa/goresto/internal/domain/model"
	"github.com/bigkaa/goresto/internal/repository"
)

// DishCount — блюдо и количество проданных порций.
type DishCount struct {
	Dish  model.Dish `json:"dish"`
	Count int        `json:"count"`
}

// Dashboard — агрегаты дашборда.
type Dashboard struct {
	// TotalOrders — всего заказов.
	TotalOrders int `json:"total_orders"`
	// OrdersToday — заказов за сегодня.
	OrdersToday int `json:"orders_today"`
	// ActiveOrders — заказов в работе (не в конечном статусе).
	ActiveOrders int `json:"active_orders"`
	// Revenue — выручка в минорных единицах (без отменённых заказов).
	Revenue int64 `json:"revenue"`
	// TopDishes — самые продаваемые блюда (до пяти).
	TopDishes []DishCount `json:"top_dishes"`
}

// StatsService — сервис агрегатов дашборда.
type StatsService struct {
	orders repository.OrderRepository
	logger *slog.Logger
}

// NewStatsService создаёт сервис агрегатов.
func NewStatsService(orders repository.OrderRepository, logger *slog.Logger) *StatsService {
	return &StatsService{
		orders: orders,
		logger: logger.With(slog.String("component", "stats_service")),
	}
}

// Dashboard пересчитывает агрегаты по всем заказам.
func (s *StatsService) Dashboard(ctx context.Context) (*Dashboard, error) {
	all, total, err := s.orders.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{TotalOrders: total}
	today := time.Now().Truncate(24 * time.Hour)
	byDish := make(map[int64]*DishCount)

	for _, o := range all {
		if !o.OrderDate.Before(today) {
			d.OrdersToday++
		}
		if !o.Status.IsFinal() {
			d.ActiveOrders++
		}
		if o.Status == model.StatusCancelled {
			continue
		}
		d.Revenue += o.Total
		for _, line := range o.Items {
			dc, ok := byDish[line.Dish.ID]
			if !ok {
				dc = &DishCount{Dish: line.Dish}
				byDish[line.Dish.ID] = dc
			}
			dc.Count += line.Quantity
		}
	}

	for _, dc := range byDish {
		d.TopDishes = append(d.TopDishes, *dc)
	}
	sort.Slice(d.TopDishes, func(i, j int) bool {
		if d.TopDishes[i].Count != d.TopDishes[j].Count {
			return d.TopDishes[i].Count > d.TopDishes[j].Count
		}
		return d.TopDishes[i].Dish.ID < d.TopDishes[j].Dish.ID
	})
	if len(d.TopDishes) > 5 {
		d.TopDishes = d.TopDishes[:5]
	}

	return d, nil
}
