// orders.go — сервис заказов.
// Оформление из корзины, отслеживание, отмена и имитация продвижения
// статуса цепочкой отменяемых таймеров:
// placed → preparing → out_for_delivery → delivered.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/goresto/internal/domain/model"
	"github.com/bigkaa/goresto/internal/domain/roles"
	"github.com/bigkaa/goresto/internal/repository"
)

var ordersPlaced = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "gr_orders_placed_total",
	Help: "Количество оформленных заказов.",
}, []string{"placed_by"})

// ProgressionIntervals — интервалы имитации продвижения заказа.
type ProgressionIntervals struct {
	// ToPreparing — от размещения до начала приготовления.
	ToPreparing time.Duration
	// ToDelivery — от приготовления до передачи в доставку.
	ToDelivery time.Duration
	// ToDelivered — от доставки до вручения.
	ToDelivered time.Duration
}

// OrderService — сервис заказов.
type OrderService struct {
	orders    repository.OrderRepository
	intervals ProgressionIntervals
	logger    *slog.Logger

	// mu защищает timers и stopped.
	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

// NewOrderService создаёт сервис заказов.
func NewOrderService(orders repository.OrderRepository, intervals ProgressionIntervals, logger *slog.Logger) *OrderService {
	return &OrderService{
		orders:    orders,
		intervals: intervals,
		logger:    logger.With(slog.String("component", "order_service")),
		timers:    make(map[string]*time.Timer),
	}
}

// PlaceOrder оформляет заказ из корзины. Пустая корзина отклоняется.
// Итоговая сумма считается сервером из строк корзины, клиентскому
// значению не доверяем.
func (s *OrderService) PlaceOrder(ctx context.Context, user *model.User, c *model.Cart) (*model.Order, error) {
	if c == nil || len(c.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	now := time.Now()
	items := make([]model.CartLine, len(c.Lines))
	copy(items, c.Lines)

	o := &model.Order{
		ID:                uuid.NewString(),
		UserID:            user.ID,
		Items:             items,
		Total:             c.Total(),
		Status:            model.StatusPlaced,
		PlacedBy:          user.Role,
		OrderDate:         now,
		EstimatedDelivery: now.Add(45 * time.Minute),
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}

	s.schedule(o.ID, model.StatusPreparing, s.intervals.ToPreparing)
	ordersPlaced.WithLabelValues(string(user.Role)).Inc()

	s.logger.Info("заказ оформлен",
		slog.String("order_id", o.ID),
		slog.Int64("user_id", user.ID),
		slog.Int64("total", o.Total),
		slog.String("placed_by", string(user.Role)),
	)
	return o, nil
}

// Track возвращает заказ. Покупатель видит только свои заказы,
// остальные роли — любые.
func (s *OrderService) Track(ctx context.Context, requester *model.User, id string) (*model.Order, error) {
	o, err := s.orders.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if requester.Role == roles.RoleCustomer && o.UserID != requester.ID {
		return nil, ErrForbidden
	}
	return o, nil
}

// Cancel отменяет заказ до вручения. Конечный статус — ошибка
// ErrOrderFinal. Таймер продвижения останавливается.
func (s *OrderService) Cancel(ctx context.Context, requester *model.User, id string) (*model.Order, error) {
	o, err := s.Track(ctx, requester, id)
	if err != nil {
		return nil, err
	}
	if o.Status.IsFinal() {
		return nil, ErrOrderFinal
	}

	s.cancelTimer(id)
	upd, err := s.orders.UpdateStatus(ctx, id, model.StatusCancelled)
	if err != nil {
		return nil, err
	}

	s.logger.Info("заказ отменён",
		slog.String("order_id", id),
		slog.String("prev_status", string(o.Status)),
	)
	return upd, nil
}

// History возвращает страницу всех заказов (новые первыми).
func (s *OrderService) History(ctx context.Context, limit, offset int) ([]*model.Order, int, error) {
	return s.orders.List(ctx, limit, offset)
}

// HistoryForUser возвращает заказы пользователя (новые первыми).
func (s *OrderService) HistoryForUser(ctx context.Context, userID int64) ([]*model.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// Stop останавливает все таймеры продвижения. Дальнейшие заказы
// оформляются, но не продвигаются.
func (s *OrderService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	s.logger.Info("таймеры продвижения заказов остановлены")
}

// schedule планирует следующий переход статуса заказа.
func (s *OrderService) schedule(id string, next model.OrderStatus, after time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.timers[id] = time.AfterFunc(after, func() { s.advance(id, next) })
}

// advance выполняет переход статуса по таймеру и планирует следующий.
// Отменённый заказ не продвигается.
func (s *OrderService) advance(id string, next model.OrderStatus) {
	ctx := context.Background()

	o, err := s.orders.Get(ctx, id)
	if err != nil || o.Status.IsFinal() {
		s.cancelTimer(id)
		return
	}

	if _, err := s.orders.UpdateStatus(ctx, id, next); err != nil {
		s.logger.Error("ошибка продвижения заказа",
			slog.String("order_id", id),
			slog.String("error", err.Error()),
		)
		return
	}

	s.logger.Debug("статус заказа продвинут",
		slog.String("order_id", id),
		slog.String("status", string(next)),
	)

	switch next {
	case model.StatusPreparing:
		s.schedule(id, model.StatusOutForDelivery, s.intervals.ToDelivery)
	case model.StatusOutForDelivery:
		s.schedule(id, model.StatusDelivered, s.intervals.ToDelivered)
	default:
		s.cancelTimer(id)
	}
}

// cancelTimer останавливает и забывает таймер заказа.
func (s *OrderService) cancelTimer(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
}
