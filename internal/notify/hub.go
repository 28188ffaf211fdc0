package notify

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	enqueuedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gr_notifications_enqueued_total",
		Help: "Количество поставленных в очередь уведомлений.",
	}, []string{"severity"})

	expiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gr_notifications_expired_total",
		Help: "Количество уведомлений, начавших выход по таймеру.",
	})

	dismissedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gr_notifications_dismissed_total",
		Help: "Количество уведомлений, закрытых пользователем досрочно.",
	})

	sessionsEvicted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gr_notification_sessions_evicted_total",
		Help: "Количество очередей уведомлений, вытесненных из LRU.",
	})
)

// Hub раздаёт очереди уведомлений по идентификатору сессии.
// Очереди живут в expirable LRU: неактивная сессия вытесняется по
// TTL или при переполнении, её таймеры при этом останавливаются.
type Hub struct {
	mu         sync.Mutex
	queues     *expirable.LRU[string, *Queue]
	displayFor time.Duration
	exitDelay  time.Duration
}

// NewHub создаёт hub. maxSessions — ёмкость LRU (0 — без лимита),
// sessionTTL — срок жизни неактивной очереди.
func NewHub(maxSessions int, sessionTTL, displayFor, exitDelay time.Duration) *Hub {
	h := &Hub{
		displayFor: displayFor,
		exitDelay:  exitDelay,
	}
	h.queues = expirable.NewLRU(maxSessions, func(_ string, q *Queue) {
		q.Close()
		sessionsEvicted.Inc()
	}, sessionTTL)
	return h
}

// Queue возвращает очередь сессии, создавая при первом обращении.
func (h *Hub) Queue(sid string) *Queue {
	h.mu.Lock()
	defer h.mu.Unlock()

	if q, ok := h.queues.Get(sid); ok {
		return q
	}
	q := NewQueue(h.displayFor, h.exitDelay)
	h.queues.Add(sid, q)
	return q
}

// Drop немедленно закрывает и удаляет очередь сессии (logout).
func (h *Hub) Drop(sid string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.queues.Remove(sid)
}

// Close закрывает все очереди (останавливая их таймеры).
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.queues.Purge()
}
