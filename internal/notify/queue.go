package notify

import (
	"sync"
	"time"
)

// entry — уведомление вместе с его таймерами.
type entry struct {
	n *Notification
	// displayTimer запускает выход после displayFor (nil после срабатывания).
	displayTimer *time.Timer
	// exitTimer удаляет запись после exitDelay (nil до начала выхода).
	exitTimer *time.Timer
}

// Queue — очередь уведомлений одной сессии.
type Queue struct {
	mu         sync.Mutex
	displayFor time.Duration
	exitDelay  time.Duration
	entries    []*entry
	closed     bool
}

// NewQueue создаёт очередь. displayFor — время отображения,
// exitDelay — длительность анимации выхода.
func NewQueue(displayFor, exitDelay time.Duration) *Queue {
	return &Queue{displayFor: displayFor, exitDelay: exitDelay}
}

// Enqueue ставит уведомление в очередь и планирует его выход.
// На закрытой очереди — no-op, возвращает nil.
func (q *Queue) Enqueue(message string, severity Severity) *Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	n := newNotification(message, severity)
	e := &entry{n: n}
	e.displayTimer = time.AfterFunc(q.displayFor, func() { q.beginExit(n.ID) })
	q.entries = append(q.entries, e)

	enqueuedTotal.WithLabelValues(string(severity)).Inc()
	cp := *n
	return &cp
}

// Dismiss досрочно запускает выход уведомления.
// Повторный Dismiss и Dismiss несуществующего ID — no-op.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	e := q.findLocked(id)
	if e == nil || e.n.State != StateVisible {
		q.mu.Unlock()
		return
	}
	if e.displayTimer != nil {
		e.displayTimer.Stop()
		e.displayTimer = nil
	}
	q.startExitLocked(e)
	q.mu.Unlock()

	dismissedTotal.Inc()
}

// Active возвращает копии уведомлений в порядке постановки,
// включая выходящие (они ещё отображаются).
func (q *Queue) Active() []*Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	result := make([]*Notification, 0, len(q.entries))
	for _, e := range q.entries {
		cp := *e.n
		result = append(result, &cp)
	}
	return result
}

// Close останавливает все таймеры и очищает очередь.
// Дальнейшие Enqueue — no-op.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	for _, e := range q.entries {
		if e.displayTimer != nil {
			e.displayTimer.Stop()
		}
		if e.exitTimer != nil {
			e.exitTimer.Stop()
		}
	}
	q.entries = nil
}

// beginExit переводит уведомление в состояние Exiting по истечении
// времени отображения.
func (q *Queue) beginExit(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	e := q.findLocked(id)
	if e == nil || e.n.State != StateVisible {
		return
	}
	e.displayTimer = nil
	q.startExitLocked(e)

	expiredTotal.Inc()
}

// startExitLocked запускает таймер удаления. Вызывается под мьютексом.
func (q *Queue) startExitLocked(e *entry) {
	e.n.State = StateExiting
	id := e.n.ID
	e.exitTimer = time.AfterFunc(q.exitDelay, func() { q.remove(id) })
}

// remove удаляет запись, не меняя порядок остальных.
func (q *Queue) remove(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	for i, e := range q.entries {
		if e.n.ID == id {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return
		}
	}
}

// findLocked ищет запись по ID. Вызывается под мьютексом.
func (q *Queue) findLocked(id string) *entry {
	for _, e := range q.entries {
		if e.n.ID == id {
			return e
		}
	}
	return nil
}
