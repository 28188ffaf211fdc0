// Пакет notify — очередь уведомлений с жизненным циклом отображения.
// Каждое уведомление живёт по схеме Visible → Exiting → удалено:
// после displayFor начинается «выход» (анимация на клиенте), через
// exitDelay запись удаляется. Оба перехода управляются отменяемыми
// таймерами; Dismiss запускает выход досрочно.
package notify

import (
	"time"

	"github.com/google/uuid"
)

// Severity — тип уведомления.
type Severity string

const (
	// SeveritySuccess — успешная операция.
	SeveritySuccess Severity = "success"
	// SeverityError — ошибка.
	SeverityError Severity = "error"
	// SeverityInfo — информационное сообщение.
	SeverityInfo Severity = "info"
)

// State — состояние уведомления в жизненном цикле.
type State string

const (
	// StateVisible — уведомление отображается.
	StateVisible State = "visible"
	// StateExiting — идёт анимация выхода, запись ещё в очереди.
	StateExiting State = "exiting"
)

// Notification — одно уведомление.
type Notification struct {
	// ID — уникальный идентификатор (uuid: быстрые повторные
	// Enqueue не должны давать коллизий).
	ID string `json:"id"`
	// Message — текст уведомления.
	Message string `json:"message"`
	// Severity — тип.
	Severity Severity `json:"severity"`
	// CreatedAt — время постановки в очередь.
	CreatedAt time.Time `json:"created_at"`
	// State — текущее состояние жизненного цикла.
	State State `json:"state"`
}

func newNotification(message string, severity Severity) *Notification {
	return &Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		CreatedAt: time.Now(),
		State:     StateVisible,
	}
}
