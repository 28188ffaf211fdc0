// Пакет sessionstate — конечный автомат жизненного цикла сессии.
//
// Состояния и переходы:
//   - loading → unauthenticated | authenticated — завершение регидратации
//   - unauthenticated → authenticated — успешный login
//   - authenticated → unauthenticated — logout
//
// Прямого перехода authenticated → authenticated нет: смена роли
// возможна только через полный цикл logout/login.
//
// Потокобезопасен через sync.RWMutex.
package sessionstate

import (
	"fmt"
	"sync"
	"time"
)

// State — состояние жизненного цикла сессии.
type State string

const (
	// StateLoading — идёт регидратация, решение о маршрутизации ещё не принято.
	StateLoading State = "loading"
	// StateUnauthenticated — идентичность отсутствует, доступен только login.
	StateUnauthenticated State = "unauthenticated"
	// StateAuthenticated — идентичность установлена, смонтировано дерево роли.
	StateAuthenticated State = "authenticated"
)

// validTransitions — матрица допустимых переходов.
var validTransitions = map[State]map[State]bool{
	StateLoading:         {StateUnauthenticated: true, StateAuthenticated: true},
	StateUnauthenticated: {StateAuthenticated: true},
	StateAuthenticated:   {StateUnauthenticated: true},
}

// TransitionRecord — запись о переходе между состояниями.
type TransitionRecord struct {
	From      State     `json:"from"`
	To        State     `json:"to"`
	Subject   string    `json:"subject"`
	Timestamp time.Time `json:"timestamp"`
}

// TransitionError — ошибка недопустимого перехода.
type TransitionError struct {
	Code    string // Машиночитаемый код (INVALID_TRANSITION)
	Message string // Человекочитаемое описание
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CanTransition проверяет допустимость перехода from → to.
func CanTransition(from, to State) bool {
	transitions, ok := validTransitions[from]
	if !ok {
		return false
	}
	return transitions[to]
}

// Machine — конечный автомат жизненного цикла.
// Экземпляр на процесс отслеживает фазу загрузки сервера; классификация
// состояния конкретного запроса выполняется функцией Classify.
type Machine struct {
	mu      sync.RWMutex
	current State
	history []TransitionRecord
}

// New создаёт автомат с начальным состоянием.
// Возвращает ошибку, если состояние невалидное.
func New(initial State) (*Machine, error) {
	if !isValidState(initial) {
		return nil, fmt.Errorf("недопустимое начальное состояние: %q", initial)
	}
	return &Machine{
		current: initial,
		history: make([]TransitionRecord, 0),
	}, nil
}

// Current возвращает текущее состояние.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// TransitionTo выполняет переход в указанное состояние.
// subject — кто инициировал переход (email пользователя или "system").
func (m *Machine) TransitionTo(target State, subject string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !isValidState(target) {
		return &TransitionError{
			Code:    "INVALID_TRANSITION",
			Message: fmt.Sprintf("недопустимое целевое состояние: %q", target),
		}
	}

	if !CanTransition(m.current, target) {
		return &TransitionError{
			Code:    "INVALID_TRANSITION",
			Message: fmt.Sprintf("переход %s → %s недопустим", m.current, target),
		}
	}

	m.history = append(m.history, TransitionRecord{
		From:      m.current,
		To:        target,
		Subject:   subject,
		Timestamp: time.Now().UTC(),
	})
	m.current = target

	return nil
}

// History возвращает историю переходов (копия).
func (m *Machine) History() []TransitionRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]TransitionRecord, len(m.history))
	copy(result, m.history)
	return result
}

// Classify определяет состояние запроса: loading (сервер ещё не готов),
// authenticated (идентичность восстановлена) или unauthenticated.
func Classify(loading bool, hasIdentity bool) State {
	switch {
	case loading:
		return StateLoading
	case hasIdentity:
		return StateAuthenticated
	default:
		return StateUnauthenticated
	}
}

// isValidState проверяет, является ли строка допустимым состоянием.
func isValidState(s State) bool {
	switch s {
	case StateLoading, StateUnauthenticated, StateAuthenticated:
		return true
	default:
		return false
	}
}
