// Пакет auth — вход, выход и восстановление идентичности запроса.
package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/bigkaa/goresto/internal/directory"
	"github.com/bigkaa/goresto/internal/domain/model"
	"github.com/bigkaa/goresto/internal/session"
	"github.com/bigkaa/goresto/internal/token"
)

// LoginResult — результат успешного входа.
type LoginResult struct {
	// Session — созданная сессия (уже записана в cookie).
	Session *session.SessionData
	// AccessToken — HS256 токен для программных клиентов.
	AccessToken string
}

// Service — менеджер аутентификации.
// Вход сериализуется мьютексом: при параллельных входах в одном
// браузере побеждает последняя записанная сессия (last write wins).
type Service struct {
	mu       sync.Mutex
	dir      directory.Directory
	sessions *session.Manager
	tokens   *token.Manager
	logger   *slog.Logger
}

// NewService создаёт менеджер аутентификации.
func NewService(dir directory.Directory, sessions *session.Manager, tokens *token.Manager, logger *slog.Logger) *Service {
	return &Service{
		dir:      dir,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger.With(slog.String("component", "auth")),
	}
}

// Login аутентифицирует пользователя через справочник и при успехе
// записывает session cookie и выпускает access-токен.
// Неизвестный пользователь — (nil, nil): явный пустой результат,
// идентичность запроса не меняется. Отказ инфраструктуры справочника
// логируется и для вызывающего неотличим от неверных учётных данных.
func (s *Service) Login(ctx context.Context, w http.ResponseWriter, email, secret string) (*LoginResult, error) {
	user, err := s.dir.Authenticate(ctx, email, secret)
	if err != nil {
		s.logger.Error("ошибка справочника при аутентификации",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return nil, nil
	}
	if user == nil {
		s.logger.Info("вход отклонён: пользователь не найден",
			slog.String("email", email),
		)
		return nil, nil
	}

	// Запрос мог быть отменён, пока справочник отвечал —
	// не записываем сессию после отмены.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data := session.New(user)
	if err := s.sessions.Set(w, data); err != nil {
		return nil, err
	}

	accessToken, err := s.tokens.Issue(user, data.SID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("пользователь вошёл",
		slog.String("email", user.Email),
		slog.String("role", string(user.Role)),
		slog.String("sid", data.SID),
	)

	return &LoginResult{Session: data, AccessToken: accessToken}, nil
}

// Refresh перевыпускает session cookie с обновлённым пользователем.
// Вызывается после изменения профиля: снимок идентичности в cookie
// обязан совпадать с записью справочника. SID и время входа сохраняются.
func (s *Service) Refresh(w http.ResponseWriter, sess *session.SessionData, user *model.User) error {
	sess.User = user
	return s.sessions.Set(w, sess)
}

// Logout удаляет session cookie. Идемпотентен: повторный выход
// и выход без сессии — no-op.
func (s *Service) Logout(w http.ResponseWriter) {
	s.sessions.Clear(w)
}

// Rehydrate восстанавливает идентичность запроса: сначала cookie,
// затем Bearer-токен. Повреждённые данные — анонимный запрос
// (nil), логируется на debug; ошибок наружу нет.
func (s *Service) Rehydrate(r *http.Request) *session.SessionData {
	data, err := s.sessions.Get(r)
	if err != nil {
		s.logger.Debug("повреждённый session cookie, запрос анонимный",
			slog.String("error", err.Error()),
		)
	} else if data != nil && data.User != nil {
		return data
	}

	authz := r.Header.Get("Authorization")
	if raw, ok := strings.CutPrefix(authz, "Bearer "); ok {
		user, sid, err := s.tokens.Parse(raw)
		if err != nil {
			s.logger.Debug("невалидный bearer-токен, запрос анонимный",
				slog.String("error", err.Error()),
			)
			return nil
		}
		return &session.SessionData{SID: sid, User: user}
	}

	return nil
}
