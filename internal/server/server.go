// Пакет server — HTTP-сервер goresto с ролевой диспетчеризацией
// и graceful shutdown. Без TLS — HTTP внутри кластера, TLS termination
// на API Gateway.
//
// Диспетчеризация на каждый запрос:
//  1. фаза загрузки — 503 с Retry-After, решение о маршрутизации
//     ещё не принято;
//  2. идентичность восстанавливается из cookie или bearer-токена;
//  3. анонимный запрос попадает в дерево входа, аутентифицированный —
//     в дерево своей роли; роль вне перечисления сбрасывает сессию.
//
// Health и metrics обслуживаются вне диспетчеризации: Kubernetes
// опрашивает их без cookie.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/goresto/internal/api/contract"
	"github.com/bigkaa/goresto/internal/api/handlers"
	"github.com/bigkaa/goresto/internal/api/middleware"
	"github.com/bigkaa/goresto/internal/auth"
	"github.com/bigkaa/goresto/internal/config"
	"github.com/bigkaa/goresto/internal/domain/sessionstate"
	"github.com/bigkaa/goresto/internal/session"
)

// Server — HTTP-сервер goresto.
type Server struct {
	httpServer  *http.Server
	logger      *slog.Logger
	cfg         *config.Config
	machine     *sessionstate.Machine
	authSvc     *auth.Service
	loginRouter chi.Router
	roleRouters map[string]chi.Router
}

// New собирает сервер: проверяет таблицу маршрутов по контракту,
// строит деревья ролей и корневой роутер.
// machine — автомат фазы процесса; пока он в состоянии loading,
// запросы получают 503.
func New(
	cfg *config.Config,
	logger *slog.Logger,
	api *handlers.API,
	health *handlers.HealthHandler,
	authSvc *auth.Service,
	c *contract.Contract,
	machine *sessionstate.Machine,
) (*Server, error) {
	if err := verifyRouteTable(c); err != nil {
		return nil, fmt.Errorf("таблица маршрутов: %w", err)
	}

	s := &Server{
		logger:      logger,
		cfg:         cfg,
		machine:     machine,
		authSvc:     authSvc,
		loginRouter: buildLoginRouter(api),
		roleRouters: make(map[string]chi.Router),
	}
	for role, r := range buildRoleRouters(api, c) {
		s.roleRouters[string(role)] = r
	}

	root := chi.NewRouter()
	root.Use(middleware.MetricsMiddleware())
	root.Use(middleware.RequestLogger(logger))

	// Вне ролевой диспетчеризации.
	root.Get("/health/live", health.HealthLive)
	root.Get("/health/ready", health.HealthReady)
	root.Get("/metrics", health.GetMetrics)

	root.Handle("/*", http.HandlerFunc(s.dispatch))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      root,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s, nil
}

// dispatch классифицирует запрос и выбирает дерево маршрутов.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	loading := s.machine.Current() == sessionstate.StateLoading

	var sess *session.SessionData
	if !loading {
		sess = s.authSvc.Rehydrate(r)
	}

	switch sessionstate.Classify(loading, sess != nil) {
	case sessionstate.StateLoading:
		w.Header().Set("Retry-After", "1")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "loading"})

	case sessionstate.StateUnauthenticated:
		s.loginRouter.ServeHTTP(w, r)

	case sessionstate.StateAuthenticated:
		router, ok := s.roleRouters[string(sess.User.Role)]
		if !ok {
			// Роль вне перечисления: сессия недействительна.
			s.logger.Warn("сессия с неизвестной ролью сброшена",
				slog.String("role", string(sess.User.Role)),
				slog.String("email", sess.User.Email),
			)
			s.authSvc.Logout(w)
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		router.ServeHTTP(w, middleware.WithSession(r, sess))
	}
}

// Run запускает сервер и ожидает сигнала завершения (SIGINT, SIGTERM).
// При получении сигнала выполняется graceful shutdown.
func (s *Server) Run() error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		s.logger.Info("Получен сигнал завершения", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}

// Handler возвращает корневой обработчик сервера (для тестов).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
