package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bigkaa/goresto/internal/api/contract"
	"github.com/bigkaa/goresto/internal/api/handlers"
	"github.com/bigkaa/goresto/internal/auth"
	"github.com/bigkaa/goresto/internal/cart"
	"github.com/bigkaa/goresto/internal/config"
	"github.com/bigkaa/goresto/internal/directory"
	"github.com/bigkaa/goresto/internal/domain/roles"
	"github.com/bigkaa/goresto/internal/domain/sessionstate"
	"github.com/bigkaa/goresto/internal/notify"
	"github.com/bigkaa/goresto/internal/repository"
	"github.com/bigkaa/goresto/internal/seed"
	"github.com/bigkaa/goresto/internal/service"
	"github.com/bigkaa/goresto/internal/session"
	"github.com/bigkaa/goresto/internal/token"
)

// newTestServer собирает сервер на mock-данных, как main при старте.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	codec, err := session.NewCodec("")
	if err != nil {
		t.Fatalf("создание codec: %v", err)
	}
	sessions := session.NewManager(codec, false)
	carts := cart.NewStore(codec, false, 3600, logger)
	tokens := token.NewManager("test-secret", "goresto", time.Hour)

	users := repository.NewUserRepository(seed.Users())
	dishes := repository.NewDishRepository(seed.Menu())
	orders := repository.NewOrderRepository(seed.Orders())
	appRoles := repository.NewAppRoleRepository(seed.AppRoles())

	authSvc := auth.NewService(directory.NewStatic(users), sessions, tokens, logger)
	orderSvc := service.NewOrderService(orders, service.ProgressionIntervals{
		ToPreparing:  time.Hour,
		ToDelivery:   time.Hour,
		ToDelivered:  time.Hour,
	}, logger)
	t.Cleanup(orderSvc.Stop)

	hub := notify.NewHub(100, time.Minute, time.Minute, time.Minute)
	t.Cleanup(hub.Close)

	api := handlers.NewAPI(
		authSvc,
		carts,
		service.NewCatalogService(dishes, logger),
		orderSvc,
		service.NewStatsService(orders, logger),
		service.NewUserService(users, logger),
		service.NewAppRoleService(appRoles, logger),
		hub,
		logger,
	)

	c, err := contract.Load(context.Background())
	if err != nil {
		t.Fatalf("загрузка контракта: %v", err)
	}

	machine, err := sessionstate.New(sessionstate.StateUnauthenticated)
	if err != nil {
		t.Fatalf("создание автомата: %v", err)
	}

	cfg := &config.Config{Port: 8080, ShutdownTimeout: 5 * time.Second}
	srv, err := New(cfg, logger, api, handlers.NewHealthHandler(nil), authSvc, c, machine)
	if err != nil {
		t.Fatalf("создание сервера: %v", err)
	}
	return srv
}

// login выполняет вход и возвращает session cookie.
func login(t *testing.T, srv *Server, email string) *http.Cookie {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"email": email})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("вход %s: статус %d, тело %s", email, rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatalf("вход %s: session cookie не установлена", email)
	return nil
}

func get(srv *Server, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestVerifyRouteTable(t *testing.T) {
	c, err := contract.Load(context.Background())
	if err != nil {
		t.Fatalf("загрузка контракта: %v", err)
	}
	if err := verifyRouteTable(c); err != nil {
		t.Errorf("таблица маршрутов не согласована с контрактом: %v", err)
	}
}

func TestRouteTableCoversAllRoles(t *testing.T) {
	for _, role := range roles.All() {
		if _, ok := routeTable[role]; !ok {
			t.Errorf("роль %s не покрыта таблицей маршрутов", role)
		}
	}
}

func TestAnonymousRedirectsToLogin(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/", "/menu", "/cart", "/users", "/staff"} {
		rec := get(srv, path, nil)
		if rec.Code != http.StatusFound {
			t.Errorf("%s: статус %d, ожидался 302", path, rec.Code)
			continue
		}
		if loc := rec.Header().Get("Location"); loc != "/login" {
			t.Errorf("%s: редирект на %s, ожидался /login", path, loc)
		}
	}
}

func TestLoginPageAccessibleAnonymously(t *testing.T) {
	srv := newTestServer(t)

	rec := get(srv, "/login", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("страница входа: статус %d", rec.Code)
	}
}

func TestForeignTreeRedirectsToRoot(t *testing.T) {
	srv := newTestServer(t)

	// Официант запрашивает страницу суперадминистратора.
	cookie := login(t, srv, "staff@example.com")
	rec := get(srv, "/users", cookie)
	if rec.Code != http.StatusFound {
		t.Fatalf("чужой маршрут: статус %d, ожидался 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("чужой маршрут: редирект на %s, ожидался /", loc)
	}
}

func TestEachRoleMountsOwnTree(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		email string
		page  string
	}{
		{"customer@example.com", "home"},
		{"staff@example.com", "staff-dashboard"},
		{"admin@example.com", "admin-dashboard"},
		{"superadmin@example.com", "superadmin-dashboard"},
	}
	for _, tc := range cases {
		cookie := login(t, srv, tc.email)
		rec := get(srv, "/", cookie)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: статус %d", tc.email, rec.Code)
			continue
		}
		var payload struct {
			Page string `json:"page"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Errorf("%s: некорректный JSON: %v", tc.email, err)
			continue
		}
		if payload.Page != tc.page {
			t.Errorf("%s: страница %q, ожидалась %q", tc.email, payload.Page, tc.page)
		}
	}
}

func TestLoadingGateReturns503(t *testing.T) {
	srv := newTestServer(t)

	machine, err := sessionstate.New(sessionstate.StateLoading)
	if err != nil {
		t.Fatalf("создание автомата: %v", err)
	}
	srv.machine = machine

	rec := get(srv, "/", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("фаза загрузки: статус %d, ожидался 503", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("фаза загрузки: нет заголовка Retry-After")
	}

	// Health доступен и в фазе загрузки.
	rec = get(srv, "/health/live", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("liveness в фазе загрузки: статус %d", rec.Code)
	}
}

func TestLogoutThenLoginAsOtherRole(t *testing.T) {
	srv := newTestServer(t)

	cookie := login(t, srv, "customer@example.com")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("выход: статус %d", rec.Code)
	}

	cookie = login(t, srv, "admin@example.com")
	out := get(srv, "/staff", cookie)
	if out.Code != http.StatusOK {
		t.Errorf("страница персонала после повторного входа: статус %d", out.Code)
	}
}

func TestRepeatedLoginOverActiveSessionRejected(t *testing.T) {
	srv := newTestServer(t)

	cookie := login(t, srv, "customer@example.com")

	body, _ := json.Marshal(map[string]string{"email": "admin@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("повторный вход поверх сессии: статус %d, ожидался 409", rec.Code)
	}
}

func TestProfileUpdateRefreshesSession(t *testing.T) {
	srv := newTestServer(t)

	cookie := login(t, srv, "customer@example.com")

	body, _ := json.Marshal(map[string]string{"name": "Новое Имя"})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile", bytes.NewReader(body))
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("обновление профиля: статус %d, тело %s", rec.Code, rec.Body.String())
	}

	var refreshed *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			refreshed = c
		}
	}
	if refreshed == nil {
		t.Fatal("обновление профиля: session cookie не перевыпущена")
	}

	out := get(srv, "/api/v1/auth/me", refreshed)
	if out.Code != http.StatusOK {
		t.Fatalf("текущая идентичность: статус %d", out.Code)
	}
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(out.Body.Bytes(), &payload); err != nil {
		t.Fatalf("текущая идентичность: некорректный JSON: %v", err)
	}
	if payload.Name != "Новое Имя" {
		t.Errorf("имя в сессии %q, ожидалось %q", payload.Name, "Новое Имя")
	}
}

func TestUnknownLoginReturns401(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(map[string]string{"email": "nobody@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("вход несуществующего пользователя: статус %d, ожидался 401", rec.Code)
	}
}

func TestOpenAPIServedOnAuthenticatedTree(t *testing.T) {
	srv := newTestServer(t)

	cookie := login(t, srv, "customer@example.com")
	rec := get(srv, "/api/v1/openapi.yaml", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("контракт: статус %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("openapi:")) {
		t.Error("контракт: тело не похоже на OpenAPI-документ")
	}
}
