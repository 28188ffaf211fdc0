package directory

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bigkaa/goresto/internal/domain/model"
	"github.com/bigkaa/goresto/internal/domain/roles"
	"github.com/bigkaa/goresto/internal/repository"
	"github.com/bigkaa/goresto/internal/seed"
)

func TestStaticAuthenticate(t *testing.T) {
	ctx := context.Background()
	d := NewStatic(repository.NewUserRepository(seed.Users()))

	tests := []struct {
		name     string
		email    string
		wantRole roles.Role
		wantNil  bool
	}{
		{"известный email", "customer@example.com", roles.RoleCustomer, false},
		{"email без учёта регистра", "ADMIN@example.com", roles.RoleAdmin, false},
		{"неизвестный email", "nobody@example.com", "", true},
		{"пустой email", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := d.Authenticate(ctx, tt.email, "любой-секрет")
			if err != nil {
				t.Fatalf("Authenticate: %v", err)
			}
			if tt.wantNil {
				if u != nil {
					t.Errorf("ожидался nil, получен %+v", u)
				}
				return
			}
			if u == nil {
				t.Fatal("ожидался пользователь, получен nil")
			}
			if u.Role != tt.wantRole {
				t.Errorf("роль = %q, ожидалась %q", u.Role, tt.wantRole)
			}
		})
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRemoteAuthenticate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/authenticate" || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var req authenticateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		switch req.Email {
		case "customer@example.com":
			json.NewEncoder(w).Encode(model.User{
				ID: 1, Name: "Alice Customer", Email: req.Email, Role: roles.RoleCustomer,
			})
		case "boom@example.com":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	c := NewRemoteClient(srv.URL, nil, discardLogger())
	ctx := context.Background()

	u, err := c.Authenticate(ctx, "customer@example.com", "secret")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if u == nil || u.ID != 1 || u.Role != roles.RoleCustomer {
		t.Errorf("пользователь = %+v", u)
	}

	u, err = c.Authenticate(ctx, "unknown@example.com", "secret")
	if err != nil || u != nil {
		t.Errorf("401 должен давать (nil, nil), получено (%+v, %v)", u, err)
	}

	if _, err := c.Authenticate(ctx, "boom@example.com", "secret"); err == nil {
		t.Error("500 каталога должен быть ошибкой")
	}
}

func TestRemoteCheckReady(t *testing.T) {
	healthy := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health/ready" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer srv.Close()

	c := NewRemoteClient(srv.URL, nil, discardLogger())
	ctx := context.Background()

	if err := c.CheckReady(ctx); err != nil {
		t.Errorf("CheckReady здорового каталога: %v", err)
	}

	healthy = false
	if err := c.CheckReady(ctx); err == nil {
		t.Error("CheckReady нездорового каталога должен возвращать ошибку")
	}
}
