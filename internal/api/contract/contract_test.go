package contract

import (
	"context"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	c, err := Load(context.Background())
	if err != nil {
		t.Fatalf("контракт не загрузился: %v", err)
	}
	if c.Version() == "" {
		t.Error("пустая версия контракта")
	}
	if len(c.Raw()) == 0 {
		t.Error("пустой исходный документ")
	}
}

func TestHasPath(t *testing.T) {
	c, err := Load(context.Background())
	if err != nil {
		t.Fatalf("контракт не загрузился: %v", err)
	}

	for _, p := range []string{
		"/",
		"/login",
		"/menu",
		"/dish/{id}",
		"/track-order/{id}",
		"/api/v1/auth/login",
		"/api/v1/cart/items/{id}",
		"/api/v1/checkout",
		"/api/v1/orders/{id}/cancel",
		"/api/v1/notifications/{id}",
		"/api/v1/staff/{id}",
		"/api/v1/roles/{id}",
		"/api/v1/users/{id}",
		"/api/v1/items/{id}",
		"/api/v1/openapi.yaml",
		"/health/live",
		"/health/ready",
		"/metrics",
	} {
		if !c.HasPath(p) {
			t.Errorf("путь %s отсутствует в контракте", p)
		}
	}

	if c.HasPath("/no-such-path") {
		t.Error("несуществующий путь найден в контракте")
	}
}

func TestPathsCoverAPIPrefix(t *testing.T) {
	c, err := Load(context.Background())
	if err != nil {
		t.Fatalf("контракт не загрузился: %v", err)
	}

	var api int
	for _, p := range c.Paths() {
		if strings.HasPrefix(p, "/api/v1/") {
			api++
		}
	}
	if api == 0 {
		t.Error("в контракте нет путей /api/v1")
	}
}
