package cart

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bigkaa/goresto/internal/domain/model"
	"github.com/bigkaa/goresto/internal/session"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	codec, err := session.NewCodec("test-secret-key")
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewStore(codec, false, 30*24*60*60, logger)
}

func sampleCart(t *testing.T) *model.Cart {
	t.Helper()
	c := model.NewCart()
	if err := c.AddItem(model.Dish{ID: 1, Name: "Салат", Price: 1160}, 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := c.AddItem(model.Dish{ID: 4, Name: "Десерт", Price: 960}, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	return c
}

func TestStoreRoundTrip(t *testing.T) {
	store := testStore(t)
	original := sampleCart(t)

	rec := httptest.NewRecorder()
	if err := store.Save(rec, original); err != nil {
		t.Fatalf("Save: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, ожидался 1", len(cookies))
	}
	if cookies[0].Name != CookieName {
		t.Errorf("имя cookie = %q, ожидалось %q", cookies[0].Name, CookieName)
	}
	if cookies[0].MaxAge <= 0 {
		t.Errorf("MaxAge = %d, корзина должна переживать закрытие браузера", cookies[0].MaxAge)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	loaded := store.Load(req)

	if got := loaded.ItemCount(); got != 3 {
		t.Errorf("ItemCount = %d, ожидалось 3", got)
	}
	if got := loaded.Total(); got != original.Total() {
		t.Errorf("Total = %d, ожидалось %d", got, original.Total())
	}
	if len(loaded.Lines) != 2 || loaded.Lines[0].Dish.ID != 1 {
		t.Errorf("порядок строк не сохранён: %+v", loaded.Lines)
	}
}

func TestStoreLoadMissingCookie(t *testing.T) {
	store := testStore(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	c := store.Load(req)
	if c == nil {
		t.Fatal("Load без cookie должен возвращать пустую корзину, не nil")
	}
	if c.ItemCount() != 0 {
		t.Errorf("ItemCount = %d, ожидалась пустая корзина", c.ItemCount())
	}
}

func TestStoreLoadCorruptCookie(t *testing.T) {
	store := testStore(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "мусор-вместо-шифртекста"})

	c := store.Load(req)
	if c == nil || c.ItemCount() != 0 {
		t.Error("повреждённый cookie должен давать пустую корзину")
	}
}

func TestStoreLoadForeignKey(t *testing.T) {
	// Cookie, зашифрованный другим ключом, равносилен повреждённому.
	otherCodec, _ := session.NewCodec("другой-ключ")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	other := NewStore(otherCodec, false, 60, logger)

	rec := httptest.NewRecorder()
	if err := other.Save(rec, sampleCart(t)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	store := testStore(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])

	c := store.Load(req)
	if c.ItemCount() != 0 {
		t.Error("cookie с чужим ключом должен давать пустую корзину")
	}
}

func TestStoreClear(t *testing.T) {
	store := testStore(t)
	rec := httptest.NewRecorder()
	store.Clear(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Error("Clear должен устанавливать cookie с MaxAge = -1")
	}
}
