package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bigkaa/goresto/internal/domain/model"
	"github.com/bigkaa/goresto/internal/domain/roles"
)

func testUser() *model.User {
	return &model.User{
		ID:    1,
		Name:  "Alice Customer",
		Email: "customer@example.com",
		Role:  roles.RoleCustomer,
	}
}

func TestCodecRoundTrip(t *testing.T) {
	codec, err := NewCodec("test-secret-key")
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	original := New(testUser())
	encrypted, err := codec.Encrypt(original)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	var decoded SessionData
	if err := codec.Decrypt(encrypted, &decoded); err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if decoded.SID != original.SID {
		t.Errorf("SID = %q, ожидался %q", decoded.SID, original.SID)
	}
	if decoded.User == nil || decoded.User.Email != "customer@example.com" {
		t.Errorf("пользователь не восстановлен: %+v", decoded.User)
	}
}

func TestCodecUniqueNonce(t *testing.T) {
	codec, err := NewCodec("test-secret-key")
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	data := New(testUser())
	first, _ := codec.Encrypt(data)
	second, _ := codec.Encrypt(data)
	if first == second {
		t.Error("повторное шифрование дало одинаковый ciphertext — nonce не уникален")
	}
}

func TestCodecRejectsWrongKey(t *testing.T) {
	one, _ := NewCodec("key-one")
	two, _ := NewCodec("key-two")

	encrypted, err := one.Encrypt(New(testUser()))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	var decoded SessionData
	if err := two.Decrypt(encrypted, &decoded); err == nil {
		t.Error("Decrypt чужим ключом должен завершаться ошибкой")
	}
}

func TestCodecRejectsGarbage(t *testing.T) {
	codec, _ := NewCodec("test-secret-key")

	tests := []struct {
		name  string
		input string
	}{
		{"не base64", "%%%не-base64%%%"},
		{"слишком короткие данные", "YWJj"},
		{"пустая строка", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var decoded SessionData
			if err := codec.Decrypt(tt.input, &decoded); err == nil {
				t.Error("ожидалась ошибка дешифрования")
			}
		})
	}
}

func TestManagerCookieLifecycle(t *testing.T) {
	codec, _ := NewCodec("test-secret-key")
	m := NewManager(codec, false)

	// Установка cookie
	rec := httptest.NewRecorder()
	data := New(testUser())
	if err := m.Set(rec, data); err != nil {
		t.Fatalf("Set: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, ожидался 1", len(cookies))
	}
	c := cookies[0]
	if c.Name != CookieName {
		t.Errorf("имя cookie = %q, ожидалось %q", c.Name, CookieName)
	}
	if !c.HttpOnly {
		t.Error("cookie должен быть HttpOnly")
	}
	if c.MaxAge != 0 {
		t.Errorf("MaxAge = %d, ожидался сессионный cookie (0)", c.MaxAge)
	}

	// Чтение cookie из запроса
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	got, err := m.Get(req)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.SID != data.SID {
		t.Fatalf("сессия не восстановлена: %+v", got)
	}

	// Отсутствующий cookie — nil, nil
	empty := httptest.NewRequest(http.MethodGet, "/", nil)
	got, err = m.Get(empty)
	if err != nil || got != nil {
		t.Errorf("Get без cookie: (%+v, %v), ожидалось (nil, nil)", got, err)
	}

	// Удаление cookie
	clearRec := httptest.NewRecorder()
	m.Clear(clearRec)
	cleared := clearRec.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge != -1 {
		t.Error("Clear должен устанавливать cookie с MaxAge = -1")
	}
}
