// Пакет session — сессии пользователей goresto.
// Состояние сессии живёт на стороне браузера в зашифрованном cookie
// (AES-256-GCM), сервер ничего не хранит между запросами.
package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Codec шифрует/дешифрует произвольные JSON-значения для хранения
// в HTTP cookie. Один экземпляр обслуживает и сессию, и корзину.
type Codec struct {
	// gcm — AEAD cipher для шифрования/дешифрования.
	gcm cipher.AEAD
}

// NewCodec создаёт кодек поверх AES-256-GCM.
// key — 32-байтовый ключ; пустой key — случайный ключ
// (непостоянный между рестартами, cookies инвалидируются).
func NewCodec(key string) (*Codec, error) {
	var keyBytes []byte

	if key == "" {
		keyBytes = make([]byte, 32)
		if _, err := io.ReadFull(rand.Reader, keyBytes); err != nil {
			return nil, fmt.Errorf("ошибка генерации ключа сессии: %w", err)
		}
	} else {
		// Декодируем base64-ключ или используем строку как есть
		var err error
		keyBytes, err = base64.StdEncoding.DecodeString(key)
		if err != nil || len(keyBytes) != 32 {
			// Если не base64 — хешируем строку до 32 bytes через SHA-256
			// (для удобства конфигурации)
			keyBytes = sha256Key(key)
		}
	}

	block, err := aes.NewCipher(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания AES cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания GCM: %w", err)
	}

	return &Codec{gcm: gcm}, nil
}

// Encrypt сериализует v в JSON, шифрует и возвращает base64-строку.
func (c *Codec) Encrypt(v any) (string, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("ошибка сериализации: %w", err)
	}

	// Уникальный nonce для каждого шифрования
	nonce := make([]byte, c.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("ошибка генерации nonce: %w", err)
	}

	// nonce prepended к ciphertext
	ciphertext := c.gcm.Seal(nonce, nonce, plaintext, nil)

	return base64.URLEncoding.EncodeToString(ciphertext), nil
}

// Decrypt дешифрует base64-строку и десериализует JSON в v.
func (c *Codec) Decrypt(encrypted string, v any) error {
	ciphertext, err := base64.URLEncoding.DecodeString(encrypted)
	if err != nil {
		return fmt.Errorf("ошибка декодирования base64: %w", err)
	}

	nonceSize := c.gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return errors.New("зашифрованные данные слишком короткие")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := c.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return fmt.Errorf("ошибка дешифрования: %w", err)
	}

	if err := json.Unmarshal(plaintext, v); err != nil {
		return fmt.Errorf("ошибка десериализации: %w", err)
	}

	return nil
}

// sha256Key хеширует строковый ключ в 32 bytes через SHA-256.
func sha256Key(key string) []byte {
	h := sha256.Sum256([]byte(key))
	return h[:]
}
