// Пакет contract встраивает OpenAPI-описание сервиса и проверяет его
// при старте. Роутер сверяет свою таблицу маршрутов с контрактом:
// каждый объявленный путь обязан присутствовать в документе.
package contract

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var rawSpec []byte

// Contract — загруженный и провалидированный OpenAPI-документ.
type Contract struct {
	doc *openapi3.T
}

// Load разбирает встроенный документ и валидирует его.
// Ошибка здесь означает сломанный контракт и должна останавливать старт.
func Load(ctx context.Context) (*Contract, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("разбор openapi.yaml: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("валидация openapi.yaml: %w", err)
	}
	return &Contract{doc: doc}, nil
}

// HasPath сообщает, описан ли путь в контракте. Путь задаётся в
// нотации документа: параметры в фигурных скобках ({id}).
func (c *Contract) HasPath(path string) bool {
	return c.doc.Paths.Find(path) != nil
}

// Paths возвращает все пути контракта.
func (c *Contract) Paths() []string {
	return c.doc.Paths.InMatchingOrder()
}

// Raw возвращает исходный YAML для раздачи клиентам.
func (c *Contract) Raw() []byte {
	return rawSpec
}

// Version возвращает версию API из info.version.
func (c *Contract) Version() string {
	return c.doc.Info.Version
}
