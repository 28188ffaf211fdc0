package model

import (
	"time"

	"github.com/bigkaa/goresto/internal/domain/roles"
)

// OrderStatus — статус заказа.
type OrderStatus string

const (
	// StatusPlaced — заказ размещён.
	StatusPlaced OrderStatus = "placed"
	// StatusPreparing — заказ готовится.
	StatusPreparing OrderStatus = "preparing"
	// StatusOutForDelivery — заказ в доставке.
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	// StatusDelivered — заказ доставлен (конечный статус).
	StatusDelivered OrderStatus = "delivered"
	// StatusCancelled — заказ отменён (конечный статус).
	StatusCancelled OrderStatus = "cancelled"
)

// IsFinal возвращает true для конечных статусов заказа.
func (s OrderStatus) IsFinal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Order — размещённый заказ.
// Items — снимок строк корзины на момент оформления, Total вычислен
// сервером из снимка (клиентскому значению не доверяем).
type Order struct {
	// ID — уникальный идентификатор заказа (uuid).
	ID string `json:"id"`
	// UserID — кто оформил заказ.
	UserID int64 `json:"user_id"`
	// Items — строки заказа.
	Items []CartLine `json:"items"`
	// Total — итоговая стоимость в минорных единицах.
	Total int64 `json:"total"`
	// Status — текущий статус.
	Status OrderStatus `json:"status"`
	// PlacedBy — роль оформившего (customer — самообслуживание, staff — заказ в зале).
	PlacedBy roles.Role `json:"placed_by"`
	// OrderDate — время оформления.
	OrderDate time.Time `json:"order_date"`
	// EstimatedDelivery — расчётное время доставки.
	EstimatedDelivery time.Time `json:"estimated_delivery"`
}
