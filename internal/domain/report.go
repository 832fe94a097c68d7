package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderSummary — строка списка заказов: заказ, имя клиента, дата, сумма.
type OrderSummary struct {
	OrderID    string
	ClientName string
	PlacedAt   time.Time
	TotalPrice decimal.Decimal
}

// DetailLine — позиция счёта. Цены берутся из текущей карточки товара
// на момент чтения, а не фиксируются при продаже.
type DetailLine struct {
	ItemName     string
	Quantity     int64
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
}

// OrderDetail — данные для рендеринга счёта: заголовок заказа,
// сведения о клиенте и позиции с текущими ценами.
type OrderDetail struct {
	OrderID       string
	PlacedAt      time.Time
	TotalPrice    decimal.Decimal
	VideoURL      string
	ClientName    string
	ClientContact string
	ClientEmail   string
	Lines         []DetailLine
}
