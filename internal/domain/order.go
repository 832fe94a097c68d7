package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine представляет одну позицию заказа: товар и количество.
// Позиции фиксируются при создании заказа и не изменяются.
type OrderLine struct {
	ID      string
	OrderID string
	// ItemID ссылается на существующий товар на момент создания позиции.
	ItemID string
	// Quantity — количество единиц; строго положительное.
	Quantity int64
}

// Order — проведённая покупка клиента. После создания заказ неизменяем:
// ни обновление, ни удаление не определены.
type Order struct {
	ID       string
	ClientID string
	// PlacedAt назначается часами приложения при проведении, а не вызывающей стороной.
	PlacedAt time.Time
	// TotalPrice задаётся вызывающей стороной и не пересчитывается из позиций,
	// что оставляет место скидкам и ручным корректировкам.
	TotalPrice decimal.Decimal
	// VideoURL — необязательная внешняя ссылка, привязанная к покупке.
	VideoURL string
	Lines    []OrderLine
}

// ValidateInvariants проверяет базовые инварианты заказа и его позиций.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.ClientID == "" {
		errs = append(errs, ErrClientNotFound)
	}
	if len(o.Lines) == 0 {
		errs = append(errs, ErrLinesRequired)
	}
	if o.TotalPrice.IsNegative() {
		errs = append(errs, ErrTotalInvalid)
	}
	for _, line := range o.Lines {
		if line.Quantity <= 0 {
			errs = append(errs, ErrQuantityInvalid)
		}
	}

	return errs
}

// LineInput — входная позиция для проведения заказа.
type LineInput struct {
	ID       string
	ItemID   string
	Quantity int64
}

// FulfillmentCommand описывает одну атомарную операцию проведения заказа:
// заголовок, позиции, списание остатков и начисление суммы клиенту
// выполняются как единое целое.
type FulfillmentCommand struct {
	OrderID    string
	ClientID   string
	TotalPrice decimal.Decimal
	VideoURL   string
	PlacedAt   time.Time
	Lines      []LineInput
}
