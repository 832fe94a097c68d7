package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item — складская позиция, доступная к продаже.
type Item struct {
	ID string
	// Name — обязательное название товара.
	Name string
	// Quantity — остаток на складе; никогда не опускается ниже нуля.
	Quantity int64
	// CostPrice — закупочная цена за единицу.
	CostPrice decimal.Decimal
	// SellingPrice — продажная цена за единицу; читается на момент продажи,
	// в заказе не фиксируется.
	SellingPrice decimal.Decimal
	CreatedAt    time.Time
}

// ValidateInvariants проверяет базовые инварианты товара.
func (i *Item) ValidateInvariants() []error {
	var errs []error

	if i.Name == "" {
		errs = append(errs, ErrNameRequired)
	}
	if i.Quantity < 0 {
		errs = append(errs, ErrStockNegative)
	}
	if i.CostPrice.IsNegative() || i.SellingPrice.IsNegative() {
		errs = append(errs, ErrPriceNegative)
	}

	return errs
}
