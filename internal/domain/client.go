package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client — покупатель с накопленной суммой покупок.
type Client struct {
	ID string
	// Name — обязательное отображаемое имя клиента.
	Name string
	// Contact — свободный текст с контактной информацией (телефон и т.п.).
	Contact string
	// Email уникален среди клиентов, если заполнен; пустой email допустим у многих.
	Email string
	// LifetimeSpend — накопительная сумма всех проведённых заказов; только растёт.
	LifetimeSpend decimal.Decimal
	CreatedAt     time.Time
}

// ValidateInvariants проверяет базовые инварианты клиента.
func (c *Client) ValidateInvariants() []error {
	var errs []error

	if c.Name == "" {
		errs = append(errs, ErrNameRequired)
	}
	if c.LifetimeSpend.IsNegative() {
		errs = append(errs, ErrTotalInvalid)
	}

	return errs
}
