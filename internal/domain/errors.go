package domain

import (
	"errors"
	"fmt"
)

var (
	// Ошибка отсутствующего имени у клиента или товара.
	ErrNameRequired = errors.New("name is required")
	// Ошибка при некорректном количестве в позиции (<= 0).
	ErrQuantityInvalid = errors.New("quantity must be greater than zero")
	// Ошибка отрицательного остатка на складе.
	ErrStockNegative = errors.New("item quantity must be non-negative")
	// Ошибка отрицательной цены (закупочной или продажной).
	ErrPriceNegative = errors.New("price must be non-negative")
	// Ошибка отсутствия хотя бы одной позиции в заказе.
	ErrLinesRequired = errors.New("order must contain at least one line")
	// Ошибка отрицательной суммы заказа.
	ErrTotalInvalid = errors.New("total price must be non-negative")
	// Ошибка несоответствия суммы заказа и сумм позиций (только при строгой проверке).
	ErrTotalMismatch = errors.New("total price does not match line sum")
	// ErrClientNotFound возвращается, если клиент не найден в хранилище.
	ErrClientNotFound = errors.New("client not found")
	// ErrItemNotFound возвращается, если товар не найден в хранилище.
	ErrItemNotFound = errors.New("item not found")
	// ErrOrderNotFound возвращается, если заказ не найден в хранилище.
	ErrOrderNotFound = errors.New("order not found")
	// ErrEmailTaken — email уже зарегистрирован за другим клиентом.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrClientReferenced — клиента нельзя удалить, на него ссылаются заказы.
	ErrClientReferenced = errors.New("client is referenced by existing orders")
	// ErrItemReferenced — товар нельзя удалить, на него ссылаются позиции заказов.
	ErrItemReferenced = errors.New("item is referenced by existing order lines")
	// ErrInsufficientStock — базовая ошибка нехватки остатка на складе.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError уточняет, какого товара не хватило и сколько доступно.
type InsufficientStockError struct {
	ItemID    string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %s: requested %d, available %d",
		e.ItemID, e.Requested, e.Available)
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// IsValidation сообщает, относится ли ошибка к некорректному вводу.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrNameRequired, ErrQuantityInvalid, ErrStockNegative, ErrPriceNegative,
		ErrLinesRequired, ErrTotalInvalid, ErrTotalMismatch,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound сообщает, что указанный идентификатор не существует.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrClientNotFound) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrOrderNotFound)
}

// IsConflict сообщает о нарушении уникальности или ссылочной целостности.
func IsConflict(err error) bool {
	return errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrClientReferenced) ||
		errors.Is(err, ErrItemReferenced)
}
