package memory

import (
	"github.com/vladislavdragonenkov/pos/internal/domain"
)

// fulfillmentRepository проводит заказ под общим мьютексом хранилища,
// поэтому два конкурирующих проведения не могут оба пройти проверку
// остатка по последней единице товара.
type fulfillmentRepository struct {
	store *Store
}

// Fulfill атомарно проводит заказ: все проверки выполняются до первой
// мутации, поэтому отказ не оставляет частичных изменений.
func (r *fulfillmentRepository) Fulfill(cmd domain.FulfillmentCommand) (domain.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	client, ok := r.store.clients[cmd.ClientID]
	if !ok {
		return domain.Order{}, domain.ErrClientNotFound
	}
	if len(cmd.Lines) == 0 {
		return domain.Order{}, domain.ErrLinesRequired
	}
	// Остаток расходуется накопительно по позициям: несколько строк одного
	// товара не могут в сумме списать больше, чем есть на складе.
	remaining := make(map[string]int64, len(cmd.Lines))
	for _, line := range cmd.Lines {
		if line.Quantity <= 0 {
			return domain.Order{}, domain.ErrQuantityInvalid
		}
		item, ok := r.store.items[line.ItemID]
		if !ok {
			return domain.Order{}, domain.ErrItemNotFound
		}
		available, seen := remaining[line.ItemID]
		if !seen {
			available = item.Quantity
		}
		if available < line.Quantity {
			return domain.Order{}, &domain.InsufficientStockError{
				ItemID:    line.ItemID,
				Requested: line.Quantity,
				Available: available,
			}
		}
		remaining[line.ItemID] = available - line.Quantity
	}

	order := domain.Order{
		ID:         cmd.OrderID,
		ClientID:   cmd.ClientID,
		PlacedAt:   cmd.PlacedAt,
		TotalPrice: cmd.TotalPrice,
		VideoURL:   cmd.VideoURL,
		Lines:      make([]domain.OrderLine, 0, len(cmd.Lines)),
	}
	for _, line := range cmd.Lines {
		order.Lines = append(order.Lines, domain.OrderLine{
			ID:       line.ID,
			OrderID:  cmd.OrderID,
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		})

		item := r.store.items[line.ItemID]
		item.Quantity -= line.Quantity
		r.store.items[line.ItemID] = item
	}

	client.LifetimeSpend = client.LifetimeSpend.Add(cmd.TotalPrice)
	r.store.clients[cmd.ClientID] = client
	r.store.orders[cmd.OrderID] = cloneOrder(order)

	return order, nil
}

var _ domain.FulfillmentRepository = (*fulfillmentRepository)(nil)
