package memory

import (
	"sort"
	"strings"

	"github.com/vladislavdragonenkov/pos/internal/domain"
)

// orderRepository — in-memory реализация журнала заказов.
type orderRepository struct {
	store *Store
}

// CreateOrder сохраняет заголовок заказа вместе с позициями.
// Ссылки на клиента и товары должны быть валидны на момент вставки.
func (r *orderRepository) CreateOrder(order domain.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.clients[order.ClientID]; !ok {
		return domain.ErrClientNotFound
	}
	for _, line := range order.Lines {
		if _, ok := r.store.items[line.ItemID]; !ok {
			return domain.ErrItemNotFound
		}
	}
	r.store.orders[order.ID] = cloneOrder(order)
	return nil
}

// GetOrder возвращает заказ с позициями или ErrOrderNotFound.
func (r *orderRepository) GetOrder(id string) (domain.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	order, ok := r.store.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

// ListSummaries возвращает заказы с именами клиентов, новые выше.
func (r *orderRepository) ListSummaries(search string) ([]domain.OrderSummary, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	term := strings.ToLower(search)
	result := make([]domain.OrderSummary, 0, len(r.store.orders))
	for _, order := range r.store.orders {
		clientName := ""
		if client, ok := r.store.clients[order.ClientID]; ok {
			clientName = client.Name
		}
		if term != "" && !strings.Contains(strings.ToLower(clientName), term) {
			continue
		}
		result = append(result, domain.OrderSummary{
			OrderID:    order.ID,
			ClientName: clientName,
			PlacedAt:   order.PlacedAt,
			TotalPrice: order.TotalPrice,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].PlacedAt.Equal(result[j].PlacedAt) {
			return result[i].PlacedAt.After(result[j].PlacedAt)
		}
		return result[i].OrderID > result[j].OrderID
	})

	return result, nil
}

// Detail собирает данные счёта: заголовок, клиент и позиции с текущими ценами.
func (r *orderRepository) Detail(orderID string) (domain.OrderDetail, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	order, ok := r.store.orders[orderID]
	if !ok {
		return domain.OrderDetail{}, domain.ErrOrderNotFound
	}

	detail := domain.OrderDetail{
		OrderID:    order.ID,
		PlacedAt:   order.PlacedAt,
		TotalPrice: order.TotalPrice,
		VideoURL:   order.VideoURL,
	}
	if client, ok := r.store.clients[order.ClientID]; ok {
		detail.ClientName = client.Name
		detail.ClientContact = client.Contact
		detail.ClientEmail = client.Email
	}

	detail.Lines = make([]domain.DetailLine, 0, len(order.Lines))
	for _, line := range order.Lines {
		item := r.store.items[line.ItemID]
		detail.Lines = append(detail.Lines, domain.DetailLine{
			ItemName:     item.Name,
			Quantity:     line.Quantity,
			CostPrice:    item.CostPrice,
			SellingPrice: item.SellingPrice,
		})
	}

	return detail, nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
