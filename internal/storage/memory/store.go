package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/pos/internal/domain"
)

// Store — in-memory хранилище для локальной разработки и тестов.
// Клиенты, товары и заказы живут под одним мьютексом: проверки ссылочной
// целостности и проведение заказа требуют согласованного взгляда на все
// три набора, а общий мьютекс даёт ту же изоляцию, что транзакция в БД.
type Store struct {
	mu      sync.RWMutex
	clients map[string]domain.Client
	items   map[string]domain.Item
	orders  map[string]domain.Order
}

// NewStore создаёт пустое хранилище.
func NewStore() *Store {
	return &Store{
		clients: make(map[string]domain.Client),
		items:   make(map[string]domain.Item),
		orders:  make(map[string]domain.Order),
	}
}

// Catalog возвращает представление хранилища как каталога клиентов и товаров.
func (s *Store) Catalog() domain.CatalogRepository {
	return &catalogRepository{store: s}
}

// Orders возвращает представление хранилища как журнала заказов.
func (s *Store) Orders() domain.OrderRepository {
	return &orderRepository{store: s}
}

// Fulfillment возвращает транзакционное представление для проведения заказов.
func (s *Store) Fulfillment() domain.FulfillmentRepository {
	return &fulfillmentRepository{store: s}
}

// cloneOrder копирует заказ вместе со срезом позиций, чтобы изменения
// снаружи не задели хранимое состояние.
func cloneOrder(order domain.Order) domain.Order {
	lines := make([]domain.OrderLine, len(order.Lines))
	copy(lines, order.Lines)
	order.Lines = lines
	return order
}
