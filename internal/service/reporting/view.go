package reporting

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pos/internal/domain"
)

// View — read-only срез журнала заказов для экранов и генерации счетов.
// Никаких мутаций; данные отражают состояние на момент чтения, включая
// текущие цены товаров.
type View struct {
	orders domain.OrderRepository
	logger *log.Entry
}

// NewView создаёт отчётное представление поверх журнала заказов.
func NewView(orders domain.OrderRepository, logger *log.Entry) *View {
	if logger == nil {
		logger = log.New().WithField("component", "reporting")
	}
	return &View{orders: orders, logger: logger}
}

// ListOrders возвращает заказы с именами клиентов, новые выше.
// search — подстрока имени клиента без учёта регистра.
func (v *View) ListOrders(search string) ([]domain.OrderSummary, error) {
	return v.orders.ListSummaries(strings.TrimSpace(search))
}

// OrderDetail возвращает данные счёта по заказу. Цены позиций — текущие
// значения карточек товаров, а не зафиксированные при продаже.
func (v *View) OrderDetail(orderID string) (domain.OrderDetail, error) {
	detail, err := v.orders.Detail(orderID)
	if err != nil {
		return domain.OrderDetail{}, err
	}

	v.logger.WithFields(log.Fields{
		"order_id": orderID,
		"lines":    len(detail.Lines),
	}).Debug("order detail assembled")

	return detail, nil
}
