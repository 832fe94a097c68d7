package fulfillment

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pos/internal/domain"
	"github.com/vladislavdragonenkov/pos/internal/metrics"
)

// LineRequest — запрошенная позиция: товар и количество.
type LineRequest struct {
	ItemID   string
	Quantity int64
}

// Engine — движок проведения заказа. Единственное место в системе, где
// несколько сущностей меняются вместе: заголовок заказа, позиции, остатки
// товаров и накопленная сумма клиента записываются как одно целое.
type Engine struct {
	catalog      domain.CatalogRepository
	store        domain.FulfillmentRepository
	clock        domain.Clock
	logger       *log.Entry
	metrics      *metrics.FulfillmentMetrics
	strictTotals bool
}

// NewEngine создаёт рабочий экземпляр движка проведения.
// strictTotals включает проверку суммы заказа против суммы позиций
// по текущим продажным ценам; по умолчанию сумма принимается как есть,
// что оставляет место скидкам и ручным корректировкам.
func NewEngine(
	catalog domain.CatalogRepository,
	store domain.FulfillmentRepository,
	clock domain.Clock,
	strictTotals bool,
	logger *log.Entry,
) *Engine {
	if logger == nil {
		logger = log.New().WithField("component", "fulfillment")
	}
	return &Engine{
		catalog:      catalog,
		store:        store,
		clock:        clock,
		logger:       logger,
		metrics:      metrics.NewFulfillmentMetrics(),
		strictTotals: strictTotals,
	}
}

// NewEngineWithoutMetrics создаёт движок без метрик (для тестов).
func NewEngineWithoutMetrics(
	catalog domain.CatalogRepository,
	store domain.FulfillmentRepository,
	clock domain.Clock,
	strictTotals bool,
	logger *log.Entry,
) *Engine {
	engine := NewEngine(catalog, store, clock, strictTotals, logger)
	engine.metrics = nil
	return engine
}

// FulfillOrder проводит заказ: проверяет предусловия до первой мутации,
// затем выполняет атомарную запись через хранилище. Любой отказ не
// оставляет частичных изменений.
func (e *Engine) FulfillOrder(clientID string, totalPrice decimal.Decimal, videoURL string, lines []LineRequest) (domain.Order, error) {
	start := time.Now()
	if e.metrics != nil {
		e.metrics.RecordInFlightStarted()
	}
	defer func() {
		if e.metrics != nil {
			e.metrics.RecordInFlightFinished()
			e.metrics.RecordDuration(time.Since(start))
		}
	}()

	if err := e.checkPreconditions(clientID, totalPrice, lines); err != nil {
		e.recordRejection(err)
		e.logger.WithError(err).WithField("client_id", clientID).Warn("fulfillment rejected")
		return domain.Order{}, err
	}

	cmd := domain.FulfillmentCommand{
		OrderID:    uuid.NewString(),
		ClientID:   clientID,
		TotalPrice: totalPrice,
		VideoURL:   videoURL,
		PlacedAt:   e.clock.Now(),
		Lines:      make([]domain.LineInput, 0, len(lines)),
	}
	for _, line := range lines {
		cmd.Lines = append(cmd.Lines, domain.LineInput{
			ID:       uuid.NewString(),
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		})
	}

	// Хранилище повторяет проверку остатков внутри транзакции: предпроверка
	// выше даёт ранний отказ с деталями, но авторитетна именно транзакция —
	// конкурирующее проведение могло уже списать остаток.
	order, err := e.store.Fulfill(cmd)
	if err != nil {
		e.recordRejection(err)
		e.logger.WithError(err).WithFields(log.Fields{
			"client_id": clientID,
			"order_id":  cmd.OrderID,
		}).Warn("fulfillment failed")
		return domain.Order{}, err
	}

	if e.metrics != nil {
		e.metrics.RecordFulfilled()
	}
	e.logger.WithFields(log.Fields{
		"order_id":  order.ID,
		"client_id": clientID,
		"lines":     len(order.Lines),
		"total":     totalPrice.StringFixed(2),
	}).Info("order fulfilled")

	return order, nil
}

// checkPreconditions выполняет все проверки до какой-либо мутации.
func (e *Engine) checkPreconditions(clientID string, totalPrice decimal.Decimal, lines []LineRequest) error {
	if totalPrice.IsNegative() {
		return domain.ErrTotalInvalid
	}
	if _, err := e.catalog.GetClient(clientID); err != nil {
		return err
	}
	if len(lines) == 0 {
		return domain.ErrLinesRequired
	}

	// Остаток расходуется накопительно: повторные строки одного товара
	// проверяются против того, что осталось после предыдущих строк.
	remaining := make(map[string]int64, len(lines))
	lineSum := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			return domain.ErrQuantityInvalid
		}
		item, err := e.catalog.GetItem(line.ItemID)
		if err != nil {
			return err
		}
		available, seen := remaining[line.ItemID]
		if !seen {
			available = item.Quantity
		}
		if available < line.Quantity {
			return &domain.InsufficientStockError{
				ItemID:    line.ItemID,
				Requested: line.Quantity,
				Available: available,
			}
		}
		remaining[line.ItemID] = available - line.Quantity
		lineSum = lineSum.Add(item.SellingPrice.Mul(decimal.NewFromInt(line.Quantity)))
	}

	if e.strictTotals && !lineSum.Equal(totalPrice) {
		return domain.ErrTotalMismatch
	}

	return nil
}

func (e *Engine) recordRejection(err error) {
	if e.metrics == nil {
		return
	}
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		e.metrics.RecordInsufficientStock()
		e.metrics.RecordRejected("insufficient_stock")
	case domain.IsNotFound(err):
		e.metrics.RecordRejected("not_found")
	case domain.IsValidation(err):
		e.metrics.RecordRejected("validation")
	default:
		e.metrics.RecordRejected("storage")
	}
}
