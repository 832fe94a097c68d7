package app

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pos/internal/domain"
	"github.com/vladislavdragonenkov/pos/internal/service/catalog"
	"github.com/vladislavdragonenkov/pos/internal/service/fulfillment"
	"github.com/vladislavdragonenkov/pos/internal/service/invoice"
	"github.com/vladislavdragonenkov/pos/internal/service/reporting"
	"github.com/vladislavdragonenkov/pos/internal/storage/memory"
	"github.com/vladislavdragonenkov/pos/internal/storage/postgres"
)

// Dependencies содержит все зависимости приложения. Каждый компонент
// получает свои хендлы явно при конструировании — никаких общих
// синглтонов между экранами.
type Dependencies struct {
	Catalog   *catalog.Service
	Engine    *fulfillment.Engine
	Reporting *reporting.View
	Invoices  *invoice.Renderer
	Clock     domain.Clock
	Logger    *log.Entry

	// store непустой только при работе поверх PostgreSQL.
	store *postgres.Store
}

// NewDependencies собирает зависимости по конфигурации. При пустом DSN
// используется in-memory хранилище (локальная разработка и тесты).
// Схема БД применяется здесь же, один раз, до каких-либо бизнес-операций.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	clock := domain.NewSystemClock(loc)

	var (
		catalogRepo domain.CatalogRepository
		orderRepo   domain.OrderRepository
		fulfillRepo domain.FulfillmentRepository
		store       *postgres.Store
	)

	if cfg.PostgresDSN != "" {
		store, err = postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		catalogRepo = postgres.NewCatalogRepository(store)
		orderRepo = postgres.NewOrderRepository(store)
		fulfillRepo = postgres.NewFulfillmentRepository(store)
		logger.Info("storage: postgres")
	} else {
		memStore := memory.NewStore()
		catalogRepo = memStore.Catalog()
		orderRepo = memStore.Orders()
		fulfillRepo = memStore.Fulfillment()
		logger.Warn("storage: in-memory, данные не переживут перезапуск")
	}

	return &Dependencies{
		Catalog:   catalog.NewService(catalogRepo, clock, logger.WithField("layer", "catalog")),
		Engine:    fulfillment.NewEngine(catalogRepo, fulfillRepo, clock, cfg.StrictTotals, logger.WithField("layer", "fulfillment")),
		Reporting: reporting.NewView(orderRepo, logger.WithField("layer", "reporting")),
		Invoices:  invoice.NewRenderer(cfg.ShopName, cfg.CurrencySymbol),
		Clock:     clock,
		Logger:    logger,
		store:     store,
	}, nil
}

// StorePing возвращает функцию проверки хранилища для health check,
// либо nil для in-memory варианта.
func (d *Dependencies) StorePing() func() error {
	if d.store == nil {
		return nil
	}
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return d.store.Ping(ctx)
	}
}

// Close освобождает ресурсы хранилища.
func (d *Dependencies) Close() error {
	if d.store == nil {
		return nil
	}
	return d.store.Close()
}
