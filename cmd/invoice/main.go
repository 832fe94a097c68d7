package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pos/internal/service/invoice"
	"github.com/vladislavdragonenkov/pos/internal/service/reporting"
	"github.com/vladislavdragonenkov/pos/internal/storage/postgres"
)

// Утилита печатает счёт по заказу: тот же путь чтения, которым пользуется
// внешний PDF-рендерер.
func main() {
	var (
		orderID  string
		dsn      string
		shop     string
		currency string
	)

	flag.StringVar(&orderID, "order", "", "order ID to render")
	flag.StringVar(&dsn, "dsn", "", "PostgreSQL DSN (fallback: POS_POSTGRES_DSN)")
	flag.StringVar(&shop, "shop", "Kay Scoops - Sweet Surprises", "shop name for the invoice header")
	flag.StringVar(&currency, "currency", "R", "currency symbol")
	flag.Parse()

	if orderID == "" {
		fail("-order is required")
	}
	if strings.TrimSpace(dsn) == "" {
		dsn = strings.TrimSpace(os.Getenv("POS_POSTGRES_DSN"))
	}
	if dsn == "" {
		fail("POS_POSTGRES_DSN (or -dsn) is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := postgres.Open(ctx, dsn)
	if err != nil {
		fail("open postgres store: %v", err)
	}
	defer store.Close()

	view := reporting.NewView(postgres.NewOrderRepository(store), log.WithField("component", "invoice-cli"))
	detail, err := view.OrderDetail(orderID)
	if err != nil {
		fail("load order detail: %v", err)
	}

	renderer := invoice.NewRenderer(shop, currency)
	fmt.Print(renderer.Render(detail))
}

func fail(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
