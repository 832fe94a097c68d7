package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pos/internal/app"
)

const (
	envLogLevel     = "POS_LOG_LEVEL"
	envMetricsAddr  = "POS_METRICS_ADDR"
	envPostgresDSN  = "POS_POSTGRES_DSN"
	envTimezone     = "POS_TIMEZONE"
	envShopName     = "POS_SHOP_NAME"
	envCurrency     = "POS_CURRENCY"
	envStrictTotals = "POS_STRICT_TOTALS"
)

// envLookup абстрагирует доступ к окружению для тестируемости.
type envLookup func(key string) (string, bool)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	level, err := log.ParseLevel(os.Getenv(envLogLevel))
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

// readConfigFromEnv формирует конфигурацию приложения из переменных окружения.
func readConfigFromEnv(lookup envLookup) app.Config {
	cfg := app.DefaultConfig()
	if v, ok := lookup(envMetricsAddr); ok && strings.TrimSpace(v) != "" {
		cfg.MetricsAddr = strings.TrimSpace(v)
	}
	if v, ok := lookup(envPostgresDSN); ok && strings.TrimSpace(v) != "" {
		cfg.PostgresDSN = strings.TrimSpace(v)
	}
	if v, ok := lookup(envTimezone); ok && strings.TrimSpace(v) != "" {
		cfg.Timezone = strings.TrimSpace(v)
	}
	if v, ok := lookup(envShopName); ok && strings.TrimSpace(v) != "" {
		cfg.ShopName = strings.TrimSpace(v)
	}
	if v, ok := lookup(envCurrency); ok && strings.TrimSpace(v) != "" {
		cfg.CurrencySymbol = strings.TrimSpace(v)
	}
	if v, ok := lookup(envStrictTotals); ok {
		cfg.StrictTotals = parseBool(v)
	}
	return cfg
}

// parseBool принимает типичные истинные значения переменных окружения.
func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func main() {
	setupLogger()
	cfg := readConfigFromEnv(os.LookupEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"metrics_addr":  cfg.MetricsAddr,
		"timezone":      cfg.Timezone,
		"strict_totals": cfg.StrictTotals,
	}).Info("запускаем POS-сервис")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("POS-сервис остановлен")
}
