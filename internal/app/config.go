package app

// Config описывает минимальные настройки запуска приложения.
type Config struct {
	// MetricsAddr — адрес служебного HTTP-сервера (/metrics, /healthz, /livez).
	MetricsAddr string
	// PostgresDSN — строка подключения к PostgreSQL.
	// Пустое значение переключает приложение на in-memory хранилище.
	PostgresDSN string
	// Timezone — таймзона для временных меток заказов.
	Timezone string
	// StrictTotals включает проверку суммы заказа против суммы позиций.
	StrictTotals bool
	// ShopName и CurrencySymbol — реквизиты для рендеринга счетов.
	ShopName       string
	CurrencySymbol string
}

// DefaultConfig возвращает базовые настройки. Таймзона по умолчанию
// повторяет родной часовой пояс магазина (UTC+2).
func DefaultConfig() Config {
	return Config{
		MetricsAddr:    ":9090",
		PostgresDSN:    "",
		Timezone:       "Africa/Johannesburg",
		StrictTotals:   false,
		ShopName:       "Kay Scoops - Sweet Surprises",
		CurrencySymbol: "R",
	}
}
