package invoice

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/pos/internal/domain"
)

const timeLayout = "2006-01-02 15:04:05"

// Renderer собирает текстовое представление счёта из данных отчётного
// представления. Раскладка PDF остаётся за внешним рендерером; здесь
// важны состав и итоги: сумма продажи берётся из заказа, суммарная
// закупочная стоимость считается по текущим ценам позиций.
type Renderer struct {
	// ShopName выводится в шапке счёта.
	ShopName string
	// CurrencySymbol ставится перед денежными суммами.
	CurrencySymbol string
}

// NewRenderer возвращает рендерер с реквизитами магазина.
func NewRenderer(shopName, currencySymbol string) *Renderer {
	return &Renderer{ShopName: shopName, CurrencySymbol: currencySymbol}
}

// TotalCostPrice возвращает суммарную закупочную стоимость позиций счёта.
func TotalCostPrice(lines []domain.DetailLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.CostPrice.Mul(decimal.NewFromInt(line.Quantity)))
	}
	return total
}

// Render печатает счёт в текстовом виде.
func (r *Renderer) Render(detail domain.OrderDetail) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", r.ShopName)
	fmt.Fprintf(&b, "Invoice #%s\n", shortID(detail.OrderID))
	fmt.Fprintf(&b, "Date: %s\n\n", detail.PlacedAt.Format(timeLayout))

	b.WriteString("Client Information:\n")
	fmt.Fprintf(&b, "Name: %s\n", detail.ClientName)
	if detail.ClientContact != "" {
		fmt.Fprintf(&b, "Phone: %s\n", detail.ClientContact)
	}
	if detail.ClientEmail != "" {
		fmt.Fprintf(&b, "Email: %s\n", detail.ClientEmail)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%-30s %5s %12s %12s\n", "Item", "Qty", "Cost", "Selling")
	for _, line := range detail.Lines {
		fmt.Fprintf(&b, "%-30s %5d %12s %12s\n",
			line.ItemName,
			line.Quantity,
			r.money(line.CostPrice),
			r.money(line.SellingPrice),
		)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Total Selling Price: %s\n", r.money(detail.TotalPrice))
	fmt.Fprintf(&b, "Total Cost Price: %s\n", r.money(TotalCostPrice(detail.Lines)))

	if detail.VideoURL != "" {
		fmt.Fprintf(&b, "\nVideo: %s\n", detail.VideoURL)
	}
	fmt.Fprintf(&b, "\nThank you for choosing %s!\n", r.ShopName)

	return b.String()
}

func (r *Renderer) money(v decimal.Decimal) string {
	return r.CurrencySymbol + v.StringFixed(2)
}

// shortID сокращает UUID до первого блока для номера счёта.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
