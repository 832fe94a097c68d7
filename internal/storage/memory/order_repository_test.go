package memory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/pos/internal/domain"
	"github.com/vladislavdragonenkov/pos/internal/storage/memory"
)

func seedOrders(t *testing.T) *memory.Store {
	t.Helper()

	store := memory.NewStore()
	catalog := store.Catalog()
	if err := catalog.CreateClient(newClient("c1", "Amy", "amy@example.com")); err != nil {
		t.Fatalf("seed client: %v", err)
	}
	if err := catalog.CreateClient(newClient("c2", "Ben", "")); err != nil {
		t.Fatalf("seed client: %v", err)
	}
	if err := catalog.CreateItem(newItem("i1", "vanilla scoop", 50)); err != nil {
		t.Fatalf("seed item: %v", err)
	}

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for _, o := range []struct {
		id       string
		clientID string
		placedAt time.Time
	}{
		{"o1", "c1", base},
		{"o2", "c2", base.Add(time.Hour)},
		{"o3", "c1", base.Add(2 * time.Hour)},
	} {
		if err := store.Orders().CreateOrder(domain.Order{
			ID:         o.id,
			ClientID:   o.clientID,
			PlacedAt:   o.placedAt,
			TotalPrice: decimal.NewFromInt(10),
			Lines:      []domain.OrderLine{{ID: o.id + "-l1", OrderID: o.id, ItemID: "i1", Quantity: 1}},
		}); err != nil {
			t.Fatalf("seed order %s: %v", o.id, err)
		}
	}
	return store
}

func TestOrderRepository_CreateOrderChecksReferences(t *testing.T) {
	store := memory.NewStore()
	if err := store.Catalog().CreateClient(newClient("c1", "Amy", "")); err != nil {
		t.Fatalf("seed client: %v", err)
	}

	err := store.Orders().CreateOrder(domain.Order{
		ID:       "o1",
		ClientID: "ghost",
		Lines:    []domain.OrderLine{},
	})
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}

	err = store.Orders().CreateOrder(domain.Order{
		ID:       "o1",
		ClientID: "c1",
		Lines:    []domain.OrderLine{{ID: "l1", OrderID: "o1", ItemID: "ghost", Quantity: 1}},
	})
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestOrderRepository_ListSummaries(t *testing.T) {
	store := seedOrders(t)

	summaries, err := store.Orders().ListSummaries("")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(summaries))
	}
	// Новые заказы выше.
	if summaries[0].OrderID != "o3" || summaries[2].OrderID != "o1" {
		t.Fatalf("expected newest-first order, got %s..%s", summaries[0].OrderID, summaries[2].OrderID)
	}
	if summaries[0].ClientName != "Amy" {
		t.Fatalf("expected client name join, got %q", summaries[0].ClientName)
	}
}

func TestOrderRepository_ListSummariesSearch(t *testing.T) {
	store := seedOrders(t)

	summaries, err := store.Orders().ListSummaries("ben")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(summaries) != 1 || summaries[0].OrderID != "o2" {
		t.Fatalf("expected only Ben's order, got %+v", summaries)
	}
}

func TestOrderRepository_DetailUsesCurrentPrices(t *testing.T) {
	store := seedOrders(t)

	// Цена товара меняется после продажи; счёт обязан показать новую.
	item, err := store.Catalog().GetItem("i1")
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	item.SellingPrice = decimal.NewFromInt(12)
	if err := store.Catalog().UpdateItem(item); err != nil {
		t.Fatalf("update item: %v", err)
	}

	detail, err := store.Orders().Detail("o1")
	if err != nil {
		t.Fatalf("detail failed: %v", err)
	}
	if detail.ClientName != "Amy" || detail.ClientEmail != "amy@example.com" {
		t.Fatalf("unexpected client block: %+v", detail)
	}
	if len(detail.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(detail.Lines))
	}
	if !detail.Lines[0].SellingPrice.Equal(decimal.NewFromInt(12)) {
		t.Fatalf("expected current selling price 12, got %s", detail.Lines[0].SellingPrice)
	}
}

func TestOrderRepository_DetailNotFound(t *testing.T) {
	store := memory.NewStore()
	if _, err := store.Orders().Detail("ghost"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
