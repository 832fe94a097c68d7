package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/pos/internal/domain"
)

func TestCatalogRepository_PostgresClientLifecycle(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewCatalogRepository(store)

	now := time.Now().UTC().Round(time.Microsecond)
	amy := sampleClient("client-amy", "Amy", "amy@example.com", now)

	if err := repo.CreateClient(amy); err != nil {
		t.Fatalf("create client: %v", err)
	}

	got, err := repo.GetClient(amy.ID)
	if err != nil {
		t.Fatalf("get client: %v", err)
	}
	if got.Name != "Amy" || got.Email != "amy@example.com" {
		t.Fatalf("unexpected client payload: %+v", got)
	}
	if !got.LifetimeSpend.IsZero() {
		t.Fatalf("new client must start with zero lifetime spend, got %s", got.LifetimeSpend)
	}

	got.Name = "Amy B"
	got.Contact = "071 555 0202"
	if err := repo.UpdateClient(got); err != nil {
		t.Fatalf("update client: %v", err)
	}

	updated, err := repo.GetClient(amy.ID)
	if err != nil {
		t.Fatalf("get updated client: %v", err)
	}
	if updated.Name != "Amy B" || updated.Contact != "071 555 0202" {
		t.Fatalf("unexpected client after update: %+v", updated)
	}

	found, err := repo.FindClients("amy")
	if err != nil {
		t.Fatalf("find clients: %v", err)
	}
	if len(found) != 1 || found[0].ID != amy.ID {
		t.Fatalf("unexpected search result: %+v", found)
	}

	if err := repo.DeleteClient(amy.ID); err != nil {
		t.Fatalf("delete client: %v", err)
	}
	if _, err := repo.GetClient(amy.ID); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound after delete, got %v", err)
	}
}

func TestCatalogRepository_PostgresEmailUniqueness(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewCatalogRepository(store)

	now := time.Now().UTC().Round(time.Microsecond)
	if err := repo.CreateClient(sampleClient("client-1", "Amy", "amy@example.com", now)); err != nil {
		t.Fatalf("create first client: %v", err)
	}

	err := repo.CreateClient(sampleClient("client-2", "Ben", "amy@example.com", now))
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	// Пустой email не участвует в уникальности: частичный индекс.
	if err := repo.CreateClient(sampleClient("client-3", "Cara", "", now)); err != nil {
		t.Fatalf("create client with empty email: %v", err)
	}
	if err := repo.CreateClient(sampleClient("client-4", "Dan", "", now)); err != nil {
		t.Fatalf("create second client with empty email: %v", err)
	}

	inUse, err := repo.EmailInUse("amy@example.com", "")
	if err != nil {
		t.Fatalf("check email in use: %v", err)
	}
	if !inUse {
		t.Fatal("expected amy@example.com to be in use")
	}

	// Собственный email клиента не считается занятым.
	inUse, err = repo.EmailInUse("amy@example.com", "client-1")
	if err != nil {
		t.Fatalf("check email excluding owner: %v", err)
	}
	if inUse {
		t.Fatal("owner's email must not count as taken")
	}
}

func TestCatalogRepository_PostgresItemLifecycle(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewCatalogRepository(store)

	now := time.Now().UTC().Round(time.Microsecond)
	item := sampleItem("item-vanilla", "Vanilla Scoop", 5, now)

	if err := repo.CreateItem(item); err != nil {
		t.Fatalf("create item: %v", err)
	}

	got, err := repo.GetItem(item.ID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if got.Quantity != 5 || !got.SellingPrice.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("unexpected item payload: %+v", got)
	}

	got.Quantity = 8
	got.SellingPrice = decimal.NewFromInt(11)
	if err := repo.UpdateItem(got); err != nil {
		t.Fatalf("update item: %v", err)
	}

	found, err := repo.FindItems("vanilla")
	if err != nil {
		t.Fatalf("find items: %v", err)
	}
	if len(found) != 1 || found[0].Quantity != 8 {
		t.Fatalf("unexpected search result: %+v", found)
	}

	if err := repo.DeleteItem(item.ID); err != nil {
		t.Fatalf("delete item: %v", err)
	}
	if _, err := repo.GetItem(item.ID); !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound after delete, got %v", err)
	}
}

func TestCatalogRepository_PostgresNotFound(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewCatalogRepository(store)

	if _, err := repo.GetClient("missing"); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
	if err := repo.UpdateClient(domain.Client{ID: "missing", Name: "x"}); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound on update, got %v", err)
	}
	if err := repo.DeleteClient("missing"); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound on delete, got %v", err)
	}
	if _, err := repo.GetItem("missing"); !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
	if err := repo.DeleteItem("missing"); !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound on delete, got %v", err)
	}
}

func TestPgErrorClassifiers(t *testing.T) {
	t.Parallel()

	if !isUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("expected unique violation for code 23505")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "22001"}) {
		t.Fatal("unexpected unique violation for non-unique code")
	}
	if !isForeignKeyViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatal("expected foreign key violation for code 23503")
	}
	if !isCheckViolation(&pgconn.PgError{Code: "23514"}) {
		t.Fatal("expected check violation for code 23514")
	}
	if isCheckViolation(errors.New("plain error")) {
		t.Fatal("plain error must not be a check violation")
	}
}
