package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/pos/internal/domain"
)

// fulfillmentRepository проводит заказ одной транзакцией PostgreSQL.
// Списание остатка выполняется условным UPDATE с предикатом quantity >= n,
// поэтому два конкурирующих проведения не могут оба списать последнюю
// единицу: проигравший получает RowsAffected = 0 и откат.
type fulfillmentRepository struct {
	db *sql.DB
}

// NewFulfillmentRepository создаёт PostgreSQL-реализацию FulfillmentRepository.
func NewFulfillmentRepository(store *Store) domain.FulfillmentRepository {
	return &fulfillmentRepository{db: store.DB()}
}

func (r *fulfillmentRepository) Fulfill(cmd domain.FulfillmentCommand) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Order{}, fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Блокируем строку клиента: заодно проверяем существование и
	// сериализуем конкурирующие начисления lifetime_spend.
	var clientID string
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM clients WHERE id = $1 FOR UPDATE
	`, cmd.ClientID).Scan(&clientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = domain.ErrClientNotFound
		} else {
			err = fmt.Errorf("lock client row: %w", err)
		}
		return domain.Order{}, err
	}

	order := domain.Order{
		ID:         cmd.OrderID,
		ClientID:   cmd.ClientID,
		PlacedAt:   cmd.PlacedAt,
		TotalPrice: cmd.TotalPrice,
		VideoURL:   cmd.VideoURL,
		Lines:      make([]domain.OrderLine, 0, len(cmd.Lines)),
	}
	for _, line := range cmd.Lines {
		order.Lines = append(order.Lines, domain.OrderLine{
			ID:       line.ID,
			OrderID:  cmd.OrderID,
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		})
	}

	if err = insertOrderTx(ctx, tx, order); err != nil {
		return domain.Order{}, err
	}

	for _, line := range cmd.Lines {
		if err = r.decrementStockTx(ctx, tx, line.ItemID, line.Quantity); err != nil {
			return domain.Order{}, err
		}
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE clients
		SET lifetime_spend = lifetime_spend + $1
		WHERE id = $2
	`, cmd.TotalPrice, cmd.ClientID); err != nil {
		err = fmt.Errorf("accrue lifetime spend: %w", err)
		return domain.Order{}, err
	}

	if err = tx.Commit(); err != nil {
		return domain.Order{}, fmt.Errorf("commit fulfillment: %w", err)
	}

	return order, nil
}

// decrementStockTx списывает остаток, только если его достаточно.
func (r *fulfillmentRepository) decrementStockTx(ctx context.Context, tx *sql.Tx, itemID string, qty int64) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE items
		SET quantity = quantity - $1
		WHERE id = $2
		  AND quantity >= $1
	`, qty, itemID)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// Списание не прошло: различаем отсутствующий товар и нехватку остатка.
	var available int64
	err = tx.QueryRowContext(ctx, `SELECT quantity FROM items WHERE id = $1`, itemID).Scan(&available)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrItemNotFound
		}
		return fmt.Errorf("check item stock: %w", err)
	}

	return &domain.InsufficientStockError{
		ItemID:    itemID,
		Requested: qty,
		Available: available,
	}
}

var _ domain.FulfillmentRepository = (*fulfillmentRepository)(nil)
