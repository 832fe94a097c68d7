package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/pos/internal/domain"
)

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию журнала заказов.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

// CreateOrder сохраняет заголовок заказа и его позиции в одной транзакции.
func (r *orderRepository) CreateOrder(order domain.Order) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = insertOrderTx(ctx, tx, order); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create order: %w", err)
	}

	return nil
}

// insertOrderTx — общая вставка заголовка и позиций; используется и здесь,
// и внутри транзакции проведения заказа.
func insertOrderTx(ctx context.Context, tx *sql.Tx, order domain.Order) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO orders (id, client_id, placed_at, total_price, video_url)
		VALUES ($1,$2,$3,$4,$5)
	`,
		order.ID, order.ClientID, order.PlacedAt, order.TotalPrice, order.VideoURL,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrClientNotFound
		}
		return fmt.Errorf("insert order: %w", err)
	}

	for _, line := range order.Lines {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_lines (id, order_id, item_id, quantity)
			VALUES ($1,$2,$3,$4)
		`,
			line.ID, order.ID, line.ItemID, line.Quantity,
		); err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrItemNotFound
			}
			return fmt.Errorf("insert order line: %w", err)
		}
	}

	return nil
}

func (r *orderRepository) GetOrder(id string) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var order domain.Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, client_id, placed_at, total_price, video_url
		FROM orders
		WHERE id = $1
	`, id).Scan(
		&order.ID, &order.ClientID, &order.PlacedAt, &order.TotalPrice, &order.VideoURL,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}

	lines, err := r.loadLines(ctx, order.ID)
	if err != nil {
		return domain.Order{}, err
	}
	order.Lines = lines

	return order, nil
}

// ListSummaries возвращает заказы с именами клиентов, новые выше.
func (r *orderRepository) ListSummaries(search string) ([]domain.OrderSummary, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	query := `
		SELECT o.id, c.name, o.placed_at, o.total_price
		FROM orders o
		JOIN clients c ON o.client_id = c.id
	`
	args := []any{}
	if search != "" {
		query += ` WHERE c.name ILIKE '%' || $1 || '%'`
		args = append(args, search)
	}
	query += ` ORDER BY o.placed_at DESC, o.id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list order summaries: %w", err)
	}
	defer rows.Close()

	summaries := make([]domain.OrderSummary, 0)
	for rows.Next() {
		var s domain.OrderSummary
		if err := rows.Scan(&s.OrderID, &s.ClientName, &s.PlacedAt, &s.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan order summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order summaries: %w", err)
	}

	return summaries, nil
}

// Detail собирает заголовок счёта и позиции с текущими ценами товаров.
func (r *orderRepository) Detail(orderID string) (domain.OrderDetail, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var detail domain.OrderDetail
	err := r.db.QueryRowContext(ctx, `
		SELECT o.id, o.placed_at, o.total_price, o.video_url,
		       c.name, c.contact_info, c.email
		FROM orders o
		JOIN clients c ON o.client_id = c.id
		WHERE o.id = $1
	`, orderID).Scan(
		&detail.OrderID, &detail.PlacedAt, &detail.TotalPrice, &detail.VideoURL,
		&detail.ClientName, &detail.ClientContact, &detail.ClientEmail,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.OrderDetail{}, domain.ErrOrderNotFound
		}
		return domain.OrderDetail{}, fmt.Errorf("select order detail: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT i.name, l.quantity, i.cost_price, i.selling_price
		FROM order_lines l
		JOIN items i ON l.item_id = i.id
		WHERE l.order_id = $1
		ORDER BY l.id ASC
	`, orderID)
	if err != nil {
		return domain.OrderDetail{}, fmt.Errorf("load detail lines: %w", err)
	}
	defer rows.Close()

	detail.Lines = make([]domain.DetailLine, 0)
	for rows.Next() {
		var line domain.DetailLine
		if err := rows.Scan(&line.ItemName, &line.Quantity, &line.CostPrice, &line.SellingPrice); err != nil {
			return domain.OrderDetail{}, fmt.Errorf("scan detail line: %w", err)
		}
		detail.Lines = append(detail.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return domain.OrderDetail{}, fmt.Errorf("iterate detail lines: %w", err)
	}

	return detail, nil
}

func (r *orderRepository) loadLines(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, item_id, quantity
		FROM order_lines
		WHERE order_id = $1
		ORDER BY id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order lines: %w", err)
	}
	defer rows.Close()

	lines := make([]domain.OrderLine, 0)
	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ItemID, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order lines: %w", err)
	}

	return lines, nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
