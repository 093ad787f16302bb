package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/marketsquare/storefront-api/internal/core/domain"
	"github.com/marketsquare/storefront-api/internal/core/ports"
)

// OrderRepository persists orders and their immutable item snapshots. Create
// joins the transaction carried in ctx so the order commits together with the
// stock decrements performed by the service.
type OrderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// orderRow flattens the orders table, shipping snapshot columns included.
type orderRow struct {
	ID                int64           `db:"id"`
	OrderNumber       string          `db:"order_number"`
	UserID            int64           `db:"user_id"`
	Status            string          `db:"status"`
	TotalAmount       decimal.Decimal `db:"total_amount"`
	PaymentMethod     *string         `db:"payment_method"`
	PaymentStatus     string          `db:"payment_status"`
	Notes             *string         `db:"notes"`
	ShippingFirstname string          `db:"shipping_firstname"`
	ShippingLastname  string          `db:"shipping_lastname"`
	ShippingStreet    string          `db:"shipping_street"`
	ShippingCity      string          `db:"shipping_city"`
	ShippingState     string          `db:"shipping_state"`
	ShippingZipcode   string          `db:"shipping_zipcode"`
	ShippingCountry   string          `db:"shipping_country"`
	ShippingPhone     string          `db:"shipping_phone"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
}

func (row *orderRow) toDomain() *domain.Order {
	return &domain.Order{
		ID:            row.ID,
		OrderNumber:   row.OrderNumber,
		UserID:        row.UserID,
		Status:        domain.OrderStatus(row.Status),
		TotalAmount:   row.TotalAmount,
		PaymentMethod: row.PaymentMethod,
		PaymentStatus: row.PaymentStatus,
		Notes:         row.Notes,
		ShippingAddress: domain.ShippingAddress{
			Firstname: row.ShippingFirstname,
			Lastname:  row.ShippingLastname,
			Street:    row.ShippingStreet,
			City:      row.ShippingCity,
			State:     row.ShippingState,
			Zipcode:   row.ShippingZipcode,
			Country:   row.ShippingCountry,
			Phone:     row.ShippingPhone,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

const orderColumns = `id, order_number, user_id, status, total_amount, payment_method, payment_status, notes,
	shipping_firstname, shipping_lastname, shipping_street, shipping_city, shipping_state,
	shipping_zipcode, shipping_country, shipping_phone, created_at, updated_at`

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	const query = `
		INSERT INTO orders (order_number, user_id, status, total_amount, payment_method, payment_status, notes,
			shipping_firstname, shipping_lastname, shipping_street, shipping_city, shipping_state,
			shipping_zipcode, shipping_country, shipping_phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id`

	addr := order.ShippingAddress
	err := ext(ctx, r.db).QueryRowxContext(ctx, query,
		order.OrderNumber, order.UserID, order.Status, order.TotalAmount,
		order.PaymentMethod, order.PaymentStatus, order.Notes,
		addr.Firstname, addr.Lastname, addr.Street, addr.City, addr.State,
		addr.Zipcode, addr.Country, addr.Phone,
		order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		return nil, err
	}

	for _, item := range order.Items {
		_, err := ext(ctx, r.db).ExecContext(ctx,
			`INSERT INTO order_items (order_id, product_id, name, image, price, quantity)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			order.ID, item.ProductID, item.Name, item.Image, item.Price, item.Quantity)
		if err != nil {
			return nil, err
		}
	}
	return order, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	var row orderRow
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &row,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	order := row.toDomain()
	order.Items = make([]domain.OrderItem, 0)
	err = sqlx.SelectContext(ctx, ext(ctx, r.db), &order.Items,
		`SELECT product_id, name, image, price, quantity FROM order_items WHERE order_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *OrderRepository) List(ctx context.Context, filter ports.ListOrdersFilter) ([]*domain.OrderSummary, int64, error) {
	conds := make([]string, 0, 2)
	args := make([]any, 0, 4)

	if filter.UserID != 0 {
		args = append(args, filter.UserID)
		conds = append(conds, fmt.Sprintf("o.user_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("o.status = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &total,
		`SELECT COUNT(*) FROM orders o`+where, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT o.id, o.order_number, o.user_id, o.status, o.total_amount, o.payment_status,
			o.shipping_city, o.created_at, o.updated_at,
			COALESCE((SELECT SUM(oi.quantity) FROM order_items oi WHERE oi.order_id = o.id), 0) AS items_count
		FROM orders o%s
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	summaries := make([]*domain.OrderSummary, 0)
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &summaries, query, args...); err != nil {
		return nil, 0, err
	}
	return summaries, total, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	res, err := ext(ctx, r.db).ExecContext(ctx,
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, domain.ErrOrderNotFound
	}
	return r.FindByID(ctx, id)
}
