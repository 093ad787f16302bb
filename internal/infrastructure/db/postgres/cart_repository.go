package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/marketsquare/storefront-api/internal/core/domain"
)

// CartRepository persists the one-per-user cart. Stored lines hold only
// product id and quantity; reads hydrate them against the live catalog.
type CartRepository struct {
	db *sqlx.DB
}

func NewCartRepository(db *sqlx.DB) *CartRepository {
	return &CartRepository{db: db}
}

type cartRow struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	UpdatedAt time.Time `db:"updated_at"`
}

type cartItemRow struct {
	ProductID int64           `db:"product_id"`
	Name      string          `db:"name"`
	Slug      string          `db:"slug"`
	Price     decimal.Decimal `db:"price"`
	Image     *string         `db:"image"`
	Stock     int             `db:"stock"`
	Quantity  int             `db:"quantity"`
}

func (r *CartRepository) FindByUserID(ctx context.Context, userID int64) (*domain.Cart, error) {
	var row cartRow
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &row,
		`SELECT id, user_id, updated_at FROM carts WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCartNotFound
		}
		return nil, err
	}

	const query = `
		SELECT p.id AS product_id, p.name, p.slug, p.price, p.stock, ci.quantity,
			(SELECT pi.url FROM product_images pi
			 WHERE pi.product_id = p.id ORDER BY pi.is_primary DESC, pi.id LIMIT 1) AS image
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id`

	rows := make([]cartItemRow, 0)
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &rows, query, row.ID); err != nil {
		return nil, err
	}

	cart := &domain.Cart{
		ID:          row.ID,
		UserID:      row.UserID,
		Items:       make([]domain.CartItem, 0, len(rows)),
		TotalAmount: decimal.Zero,
		UpdatedAt:   row.UpdatedAt,
	}
	for _, it := range rows {
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Slug:      it.Slug,
			Price:     it.Price,
			Image:     it.Image,
			Stock:     it.Stock,
			Quantity:  it.Quantity,
		})
		cart.ItemsCount += it.Quantity
		cart.TotalAmount = cart.TotalAmount.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return cart, nil
}

func (r *CartRepository) ReplaceItems(ctx context.Context, userID int64, lines []domain.CartLine) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var cartID int64
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO carts (user_id, updated_at) VALUES ($1, now())
		ON CONFLICT (user_id) DO UPDATE SET updated_at = now()
		RETURNING id`, userID,
	).Scan(&cartID)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return err
	}
	for _, line := range lines {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO cart_items (cart_id, product_id, quantity) VALUES ($1, $2, $3)`,
			cartID, line.ProductID, line.Quantity)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *CartRepository) Clear(ctx context.Context, userID int64) error {
	// cart_items rows go with the cart via ON DELETE CASCADE.
	_, err := ext(ctx, r.db).ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	return err
}
