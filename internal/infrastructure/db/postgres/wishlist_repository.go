package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/marketsquare/storefront-api/internal/core/domain"
)

// WishlistRepository persists (user, product) wishlist pairs. Entries carry a
// live product slice hydrated at read time.
type WishlistRepository struct {
	db *sqlx.DB
}

func NewWishlistRepository(db *sqlx.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

type wishlistRow struct {
	ID            int64            `db:"id"`
	UserID        int64            `db:"user_id"`
	ProductID     int64            `db:"product_id"`
	CreatedAt     time.Time        `db:"created_at"`
	Name          string           `db:"name"`
	Slug          string           `db:"slug"`
	Price         decimal.Decimal  `db:"price"`
	OriginalPrice *decimal.Decimal `db:"original_price"`
	Discount      *string          `db:"discount"`
	Image         *string          `db:"image"`
	IsActive      bool             `db:"is_active"`
	Stock         int              `db:"stock"`
}

func (row *wishlistRow) toDomain() *domain.WishlistItem {
	return &domain.WishlistItem{
		ID:        row.ID,
		UserID:    row.UserID,
		ProductID: row.ProductID,
		CreatedAt: row.CreatedAt,
		Product: domain.WishlistProduct{
			ID:            row.ProductID,
			Name:          row.Name,
			Slug:          row.Slug,
			Price:         row.Price,
			OriginalPrice: row.OriginalPrice,
			Discount:      row.Discount,
			Image:         row.Image,
			IsActive:      row.IsActive,
			Stock:         row.Stock,
		},
	}
}

const wishlistSelect = `
	SELECT w.id, w.user_id, w.product_id, w.created_at,
		p.name, p.slug, p.price, p.original_price, p.discount, p.is_active, p.stock,
		(SELECT pi.url FROM product_images pi
		 WHERE pi.product_id = p.id ORDER BY pi.is_primary DESC, pi.id LIMIT 1) AS image
	FROM wishlist_items w
	JOIN products p ON p.id = w.product_id`

func (r *WishlistRepository) Add(ctx context.Context, userID, productID int64) (*domain.WishlistItem, error) {
	var id int64
	err := ext(ctx, r.db).QueryRowxContext(ctx,
		`INSERT INTO wishlist_items (user_id, product_id, created_at) VALUES ($1, $2, now()) RETURNING id`,
		userID, productID,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err, "wishlist_items_user_id_product_id_key") {
			return nil, domain.ErrWishlistDuplicate
		}
		return nil, err
	}

	var row wishlistRow
	err = sqlx.GetContext(ctx, ext(ctx, r.db), &row, wishlistSelect+` WHERE w.id = $1`, id)
	if err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *WishlistRepository) Exists(ctx context.Context, userID, productID int64) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &exists,
		`SELECT EXISTS (SELECT 1 FROM wishlist_items WHERE user_id = $1 AND product_id = $2)`,
		userID, productID)
	return exists, err
}

func (r *WishlistRepository) Remove(ctx context.Context, userID, productID int64) error {
	res, err := ext(ctx, r.db).ExecContext(ctx,
		`DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrWishlistNotFound
	}
	return nil
}

func (r *WishlistRepository) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]*domain.WishlistItem, error) {
	rows := make([]wishlistRow, 0)
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &rows,
		wishlistSelect+` WHERE w.user_id = $1 ORDER BY w.created_at DESC, w.id DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]*domain.WishlistItem, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].toDomain())
	}
	return items, nil
}

func (r *WishlistRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var total int64
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &total,
		`SELECT COUNT(*) FROM wishlist_items WHERE user_id = $1`, userID)
	return total, err
}

func (r *WishlistRepository) Clear(ctx context.Context, userID int64) error {
	_, err := ext(ctx, r.db).ExecContext(ctx,
		`DELETE FROM wishlist_items WHERE user_id = $1`, userID)
	return err
}
