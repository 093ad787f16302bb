package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/marketsquare/storefront-api/internal/core/domain"
	"github.com/marketsquare/storefront-api/internal/core/ports"
)

const productColumns = `id, name, slug, brand, description, short_description, price, original_price,
	discount, sku, stock, rating, reviews_count, is_active, is_featured, category_id, created_at, updated_at`

// ProductRepository persists the catalog: products plus their images.
type ProductRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	const query = `
		INSERT INTO products (name, slug, brand, description, short_description, price, original_price,
			discount, sku, stock, rating, reviews_count, is_active, is_featured, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id`

	err = tx.QueryRowxContext(ctx, query,
		p.Name, p.Slug, p.Brand, p.Description, p.ShortDescription, p.Price, p.OriginalPrice,
		p.Discount, p.SKU, p.Stock, p.Rating, p.ReviewsCount, p.IsActive, p.IsFeatured,
		p.CategoryID, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err, "products_slug_key") {
			return nil, domain.ErrSlugTaken
		}
		return nil, err
	}

	for i := range p.Images {
		img := &p.Images[i]
		err = tx.QueryRowxContext(ctx,
			`INSERT INTO product_images (product_id, url, is_primary) VALUES ($1, $2, $3) RETURNING id`,
			p.ID, img.URL, img.IsPrimary,
		).Scan(&img.ID)
		if err != nil {
			return nil, err
		}
		img.ProductID = p.ID
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	return r.findOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return r.findOne(ctx, `SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
}

func (r *ProductRepository) findOne(ctx context.Context, query string, arg any) (*domain.Product, error) {
	var p domain.Product
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &p, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	if err := r.loadImages(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) loadImages(ctx context.Context, p *domain.Product) error {
	p.Images = make([]domain.ProductImage, 0)
	return sqlx.SelectContext(ctx, ext(ctx, r.db), &p.Images,
		`SELECT id, product_id, url, is_primary FROM product_images
		 WHERE product_id = $1 ORDER BY is_primary DESC, id`, p.ID)
}

func (r *ProductRepository) List(ctx context.Context, filter ports.ListProductsFilter) ([]*domain.Product, int64, error) {
	conds := make([]string, 0, 5)
	args := make([]any, 0, 5)

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.ActiveOnly {
		conds = append(conds, "is_active = TRUE")
	}
	if filter.CategoryID != nil {
		add("category_id = $%d", *filter.CategoryID)
	}
	if filter.Brand != "" {
		add("brand ILIKE $%d", "%"+filter.Brand+"%")
	}
	if filter.Featured != nil {
		add("is_featured = $%d", *filter.Featured)
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR brand ILIKE $%d)", len(args), len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &total,
		`SELECT COUNT(*) FROM products`+where, args...); err != nil {
		return nil, 0, err
	}

	orderBy := sortClause(filter.Sort)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`SELECT %s FROM products%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		productColumns, where, orderBy, len(args)-1, len(args))

	products := make([]*domain.Product, 0)
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &products, query, args...); err != nil {
		return nil, 0, err
	}
	for _, p := range products {
		if err := r.loadImages(ctx, p); err != nil {
			return nil, 0, err
		}
	}
	return products, total, nil
}

// sortClause maps the public sort keys onto ORDER BY clauses. Unknown keys
// fall back to newest-first.
func sortClause(sort string) string {
	switch sort {
	case ports.SortPriceAsc:
		return "price ASC, id ASC"
	case ports.SortPriceDesc:
		return "price DESC, id ASC"
	case ports.SortRatingDesc:
		return "rating DESC, id ASC"
	default:
		return "created_at DESC, id DESC"
	}
}

func (r *ProductRepository) Update(ctx context.Context, id int64, patch ports.UpdateProductPatch) (*domain.Product, error) {
	sets := make([]string, 0, 13)
	args := make([]any, 0, 14)

	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Slug != nil {
		set("slug", *patch.Slug)
	}
	if patch.Brand != nil {
		set("brand", *patch.Brand)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.ShortDescription != nil {
		set("short_description", *patch.ShortDescription)
	}
	if patch.Price != nil {
		set("price", *patch.Price)
	}
	if patch.OriginalPrice != nil {
		set("original_price", *patch.OriginalPrice)
	}
	if patch.Discount != nil {
		set("discount", *patch.Discount)
	}
	if patch.SKU != nil {
		set("sku", *patch.SKU)
	}
	if patch.Stock != nil {
		set("stock", *patch.Stock)
	}
	if patch.IsActive != nil {
		set("is_active", *patch.IsActive)
	}
	if patch.IsFeatured != nil {
		set("is_featured", *patch.IsFeatured)
	}
	if patch.CategoryID != nil {
		set("category_id", *patch.CategoryID)
	}

	if len(sets) == 0 {
		return r.FindByID(ctx, id)
	}

	sets = append(sets, "updated_at = now()")
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE products SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))

	res, err := ext(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, "products_slug_key") {
			return nil, domain.ErrSlugTaken
		}
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, domain.ErrProductNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	// product_images rows go with the product via ON DELETE CASCADE.
	res, err := ext(ctx, r.db).ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// DecrementStock guards the decrement with stock >= qty in the same statement
// so concurrent orders can never drive stock negative.
func (r *ProductRepository) DecrementStock(ctx context.Context, id int64, qty int) error {
	res, err := ext(ctx, r.db).ExecContext(ctx,
		`UPDATE products SET stock = stock - $2, updated_at = now() WHERE id = $1 AND stock >= $2`,
		id, qty)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}
