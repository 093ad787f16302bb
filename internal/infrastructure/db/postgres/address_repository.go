package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/marketsquare/storefront-api/internal/core/domain"
)

const addressColumns = `id, user_id, firstname, lastname, street, city, state, zipcode, country, phone, created_at`

// AddressRepository persists the per-user address book.
type AddressRepository struct {
	db *sqlx.DB
}

func NewAddressRepository(db *sqlx.DB) *AddressRepository {
	return &AddressRepository{db: db}
}

func (r *AddressRepository) Create(ctx context.Context, addr *domain.Address) (*domain.Address, error) {
	const query = `
		INSERT INTO addresses (user_id, firstname, lastname, street, city, state, zipcode, country, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	err := ext(ctx, r.db).QueryRowxContext(ctx, query,
		addr.UserID, addr.Firstname, addr.Lastname, addr.Street, addr.City,
		addr.State, addr.Zipcode, addr.Country, addr.Phone, addr.CreatedAt,
	).Scan(&addr.ID)
	if err != nil {
		return nil, err
	}
	return addr, nil
}

func (r *AddressRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Address, error) {
	addresses := make([]*domain.Address, 0)
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &addresses,
		`SELECT `+addressColumns+` FROM addresses WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *AddressRepository) FindByIDForUser(ctx context.Context, id, userID int64) (*domain.Address, error) {
	var addr domain.Address
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &addr,
		`SELECT `+addressColumns+` FROM addresses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAddressNotFound
		}
		return nil, err
	}
	return &addr, nil
}
