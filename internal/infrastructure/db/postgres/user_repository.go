package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/marketsquare/storefront-api/internal/core/domain"
)

const userColumns = `id, firstname, lastname, email, mobilenumber, avatar, password, role, refresh_token, created_at, updated_at`

// UserRepository persists accounts in the users table.
type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	const query = `
		INSERT INTO users (firstname, lastname, email, mobilenumber, avatar, password, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	err := ext(ctx, r.db).QueryRowxContext(ctx, query,
		user.Firstname, user.Lastname, user.Email, user.MobileNumber,
		user.Avatar, user.PasswordHash, user.Role, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &user,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &user,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0)
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &users,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) SetRefreshToken(ctx context.Context, userID int64, token *string) error {
	res, err := ext(ctx, r.db).ExecContext(ctx,
		`UPDATE users SET refresh_token = $2, updated_at = now() WHERE id = $1`, userID, token)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
