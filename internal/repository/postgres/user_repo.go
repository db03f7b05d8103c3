package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"eventhive/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{
		DB: db,
	}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, salt, role, organization_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	var orgNull sql.NullString
	if u.OrganizationType != "" {
		orgNull = sql.NullString{String: u.OrganizationType, Valid: true}
	}
	err := querier(ctx, r.DB).QueryRowContext(ctx, query,
		u.Name, u.Email, u.PasswordHash, u.Salt, u.Role, orgNull, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	var orgNull sql.NullString
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Salt, &u.Role, &orgNull, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if orgNull.Valid {
		u.OrganizationType = orgNull.String
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, name, email, password_hash, salt, role, organization_type, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	u, err := scanUser(querier(ctx, r.DB).QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, name, email, password_hash, salt, role, organization_type, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	u, err := scanUser(querier(ctx, r.DB).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) SetResetToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	query := `UPDATE users SET reset_token_hash = $1, reset_token_expires_at = $2, updated_at = NOW() WHERE id = $3`
	result, err := querier(ctx, r.DB).ExecContext(ctx, query, tokenHash, expiresAt, userID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) GetByResetToken(ctx context.Context, tokenHash string) (*domain.User, error) {
	query := `
		SELECT id, name, email, password_hash, salt, role, organization_type, created_at, updated_at
		FROM users
		WHERE reset_token_hash = $1 AND reset_token_expires_at > NOW()
	`
	u, err := scanUser(querier(ctx, r.DB).QueryRowContext(ctx, query, tokenHash))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID, passwordHash, salt string) error {
	query := `
		UPDATE users
		SET password_hash = $1, salt = $2, reset_token_hash = NULL, reset_token_expires_at = NULL, updated_at = NOW()
		WHERE id = $3
	`
	result, err := querier(ctx, r.DB).ExecContext(ctx, query, passwordHash, salt, userID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
