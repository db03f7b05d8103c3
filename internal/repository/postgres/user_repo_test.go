package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventhive/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func userRow(id, email, role string, orgType any) *sqlmock.Rows {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "salt", "role", "organization_type", "created_at", "updated_at"}).
		AddRow(id, "Ada", email, "hash", "salt", role, orgType, now, now)
}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		user    *domain.User
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			user: &domain.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "hash", Salt: "salt", Role: domain.RoleAttendee},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("u-uuid-1"))
			},
		},
		{
			name: "duplicate email",
			user: &domain.User{Name: "Ada", Email: "taken@example.com", PasswordHash: "hash", Salt: "salt", Role: domain.RoleAttendee},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})
			},
			wantErr: domain.ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewUserRepository(db)
			err = repo.Create(ctx, tt.user)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "u-uuid-1", tt.user.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success with organization type",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, email, password_hash, salt, role, organization_type, created_at, updated_at\s+FROM users\s+WHERE email = \$1`).
					WithArgs("org@example.com").
					WillReturnRows(userRow("u-1", "org@example.com", domain.RoleOrganizer, "company"))
			},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, email`).
					WithArgs("org@example.com").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewUserRepository(db)
			got, err := repo.GetByEmail(ctx, "org@example.com")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, domain.RoleOrganizer, got.Role)
			require.Equal(t, "company", got.OrganizationType)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByID_NullOrganizationType(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, email, password_hash, salt, role, organization_type, created_at, updated_at\s+FROM users\s+WHERE id = \$1`).
		WithArgs("u-1").
		WillReturnRows(userRow("u-1", "ada@example.com", domain.RoleAttendee, nil))

	repo := NewUserRepository(db)
	got, err := repo.GetByID(context.Background(), "u-1")
	require.NoError(t, err)
	require.Empty(t, got.OrganizationType)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SetResetToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expires := time.Now().Add(time.Hour)
	mock.ExpectExec(`UPDATE users SET reset_token_hash = \$1, reset_token_expires_at = \$2`).
		WithArgs("tokenhash", expires, "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewUserRepository(db)
	require.NoError(t, repo.SetResetToken(context.Background(), "u-1", "tokenhash", expires))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByResetToken_Expired(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Expired tokens are filtered by the query itself.
	mock.ExpectQuery(`WHERE reset_token_hash = \$1 AND reset_token_expires_at > NOW\(\)`).
		WithArgs("tokenhash").
		WillReturnError(sql.ErrNoRows)

	repo := NewUserRepository(db)
	_, err = repo.GetByResetToken(context.Background(), "tokenhash")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdatePassword_ClearsResetToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`SET password_hash = \$1, salt = \$2, reset_token_hash = NULL, reset_token_expires_at = NULL`).
		WithArgs("newhash", "newsalt", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewUserRepository(db)
	require.NoError(t, repo.UpdatePassword(context.Background(), "u-1", "newhash", "newsalt"))
	require.NoError(t, mock.ExpectationsWereMet())
}
