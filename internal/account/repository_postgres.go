package account

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const getByEmailQuery = `
	SELECT accountid, email, password_hash, company_name, permissions, created_at
	FROM accounts
	WHERE lower(email) = lower($1)
`

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (Account, error) {
	var (
		a         Account
		perms     pq.StringArray
		createdAt sql.NullString
	)
	err := r.db.QueryRowContext(ctx, getByEmailQuery, email).Scan(
		&a.ID, &a.Email, &a.Password, &a.CompanyName, &perms, &createdAt,
	)
	if err == sql.ErrNoRows {
		return Account{}, ErrNotFound
	}
	if err != nil {
		return Account{}, fmt.Errorf("get account by email: %w", err)
	}
	a.Permissions = []string(perms)
	if createdAt.Valid {
		a.CreatedAt = createdAt.String
	}
	return a, nil
}

const createQuery = `
	INSERT INTO accounts (email, password_hash, company_name, permissions, created_at)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING accountid
`

func (r *PostgresRepository) Create(ctx context.Context, a Account) (Account, error) {
	err := r.db.QueryRowContext(ctx, createQuery,
		a.Email, a.Password, a.CompanyName, pq.Array(a.Permissions), a.CreatedAt,
	).Scan(&a.ID)
	if err != nil {
		return Account{}, fmt.Errorf("create account: %w", err)
	}
	return a, nil
}
