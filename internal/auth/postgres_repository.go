package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPool is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type PgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresRepository stores credentials in the relational database.
type PostgresRepository struct {
	pool PgxPool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("auth: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// NewPostgresRepositoryWithPool allows injecting mocks for tests.
func NewPostgresRepositoryWithPool(pool PgxPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// GetByEmail finds the record with exactly this email.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*Credential, error) {
	query := `
		SELECT id, name, email, password
		FROM users
		WHERE email = $1
	`
	var cred Credential
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&cred.ID,
		&cred.Name,
		&cred.Email,
		&cred.Password,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("auth: select user: %w", err)
	}
	return &cred, nil
}

// Insert appends a record. The unique index on email enforces the
// one-record-per-email invariant.
func (r *PostgresRepository) Insert(ctx context.Context, cred *Credential) error {
	query := `
		INSERT INTO users (id, name, email, password)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.pool.Exec(ctx, query, cred.ID, cred.Name, cred.Email, cred.Password)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmailTaken
		}
		return fmt.Errorf("auth: insert user: %w", err)
	}
	return nil
}

// List returns every stored record.
func (r *PostgresRepository) List(ctx context.Context) ([]Credential, error) {
	query := `
		SELECT id, name, email, password
		FROM users
		ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("auth: list users: %w", err)
	}
	defer rows.Close()

	var creds []Credential
	for rows.Next() {
		var cred Credential
		if err := rows.Scan(&cred.ID, &cred.Name, &cred.Email, &cred.Password); err != nil {
			return nil, fmt.Errorf("auth: scan user: %w", err)
		}
		creds = append(creds, cred)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("auth: list users: %w", err)
	}
	return creds, nil
}
