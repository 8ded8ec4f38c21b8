package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestPostgresGetByEmailNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("SELECT id, name, email, password").
		WithArgs("nobody@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "password"}))

	repo := NewPostgresRepositoryWithPool(mock)
	_, err = repo.GetByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPostgresGetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"id", "name", "email", "password"}).
		AddRow("u1", "Sam", "sam@example.com", "secret12")
	mock.ExpectQuery("SELECT id, name, email, password").
		WithArgs("sam@example.com").
		WillReturnRows(rows)

	repo := NewPostgresRepositoryWithPool(mock)
	cred, err := repo.GetByEmail(context.Background(), "sam@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if cred.Name != "Sam" || cred.Password != "secret12" {
		t.Errorf("got %+v", cred)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPostgresInsertDuplicateEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec("INSERT INTO users").
		WithArgs("u2", "Sam", "sam@example.com", "secret12").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	repo := NewPostgresRepositoryWithPool(mock)
	err = repo.Insert(context.Background(), &Credential{ID: "u2", Name: "Sam", Email: "sam@example.com", Password: "secret12"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPostgresInsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec("INSERT INTO users").
		WithArgs("u1", "Sam", "sam@example.com", "secret12").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewPostgresRepositoryWithPool(mock)
	if err := repo.Insert(context.Background(), &Credential{ID: "u1", Name: "Sam", Email: "sam@example.com", Password: "secret12"}); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
