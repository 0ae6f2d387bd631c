package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupPostgresMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("create sqlmock failed: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open gorm on sqlmock failed: %v", err)
	}
	return db, mock
}

func TestGormOrderRepositoryCreateRollsBackOnInsertError(t *testing.T) {
	db, mock := setupPostgresMock(t)
	repo := NewOrderRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), newOrder("o-err", "a@example.com", time.Now()))
	if err == nil {
		t.Fatalf("expected insert error")
	}
	if errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("plain failure must not map to duplicate key")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGormCartRepositoryDeleteReportsMissing(t *testing.T) {
	db, mock := setupPostgresMock(t)
	repo := NewCartRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "cart_items"`).WithArgs("p-404").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	removed, err := repo.Delete(context.Background(), "p-404")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if removed {
		t.Fatalf("delete of missing item want false")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
