package product

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestSearch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	cols := []string{"ean", "productid", "name", "sku", "brand", "shortdescription",
		"pricegross", "stockquantity", "is_featured", "created_at", "image_url"}
	mock.ExpectQuery("FROM products p").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("1234567890123", 7, "Drill", "SKU-1", "Bosch", "a drill",
				99.5, 3, false, "2025-01-01T00:00:00Z", "/img/drill.jpg"))

	items, total, err := repo.Search(context.Background(), FilterRequest{}, nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("unexpected result: total=%d items=%d", total, len(items))
	}
	p := items[0]
	if p.EAN != "1234567890123" || p.Name != "Drill" {
		t.Fatalf("unexpected product: %+v", p)
	}
	if p.Price == nil || *p.Price != 99.5 {
		t.Fatalf("price not scanned: %+v", p)
	}
	if p.ImageURL == nil || *p.ImageURL != "/img/drill.jpg" {
		t.Fatalf("image url not scanned: %+v", p)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSearch_NullColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	cols := []string{"ean", "productid", "name", "sku", "brand", "shortdescription",
		"pricegross", "stockquantity", "is_featured", "created_at", "image_url"}
	mock.ExpectQuery("FROM products p").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("999", nil, "Bargain", nil, nil, nil, nil, nil, false, nil, nil))

	items, _, err := repo.Search(context.Background(), FilterRequest{}, nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := items[0]
	if p.Price != nil || p.Brand != nil || p.SKU != nil || p.StockQuantity != nil {
		t.Fatalf("nullable columns should stay nil: %+v", p)
	}
}

func TestSearch_StoreFailurePropagates(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("connection refused"))

	if _, _, err := repo.Search(context.Background(), FilterRequest{}, nil, 0); err == nil {
		t.Fatal("expected store error to propagate")
	}
}

func TestGetByEAN_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("WHERE p.ean").WithArgs("404").WillReturnError(sql.ErrNoRows)

	_, err = repo.GetByEAN(context.Background(), "404")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMaxPrice_EmptyCatalog(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT MAX").
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))

	max, err := repo.MaxPrice(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if max != 0 {
		t.Fatalf("empty catalog max = %v, want 0", max)
	}
}
