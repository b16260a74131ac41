package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/openinvoice/openinvoice/internal/models"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	s, err := Open(dsn)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenBootstrapIdempotent(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	s1, err := Open(dsn)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	defer s1.Close()

	col := NewCollection[models.Client](s1, "id")
	if err := col.Add(context.Background(), &models.Client{Name: "Acme", Email: "a@acme.test"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	// A second open at the same version must not disturb existing data.
	s2, err := Open(dsn)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()

	all, err := NewCollection[models.Client](s2, "id").GetAll(context.Background())
	if err != nil {
		t.Fatalf("getall: %v", err)
	}
	if len(all) != 1 || all[0].Name != "Acme" {
		t.Fatalf("unexpected records after reopen: %#v", all)
	}
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := Open(""); !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestCollectionCRUD(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	col := NewCollection[models.Invoice](s, "id")

	inv := models.Invoice{
		InvoiceNumber: "INV-2024-001",
		Status:        "pending",
		Total:         decimal.RequireFromString("120.50"),
		Items: models.LineItems{
			{Description: "Design", Qty: 2, Price: decimal.RequireFromString("60.25")},
		},
	}
	if err := col.Add(ctx, &inv); err != nil {
		t.Fatalf("add: %v", err)
	}
	if inv.ID == 0 {
		t.Fatal("add did not assign an id")
	}

	got, ok, err := col.Get(ctx, inv.ID)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.InvoiceNumber != "INV-2024-001" || !got.Total.Equal(inv.Total) {
		t.Fatalf("unexpected record: %#v", got)
	}
	if len(got.Items) != 1 || got.Items[0].Qty != 2 {
		t.Fatalf("line items did not round-trip: %#v", got.Items)
	}

	// Absence is a found-flag, never an error.
	if _, ok, err := col.Get(ctx, uint(9999)); err != nil || ok {
		t.Fatalf("absent get: ok=%v err=%v", ok, err)
	}
}

func TestGetAllInsertionOrder(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	col := NewCollection[models.Invoice](s, "id")

	for i := 1; i <= 3; i++ {
		inv := models.Invoice{InvoiceNumber: fmt.Sprintf("INV-%03d", i)}
		if err := col.Add(ctx, &inv); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	all, err := col.GetAll(ctx)
	if err != nil {
		t.Fatalf("getall: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 invoices, got %d", len(all))
	}
	for i, inv := range all {
		if want := fmt.Sprintf("INV-%03d", i+1); inv.InvoiceNumber != want {
			t.Fatalf("position %d: got %s want %s", i, inv.InvoiceNumber, want)
		}
	}
}

func TestPutUpserts(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	col := NewCollection[models.Setting](s, "key")

	// Put on an absent key inserts.
	if err := col.Put(ctx, &models.Setting{Key: "currency", Value: []byte(`"USD"`)}); err != nil {
		t.Fatalf("put insert: %v", err)
	}
	// Put on a present key fully replaces.
	if err := col.Put(ctx, &models.Setting{Key: "currency", Value: []byte(`"EUR"`)}); err != nil {
		t.Fatalf("put replace: %v", err)
	}
	got, ok, err := col.Get(ctx, "currency")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(got.Value) != `"EUR"` {
		t.Fatalf("expected replaced value, got %s", got.Value)
	}
}

func TestDeleteAbsentIsNoop(t *testing.T) {
	s := setupStore(t)
	col := NewCollection[models.Client](s, "id")
	if err := col.Delete(context.Background(), uint(42)); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
}

func TestUniqueIndexViolations(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	invoices := NewCollection[models.Invoice](s, "id")
	if err := invoices.Add(ctx, &models.Invoice{InvoiceNumber: "INV-1"}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	err := invoices.Add(ctx, &models.Invoice{InvoiceNumber: "INV-1"})
	if !errors.Is(err, ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation, got %v", err)
	}

	clients := NewCollection[models.Client](s, "id")
	if err := clients.Add(ctx, &models.Client{Name: "A", Email: "dup@test"}); err != nil {
		t.Fatalf("client add: %v", err)
	}
	err = clients.Add(ctx, &models.Client{Name: "B", Email: "dup@test"})
	if !errors.Is(err, ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation for email, got %v", err)
	}
}

func TestFindBy(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	col := NewCollection[models.Invoice](s, "id")

	for i, status := range []string{"paid", "pending", "paid"} {
		inv := models.Invoice{InvoiceNumber: fmt.Sprintf("INV-%d", i), Status: status}
		if err := col.Add(ctx, &inv); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	paid, err := col.FindBy(ctx, "status", "paid")
	if err != nil {
		t.Fatalf("findby: %v", err)
	}
	if len(paid) != 2 {
		t.Fatalf("expected 2 paid, got %d", len(paid))
	}
}

func TestTransactionRollsBack(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	col := NewCollection[models.Invoice](s, "id")

	inv := models.Invoice{InvoiceNumber: "INV-KEEP"}
	if err := col.Add(ctx, &inv); err != nil {
		t.Fatalf("add: %v", err)
	}

	boom := errors.New("boom")
	err := s.Transaction(ctx, func(tx *Store) error {
		txCol := NewCollection[models.Invoice](tx, "id")
		if err := txCol.Delete(ctx, inv.ID); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}
	if _, ok, _ := col.Get(ctx, inv.ID); !ok {
		t.Fatal("delete inside failed transaction was not rolled back")
	}
}

func TestResetAndDump(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	col := NewCollection[models.Client](s, "id")
	if err := col.Add(ctx, &models.Client{Name: "A", Email: "a@test"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	rows, err := s.DumpCollection(ctx, "clients")
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if _, err := s.DumpCollection(ctx, "users"); err == nil {
		t.Fatal("expected error for unknown collection")
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	for _, name := range s.CollectionNames() {
		rows, err := s.DumpCollection(ctx, name)
		if err != nil {
			t.Fatalf("dump %s: %v", name, err)
		}
		if len(rows) != 0 {
			t.Fatalf("collection %s not cleared: %d rows", name, len(rows))
		}
	}
}
