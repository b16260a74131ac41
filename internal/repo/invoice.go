package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/openinvoice/openinvoice/internal/models"
	"github.com/openinvoice/openinvoice/internal/services"
	"github.com/openinvoice/openinvoice/internal/store"
)

// Invoices exposes the typed invoice operations on top of the generic store.
type Invoices struct {
	s   *store.Store
	col store.Collection[models.Invoice]
}

func NewInvoices(s *store.Store) *Invoices {
	return &Invoices{s: s, col: store.NewCollection[models.Invoice](s, "id")}
}

// Save stamps CreatedAt/UpdatedAt (equal on creation) and inserts the
// invoice, returning its assigned id. The business snapshot and totals must
// already be frozen on inv by the caller.
func (r *Invoices) Save(ctx context.Context, inv *models.Invoice) (uint, error) {
	now := time.Now().UTC()
	inv.ID = 0
	inv.CreatedAt = now
	inv.UpdatedAt = now
	if err := r.col.Add(ctx, inv); err != nil {
		return 0, err
	}
	return inv.ID, nil
}

// Get returns the invoice or ErrNotFound.
func (r *Invoices) Get(ctx context.Context, id uint) (*models.Invoice, error) {
	inv, ok, err := r.col.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("invoice %d: %w", id, ErrNotFound)
	}
	return inv, nil
}

// GetAll returns every invoice in insertion order.
func (r *Invoices) GetAll(ctx context.Context) ([]models.Invoice, error) {
	return r.col.GetAll(ctx)
}

// Update reads the invoice, shallow-merges the patch, bumps UpdatedAt and
// writes the record back. CreatedAt and the id are never changed. The
// read-modify-write is not guarded against interleaving writers: under the
// single-user model the contract is last writer wins.
func (r *Invoices) Update(ctx context.Context, id uint, patch models.InvoicePatch) (*models.Invoice, error) {
	inv, ok, err := r.col.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("invoice %d: %w", id, ErrNotFound)
	}
	patch.Apply(inv)
	inv.ID = id
	inv.UpdatedAt = time.Now().UTC()
	if err := r.col.Put(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Delete removes one invoice; absent ids are a no-op.
func (r *Invoices) Delete(ctx context.Context, id uint) error {
	return r.col.Delete(ctx, id)
}

// ByStatus returns invoices via the status secondary index (exact match; the
// aggregation layer owns case folding).
func (r *Invoices) ByStatus(ctx context.Context, status string) ([]models.Invoice, error) {
	return r.col.FindBy(ctx, "status", status)
}

// DeleteByYear removes every invoice whose effective date (issue date, else
// created-at) falls in year. All deletions run in a single transaction, so a
// failure leaves no partially-deleted year. Returns the number deleted.
func (r *Invoices) DeleteByYear(ctx context.Context, year int) (int, error) {
	all, err := r.col.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	var ids []uint
	for _, inv := range all {
		if y, ok := services.EffectiveYear(inv); ok && y == year {
			ids = append(ids, inv.ID)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}
	err = r.s.Transaction(ctx, func(tx *store.Store) error {
		col := store.NewCollection[models.Invoice](tx, "id")
		for _, id := range ids {
			if err := col.Delete(ctx, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

// NextNumber derives the next invoice number as INV-<year>-<seq>, seq being
// the current invoice count plus one, zero-padded to three digits.
func (r *Invoices) NextNumber(ctx context.Context, now time.Time) (string, error) {
	all, err := r.col.GetAll(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%d-%03d", now.Year(), len(all)+1), nil
}
