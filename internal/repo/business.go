package repo

import (
	"context"
	"time"

	"github.com/openinvoice/openinvoice/internal/models"
	"github.com/openinvoice/openinvoice/internal/store"
)

// Business manages the singleton profile record.
type Business struct {
	col store.Collection[models.BusinessDetails]
}

func NewBusiness(s *store.Store) *Business {
	return &Business{col: store.NewCollection[models.BusinessDetails](s, "id")}
}

// Get returns the profile and whether one has been saved yet. A missing
// profile is a normal state (fresh install), not an error.
func (r *Business) Get(ctx context.Context) (*models.BusinessDetails, bool, error) {
	return r.col.Get(ctx, models.BusinessKey)
}

// Save shallow-merges the patch onto the existing singleton and writes it
// back, creating the record on first write. Omitted fields always persist:
// separate edit screens (logo, bank details, contact info) each submit only
// their own fields. Last writer wins on concurrent saves.
func (r *Business) Save(ctx context.Context, patch models.BusinessPatch) (*models.BusinessDetails, error) {
	rec, ok, err := r.col.Get(ctx, models.BusinessKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		rec = &models.BusinessDetails{ID: models.BusinessKey}
	}
	patch.Apply(rec)
	rec.ID = models.BusinessKey
	rec.UpdatedAt = time.Now().UTC()
	if err := r.col.Put(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
