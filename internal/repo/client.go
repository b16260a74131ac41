package repo

import (
	"context"

	"github.com/openinvoice/openinvoice/internal/models"
	"github.com/openinvoice/openinvoice/internal/store"
)

// Clients is plain CRUD; the only invariant is the email unique index the
// store declares, surfaced as ErrConstraintViolation on insert.
type Clients struct {
	col store.Collection[models.Client]
}

func NewClients(s *store.Store) *Clients {
	return &Clients{col: store.NewCollection[models.Client](s, "id")}
}

func (r *Clients) Save(ctx context.Context, c *models.Client) (uint, error) {
	c.ID = 0
	if err := r.col.Add(ctx, c); err != nil {
		return 0, err
	}
	return c.ID, nil
}

func (r *Clients) GetAll(ctx context.Context) ([]models.Client, error) {
	return r.col.GetAll(ctx)
}

// Update fully replaces the record by id (upsert, matching the store's put
// semantics).
func (r *Clients) Update(ctx context.Context, c *models.Client) error {
	return r.col.Put(ctx, c)
}

func (r *Clients) Delete(ctx context.Context, id uint) error {
	return r.col.Delete(ctx, id)
}
