package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openinvoice/openinvoice/internal/models"
	"github.com/openinvoice/openinvoice/internal/store"
)

// Settings is a typed key/value view over the settings collection.
type Settings struct {
	col store.Collection[models.Setting]
}

func NewSettings(s *store.Store) *Settings {
	return &Settings{col: store.NewCollection[models.Setting](s, "key")}
}

// Get returns the raw JSON value for key and whether it exists. Absence is
// never an error.
func (r *Settings) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	rec, ok, err := r.col.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	return rec.Value, true, nil
}

// Set upserts the value for key.
func (r *Settings) Set(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("setting %q: %w", key, err)
	}
	return r.col.Put(ctx, &models.Setting{Key: key, Value: b})
}

// All returns every setting as a key -> raw value map.
func (r *Settings) All(ctx context.Context) (map[string]json.RawMessage, error) {
	recs, err := r.col.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]json.RawMessage, len(recs))
	for _, rec := range recs {
		out[rec.Key] = rec.Value
	}
	return out, nil
}

// GetAs decodes the setting into T, returning def when the key is absent or
// holds no value.
func GetAs[T any](ctx context.Context, r *Settings, key string, def T) (T, error) {
	raw, ok, err := r.Get(ctx, key)
	if err != nil {
		return def, err
	}
	if !ok || len(raw) == 0 {
		return def, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return def, fmt.Errorf("setting %q: %w", key, err)
	}
	return v, nil
}
