package services

import (
	"context"
	"encoding/json"
	"unicode/utf16"
)

// DefaultQuotaBytes is the fixed fallback quota used when the environment
// cannot report one; sqlite never does, so this is effectively the quota
// unless overridden by configuration.
const DefaultQuotaBytes = 500 << 20 // 500 MiB

// CollectionDumper is the slice of the store needed for storage accounting.
type CollectionDumper interface {
	CollectionNames() []string
	DumpCollection(ctx context.Context, name string) ([]map[string]any, error)
}

// Usage reports the estimated bytes used against the quota.
type Usage struct {
	UsedBytes  int64   `json:"usedBytes"`
	QuotaBytes int64   `json:"quotaBytes"`
	Percent    float64 `json:"percent"`
}

// StorageUsage sums the serialized size of every record across every
// collection, counting UTF-16 code units at 2 bytes each. This is a
// portable, engine-independent estimate, not an exact on-disk figure.
func StorageUsage(ctx context.Context, d CollectionDumper, quotaBytes int64) (Usage, error) {
	if quotaBytes <= 0 {
		quotaBytes = DefaultQuotaBytes
	}
	var total int64
	for _, name := range d.CollectionNames() {
		rows, err := d.DumpCollection(ctx, name)
		if err != nil {
			return Usage{}, err
		}
		if len(rows) == 0 {
			continue
		}
		b, err := json.Marshal(rows)
		if err != nil {
			return Usage{}, err
		}
		total += int64(len(utf16.Encode([]rune(string(b))))) * 2
	}
	return Usage{
		UsedBytes:  total,
		QuotaBytes: quotaBytes,
		Percent:    float64(total) / float64(quotaBytes) * 100,
	}, nil
}
