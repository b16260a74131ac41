// Package services holds the pure aggregation logic: everything here works
// on in-memory invoice slices with no storage access, so it can be unit
// tested in isolation.
package services

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openinvoice/openinvoice/internal/models"
)

// Canonical status values. Comparison is case-insensitive and folds the
// "canceled" spelling variant into "cancelled".
const (
	StatusPaid      = "paid"
	StatusPending   = "pending"
	StatusCancelled = "cancelled"
)

// TabAll matches every status in filtered views.
const TabAll = "All"

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
}

// NormalizeStatus lowercases and folds spelling variants.
func NormalizeStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "canceled" {
		return StatusCancelled
	}
	return s
}

// EffectiveYear resolves the year an invoice belongs to: the issue date if
// present and parseable, else a non-zero created-at. Invoices with neither
// are excluded from year-based views (never defaulted to the current year).
func EffectiveYear(inv models.Invoice) (int, bool) {
	if inv.IssueDate != "" {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, inv.IssueDate); err == nil {
				return t.Year(), true
			}
		}
	}
	if !inv.CreatedAt.IsZero() {
		return inv.CreatedAt.Year(), true
	}
	return 0, false
}

// AvailableYears returns the distinct effective years, most recent first,
// along with the count of invoices excluded for missing/unparseable dates.
func AvailableYears(invoices []models.Invoice) ([]int, int) {
	seen := map[int]bool{}
	excluded := 0
	for _, inv := range invoices {
		y, ok := EffectiveYear(inv)
		if !ok {
			excluded++
			continue
		}
		seen[y] = true
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, excluded
}

// DefaultYear picks the current calendar year when present, else the most
// recent year with data, else the current year for an empty store.
func DefaultYear(years []int, now time.Time) int {
	cur := now.Year()
	for _, y := range years {
		if y == cur {
			return cur
		}
	}
	if len(years) > 0 {
		return years[0]
	}
	return cur
}

// Bucket is one status slice of a year rollup.
type Bucket struct {
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// YearRollup partitions one year's invoices by status and sums their frozen
// totals. Revenue is the paid bucket only, not paid+pending.
type YearRollup struct {
	Paid      Bucket          `json:"paid"`
	Pending   Bucket          `json:"pending"`
	Cancelled Bucket          `json:"cancelled"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// Rollup computes the per-status sums for year. Invoices outside the year,
// without an effective date, or with a status outside the three buckets are
// ignored.
func Rollup(invoices []models.Invoice, year int) YearRollup {
	r := YearRollup{
		Paid:      Bucket{Amount: decimal.Zero},
		Pending:   Bucket{Amount: decimal.Zero},
		Cancelled: Bucket{Amount: decimal.Zero},
		Revenue:   decimal.Zero,
	}
	for _, inv := range invoices {
		y, ok := EffectiveYear(inv)
		if !ok || y != year {
			continue
		}
		switch NormalizeStatus(inv.Status) {
		case StatusPaid:
			r.Paid.Amount = r.Paid.Amount.Add(inv.Total)
			r.Paid.Count++
		case StatusPending:
			r.Pending.Amount = r.Pending.Amount.Add(inv.Total)
			r.Pending.Count++
		case StatusCancelled:
			r.Cancelled.Amount = r.Cancelled.Amount.Add(inv.Total)
			r.Cancelled.Count++
		}
	}
	r.Revenue = r.Paid.Amount
	return r
}

// FilterInvoices returns the invoices matching year, status tab (TabAll or a
// status name) and a case-insensitive substring search over invoice number
// and client name. An empty query matches everything. The second return is
// the count of invoices excluded for missing/unparseable dates, so silent
// exclusion stays observable.
func FilterInvoices(invoices []models.Invoice, year int, tab, query string) ([]models.Invoice, int) {
	q := strings.ToLower(strings.TrimSpace(query))
	wantStatus := ""
	if tab != "" && !strings.EqualFold(tab, TabAll) {
		wantStatus = NormalizeStatus(tab)
	}
	matched := make([]models.Invoice, 0, len(invoices))
	excluded := 0
	for _, inv := range invoices {
		y, ok := EffectiveYear(inv)
		if !ok {
			excluded++
			continue
		}
		if y != year {
			continue
		}
		if wantStatus != "" && NormalizeStatus(inv.Status) != wantStatus {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(inv.InvoiceNumber), q) &&
			!strings.Contains(strings.ToLower(inv.ClientName), q) {
			continue
		}
		matched = append(matched, inv)
	}
	return matched, excluded
}
