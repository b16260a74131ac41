package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/openinvoice/openinvoice/internal/models"
)

func inv(number, issueDate, status, total string) models.Invoice {
	return models.Invoice{
		InvoiceNumber: number,
		IssueDate:     issueDate,
		Status:        status,
		Total:         decimal.RequireFromString(total),
	}
}

func TestNormalizeStatus(t *testing.T) {
	require.Equal(t, "paid", NormalizeStatus("PAID"))
	require.Equal(t, "cancelled", NormalizeStatus("canceled"))
	require.Equal(t, "cancelled", NormalizeStatus("Cancelled"))
	require.Equal(t, "pending", NormalizeStatus("  pending "))
}

func TestEffectiveYearPrecedence(t *testing.T) {
	created := time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC)

	// Parseable issue date wins over createdAt.
	y, ok := EffectiveYear(models.Invoice{IssueDate: "2024-03-01", CreatedAt: created})
	require.True(t, ok)
	require.Equal(t, 2024, y)

	// RFC3339 issue dates parse too.
	y, ok = EffectiveYear(models.Invoice{IssueDate: "2023-07-15T10:30:00Z"})
	require.True(t, ok)
	require.Equal(t, 2023, y)

	// Unparseable issue date falls back to createdAt.
	y, ok = EffectiveYear(models.Invoice{IssueDate: "March 1st", CreatedAt: created})
	require.True(t, ok)
	require.Equal(t, 2022, y)

	// Neither date: excluded, never defaulted to the current year.
	_, ok = EffectiveYear(models.Invoice{IssueDate: "garbage"})
	require.False(t, ok)
	_, ok = EffectiveYear(models.Invoice{})
	require.False(t, ok)
}

func TestRollup(t *testing.T) {
	invoices := []models.Invoice{
		inv("INV-1", "2024-01-10", "paid", "60"),
		inv("INV-2", "2024-02-10", "Paid", "40"),
		inv("INV-3", "2024-03-10", "pending", "50"),
		inv("INV-4", "2023-06-01", "cancelled", "30"),
		inv("INV-5", "", "paid", "999"), // no effective date, ignored
	}

	r := Rollup(invoices, 2024)
	require.True(t, r.Paid.Amount.Equal(decimal.RequireFromString("100")), "paid=%s", r.Paid.Amount)
	require.Equal(t, 2, r.Paid.Count)
	require.True(t, r.Pending.Amount.Equal(decimal.RequireFromString("50")))
	require.Equal(t, 1, r.Pending.Count)
	require.Equal(t, 0, r.Cancelled.Count)
	require.True(t, r.Revenue.Equal(r.Paid.Amount), "revenue is paid only")

	r23 := Rollup(invoices, 2023)
	require.True(t, r23.Cancelled.Amount.Equal(decimal.RequireFromString("30")))
	require.True(t, r23.Revenue.Equal(decimal.Zero))
}

func TestRollupFoldsStatusVariants(t *testing.T) {
	invoices := []models.Invoice{
		inv("INV-1", "2024-01-10", "CANCELED", "10"),
		inv("INV-2", "2024-01-11", "Cancelled", "20"),
	}
	r := Rollup(invoices, 2024)
	require.Equal(t, 2, r.Cancelled.Count)
	require.True(t, r.Cancelled.Amount.Equal(decimal.RequireFromString("30")))
}

// Bucket sums never exceed the plain sum of the year's invoices.
func TestRollupBucketsBoundedByYearTotal(t *testing.T) {
	invoices := []models.Invoice{
		inv("INV-1", "2024-01-10", "paid", "10"),
		inv("INV-2", "2024-02-10", "pending", "20"),
		inv("INV-3", "2024-03-10", "draft", "70"), // outside the three buckets
	}
	r := Rollup(invoices, 2024)
	sum := r.Paid.Amount.Add(r.Pending.Amount).Add(r.Cancelled.Amount)
	yearTotal := decimal.RequireFromString("100")
	require.True(t, sum.LessThanOrEqual(yearTotal), "bucket sum %s > year total %s", sum, yearTotal)
}

func TestAvailableYears(t *testing.T) {
	invoices := []models.Invoice{
		inv("INV-1", "2023-01-10", "paid", "1"),
		inv("INV-2", "2024-01-10", "paid", "1"),
		inv("INV-3", "2024-06-10", "pending", "1"),
		inv("INV-4", "", "paid", "1"),
	}
	years, excluded := AvailableYears(invoices)
	require.Equal(t, []int{2024, 2023}, years)
	require.Equal(t, 1, excluded)
}

func TestDefaultYear(t *testing.T) {
	now := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	require.Equal(t, 2024, DefaultYear([]int{2024, 2023}, now))
	require.Equal(t, 2023, DefaultYear([]int{2023, 2022}, now))
	require.Equal(t, 2024, DefaultYear(nil, now))
}

func TestFilterInvoices(t *testing.T) {
	invoices := []models.Invoice{
		{InvoiceNumber: "INV-2024-001", IssueDate: "2024-01-10", Status: "paid", ClientName: "Acme Corp"},
		{InvoiceNumber: "INV-2024-002", IssueDate: "2024-02-10", Status: "pending", ClientName: "Beta LLC"},
		{InvoiceNumber: "INV-2023-001", IssueDate: "2023-01-10", Status: "paid", ClientName: "Acme Corp"},
		{InvoiceNumber: "INV-X", IssueDate: "", Status: "paid", ClientName: "Acme Corp"},
	}

	// Year alone.
	got, excluded := FilterInvoices(invoices, 2024, TabAll, "")
	require.Len(t, got, 2)
	require.Equal(t, 1, excluded)

	// Year and tab.
	got, _ = FilterInvoices(invoices, 2024, "Paid", "")
	require.Len(t, got, 1)
	require.Equal(t, "INV-2024-001", got[0].InvoiceNumber)

	// Query matches client name case-insensitively.
	got, _ = FilterInvoices(invoices, 2024, TabAll, "acme")
	require.Len(t, got, 1)
	require.Equal(t, "Acme Corp", got[0].ClientName)

	// Query matches invoice number.
	got, _ = FilterInvoices(invoices, 2024, TabAll, "002")
	require.Len(t, got, 1)
	require.Equal(t, "INV-2024-002", got[0].InvoiceNumber)

	// All filters conjoined: no pending acme in 2024.
	got, _ = FilterInvoices(invoices, 2024, "pending", "acme")
	require.Empty(t, got)
}

func TestFilterInvoicesLargeSetStable(t *testing.T) {
	var invoices []models.Invoice
	for i := 0; i < 500; i++ {
		invoices = append(invoices, inv(fmt.Sprintf("INV-%04d", i), "2024-01-10", "paid", "1"))
	}
	got, excluded := FilterInvoices(invoices, 2024, TabAll, "")
	require.Len(t, got, 500)
	require.Zero(t, excluded)
	// Order preserved.
	require.Equal(t, "INV-0000", got[0].InvoiceNumber)
	require.Equal(t, "INV-0499", got[499].InvoiceNumber)
}
