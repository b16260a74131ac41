package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the primary record of the data layer. Totals are computed at
// save/edit time and frozen; they are never recomputed from the line items.
// IssueDate and DueDate stay strings because they are user-entered and may be
// unparseable; date handling lives in the aggregation layer.
type Invoice struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	InvoiceNumber  string           `gorm:"uniqueIndex" json:"invoiceNumber"`
	IssueDate      string           `json:"issueDate"`
	DueDate        string           `json:"dueDate"`
	ClientID       uint             `gorm:"index" json:"clientId"`
	ClientName     string           `json:"clientName"`
	ClientEmail    string           `json:"clientEmail"`
	Items          LineItems        `gorm:"type:text" json:"items"`
	Subtotal       decimal.Decimal  `gorm:"type:numeric" json:"subtotal"`
	Tax            decimal.Decimal  `gorm:"type:numeric" json:"tax"`
	TaxRate        decimal.Decimal  `gorm:"type:numeric" json:"taxRate"`
	Total          decimal.Decimal  `gorm:"type:numeric" json:"total"`
	Currency       string           `json:"currency"`
	CurrencySymbol string           `json:"currencySymbol"`
	Notes          string           `json:"notes"`
	Status         string           `gorm:"index" json:"status"`
	Business       BusinessSnapshot `gorm:"type:text" json:"businessDetails"`
	// Repository-managed; gorm auto-stamping is disabled so a zero value
	// genuinely means "absent" for the date-exclusion rule.
	CreatedAt time.Time `gorm:"index;autoCreateTime:false" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

// LineItem is owned by its parent invoice and has no independent lifecycle.
type LineItem struct {
	Description string          `json:"description"`
	Qty         int             `json:"qty"`
	Price       decimal.Decimal `json:"price"`
}

// LineTotal is qty x price.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Qty)))
}

// LineItems is stored inline on the invoice row as a JSON column.
type LineItems []LineItem

func (li LineItems) Value() (driver.Value, error) {
	return json.Marshal(li)
}

func (li *LineItems) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*li = nil
		return nil
	case []byte:
		if len(v) == 0 {
			*li = nil
			return nil
		}
		return json.Unmarshal(v, li)
	case string:
		if v == "" {
			*li = nil
			return nil
		}
		return json.Unmarshal([]byte(v), li)
	default:
		return errors.New("line items: unsupported column type")
	}
}

// InvoicePatch carries a partial update. Nil fields are left untouched.
// The invoice id and timestamps are never patchable.
type InvoicePatch struct {
	InvoiceNumber  *string           `json:"invoiceNumber"`
	IssueDate      *string           `json:"issueDate"`
	DueDate        *string           `json:"dueDate"`
	ClientID       *uint             `json:"clientId"`
	ClientName     *string           `json:"clientName"`
	ClientEmail    *string           `json:"clientEmail"`
	Items          *LineItems        `json:"items"`
	Subtotal       *decimal.Decimal  `json:"subtotal"`
	Tax            *decimal.Decimal  `json:"tax"`
	TaxRate        *decimal.Decimal  `json:"taxRate"`
	Total          *decimal.Decimal  `json:"total"`
	Currency       *string           `json:"currency"`
	CurrencySymbol *string           `json:"currencySymbol"`
	Notes          *string           `json:"notes"`
	Status         *string           `json:"status"`
	Business       *BusinessSnapshot `json:"businessDetails"`
}

// Apply shallow-merges the patch onto inv.
func (p InvoicePatch) Apply(inv *Invoice) {
	if p.InvoiceNumber != nil {
		inv.InvoiceNumber = *p.InvoiceNumber
	}
	if p.IssueDate != nil {
		inv.IssueDate = *p.IssueDate
	}
	if p.DueDate != nil {
		inv.DueDate = *p.DueDate
	}
	if p.ClientID != nil {
		inv.ClientID = *p.ClientID
	}
	if p.ClientName != nil {
		inv.ClientName = *p.ClientName
	}
	if p.ClientEmail != nil {
		inv.ClientEmail = *p.ClientEmail
	}
	if p.Items != nil {
		inv.Items = *p.Items
	}
	if p.Subtotal != nil {
		inv.Subtotal = *p.Subtotal
	}
	if p.Tax != nil {
		inv.Tax = *p.Tax
	}
	if p.TaxRate != nil {
		inv.TaxRate = *p.TaxRate
	}
	if p.Total != nil {
		inv.Total = *p.Total
	}
	if p.Currency != nil {
		inv.Currency = *p.Currency
	}
	if p.CurrencySymbol != nil {
		inv.CurrencySymbol = *p.CurrencySymbol
	}
	if p.Notes != nil {
		inv.Notes = *p.Notes
	}
	if p.Status != nil {
		inv.Status = *p.Status
	}
	if p.Business != nil {
		inv.Business = *p.Business
	}
}
