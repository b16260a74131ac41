package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// BusinessKey is the fixed identity of the singleton business record.
const BusinessKey = "main"

// BusinessDetails is a singleton: the collection holds exactly one row,
// addressed by BusinessKey. It is only ever written via partial merge so
// fields submitted by separate edit screens (logo, bank, contact) accrete.
type BusinessDetails struct {
	ID      string `gorm:"primaryKey" json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
	// Logo is a self-describing base64 data URL, inlined like the rest of
	// the record.
	Logo              string    `json:"logo"`
	BankName          string    `json:"bankName"`
	AccountNumber     string    `json:"accountNumber"`
	RoutingNumber     string    `json:"routingNumber"`
	AccountHolderName string    `json:"accountHolderName"`
	SwiftCode         string    `json:"swiftCode"`
	IBAN              string    `json:"iban"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

func (BusinessDetails) TableName() string { return "business" }

// BusinessSnapshot is the denormalized copy of the profile embedded in each
// invoice at creation time, so historical invoices are unaffected by later
// profile edits. Stored as a JSON column on the invoice row.
type BusinessSnapshot BusinessDetails

func (b BusinessSnapshot) Value() (driver.Value, error) {
	return json.Marshal(b)
}

func (b *BusinessSnapshot) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*b = BusinessSnapshot{}
		return nil
	case []byte:
		if len(v) == 0 {
			*b = BusinessSnapshot{}
			return nil
		}
		return json.Unmarshal(v, b)
	case string:
		if v == "" {
			*b = BusinessSnapshot{}
			return nil
		}
		return json.Unmarshal([]byte(v), b)
	default:
		return errors.New("business snapshot: unsupported column type")
	}
}

// BusinessPatch carries a partial profile update; nil fields persist as-is.
type BusinessPatch struct {
	Name              *string `json:"name"`
	Email             *string `json:"email"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	City              *string `json:"city"`
	ZipCode           *string `json:"zipCode"`
	Country           *string `json:"country"`
	Logo              *string `json:"logo"`
	BankName          *string `json:"bankName"`
	AccountNumber     *string `json:"accountNumber"`
	RoutingNumber     *string `json:"routingNumber"`
	AccountHolderName *string `json:"accountHolderName"`
	SwiftCode         *string `json:"swiftCode"`
	IBAN              *string `json:"iban"`
}

// Apply shallow-merges the patch onto b.
func (p BusinessPatch) Apply(b *BusinessDetails) {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.Email != nil {
		b.Email = *p.Email
	}
	if p.Phone != nil {
		b.Phone = *p.Phone
	}
	if p.Address != nil {
		b.Address = *p.Address
	}
	if p.City != nil {
		b.City = *p.City
	}
	if p.ZipCode != nil {
		b.ZipCode = *p.ZipCode
	}
	if p.Country != nil {
		b.Country = *p.Country
	}
	if p.Logo != nil {
		b.Logo = *p.Logo
	}
	if p.BankName != nil {
		b.BankName = *p.BankName
	}
	if p.AccountNumber != nil {
		b.AccountNumber = *p.AccountNumber
	}
	if p.RoutingNumber != nil {
		b.RoutingNumber = *p.RoutingNumber
	}
	if p.AccountHolderName != nil {
		b.AccountHolderName = *p.AccountHolderName
	}
	if p.SwiftCode != nil {
		b.SwiftCode = *p.SwiftCode
	}
	if p.IBAN != nil {
		b.IBAN = *p.IBAN
	}
}
