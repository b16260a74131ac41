package models

// Client is a standalone contact list entry. Invoices denormalize client
// name/email directly, so there is no foreign key and no cascade on delete.
type Client struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"index" json:"name"`
	Email string `gorm:"uniqueIndex" json:"email"`
}
