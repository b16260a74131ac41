package models

import "encoding/json"

// Setting is an independent key/value pair; the key is the identity and the
// value is opaque JSON (string, number, or structured).
type Setting struct {
	Key   string          `gorm:"primaryKey" json:"key"`
	Value json.RawMessage `gorm:"type:text" json:"value"`
}
