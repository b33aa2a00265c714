package models

// Category represents a product category. Categories are seeded and
// append-only; products reference them, never own them.
type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"type:varchar(100);not null"`
}
