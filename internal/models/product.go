package models

// Product represents a product in the catalog. The categories list is
// resolved from the join table on read and is never empty for a persisted
// product.
type Product struct {
	ID          uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string     `json:"name" gorm:"type:varchar(80);not null"`
	Description string     `json:"description" gorm:"type:text;not null"`
	Price       float64    `json:"price" gorm:"not null"`
	ImgURL      string     `json:"imgUrl" gorm:"type:varchar(255)"`
	Categories  []Category `json:"categories" gorm:"many2many:product_categories;"`
}

// CategoryRef carries just the id of a referenced category in a create
// request body.
type CategoryRef struct {
	ID uint `json:"id"`
}

// ProductInput is the create-product request payload. Categories may be
// null in the incoming JSON; a nil slice and an empty one are treated the
// same by validation.
type ProductInput struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	ImgURL      string        `json:"imgUrl"`
	Categories  []CategoryRef `json:"categories"`
}

// CategoryIDs extracts the referenced category ids in payload order.
func (in ProductInput) CategoryIDs() []uint {
	ids := make([]uint, 0, len(in.Categories))
	for _, ref := range in.Categories {
		ids = append(ids, ref.ID)
	}
	return ids
}
