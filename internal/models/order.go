package models

import "time"

// OrderItem is a single order line. The product reference is what makes a
// product "dependent": a product with order lines cannot be deleted.
type OrderItem struct {
	OrderID   string  `json:"order_id" gorm:"primaryKey;type:varchar(36)"`
	ProductID uint    `json:"product_id" gorm:"primaryKey;index"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"` // price at the time of order
}

// Order is a customer order. The catalog exposes no order operations; orders
// exist here as the entity whose lines hold foreign references to products.
type Order struct {
	ID        string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    uint        `json:"user_id"`
	Items     []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt time.Time   `json:"created_at"`
}
