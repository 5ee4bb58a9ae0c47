package models

import "time"

// Order represents a customer order. TotalAmount is the sum of the
// associated products' prices at the moment the order was created and is
// never recomputed afterwards.
type Order struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerID  string    `json:"customerId" gorm:"type:varchar(36);index;not null"`
	Customer    Customer  `json:"customer" gorm:"foreignKey:CustomerID"`
	Products    []Product `json:"products" gorm:"many2many:order_products"`
	TotalAmount float64   `json:"totalAmount"`
	OrderDate   time.Time `json:"orderDate"`
}

// OrderInput is the wire shape accepted by createOrder.
type OrderInput struct {
	CustomerID string   `json:"customerId"`
	ProductIDs []string `json:"productIds"`
}
