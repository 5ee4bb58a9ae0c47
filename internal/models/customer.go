package models

import "time"

// Customer represents a CRM customer record.
type Customer struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name      string    `json:"name" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Phone     string    `json:"phone,omitempty" gorm:"type:varchar(32)" validate:"omitempty,phone"`
	CreatedAt time.Time `json:"createdAt"`
}

// CustomerInput is the wire shape accepted by createCustomer and
// bulkCreateCustomers.
type CustomerInput struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"omitempty,phone"`
}
