package models

// Product represents a product in the CRM catalog.
type Product struct {
	ID    string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name  string  `json:"name" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	Price float64 `json:"price" validate:"required,gt=0"`
	Stock int     `json:"stock" validate:"gte=0"`
}

// ProductInput is the wire shape accepted by createProduct. Stock is a
// pointer so an omitted field defaults to 0 while an explicit negative
// value is still rejected.
type ProductInput struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"required"`
	Stock *int    `json:"stock"`
}
