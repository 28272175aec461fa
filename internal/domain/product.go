package domain

import "time"

// Product represents a sellable item in the catalog
type Product struct {
	ID          string     `json:"id"`
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description" validate:"required"`
	Price       float64    `json:"price" validate:"gte=0"`
	Category    string     `json:"category" validate:"required"`
	Image       string     `json:"image" validate:"required,uri"`
	Stock       int        `json:"stock" validate:"gte=0"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// ProductPatch carries the fields an admin edit may change.
// Nil fields are left untouched by an update.
type ProductPatch struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Category    *string  `json:"category,omitempty"`
	Image       *string  `json:"image,omitempty"`
	Stock       *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
}
