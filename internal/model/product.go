package model

import "time"

// Product is the second resource type. It carries a generic attribute set
// and has no relationship to User — no uniqueness rule, no credentials.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
