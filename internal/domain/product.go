package domain

import "time"

type Product struct {
	ID         int
	Name       string
	ListPrice  float64
	CategoryID int
	Category   ProductCategory
	CompanyID  int
	TaxIDs     []int
	IsActive   bool
	IsDeleted  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
