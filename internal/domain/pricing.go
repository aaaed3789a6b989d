package domain

import "time"

type RuleScope string

const (
	ScopeProduct  RuleScope = "product"
	ScopeCategory RuleScope = "category"
	ScopeGlobal   RuleScope = "global"
)

type ComputeMode string

const (
	ComputeFixed      ComputeMode = "fixed"
	ComputePercentage ComputeMode = "percentage"
	// ComputeFormula cannot be resolved outside the back office; the resolver
	// returns no price for it.
	ComputeFormula ComputeMode = "formula"
)

type PriceRule struct {
	ID           int
	Scope        RuleScope
	ProductID    *int
	CategoryID   *int
	Mode         ComputeMode
	FixedPrice   float64
	PercentPrice float64
	MinQuantity  float64
	DateStart    *time.Time
	DateEnd      *time.Time
}

// AppliesTo reports whether the rule's scope covers the given product.
func (r PriceRule) AppliesTo(productID, categoryID int) bool {
	switch r.Scope {
	case ScopeProduct:
		return r.ProductID != nil && *r.ProductID == productID
	case ScopeCategory:
		return r.CategoryID != nil && *r.CategoryID == categoryID
	case ScopeGlobal:
		return true
	}
	return false
}

// ActiveAt checks the rule's validity window; open-ended bounds are allowed.
func (r PriceRule) ActiveAt(t time.Time) bool {
	if r.DateStart != nil && t.Before(*r.DateStart) {
		return false
	}
	if r.DateEnd != nil && t.After(*r.DateEnd) {
		return false
	}
	return true
}

type TaxRecord struct {
	ID        int
	Name      string
	Amount    float64
	CompanyID int
}
