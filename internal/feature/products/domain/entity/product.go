// Package entity defines the domain entities for the products feature.
package entity

import "time"

// Category classifies a product. The set is closed.
type Category string

const (
	CategoryFruit     Category = "fruit"
	CategoryVegetable Category = "vegetable"
	CategoryDairy     Category = "dairy"
)

// Categories lists every valid category, in display order.
var Categories = []Category{CategoryFruit, CategoryVegetable, CategoryDairy}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryFruit, CategoryVegetable, CategoryDairy:
		return true
	}
	return false
}

// Product is a sellable item nested under exactly one farm.
//
// FarmID is a plain reference without a database-level foreign key:
// deleting a farm leaves its products behind with a dangling reference,
// and readers must tolerate that.
type Product struct {
	ID    uint    `gorm:"primaryKey"`
	Name  string  `gorm:"size:255;not null"`
	Price float64 `gorm:"not null"`

	Category Category `gorm:"size:20;not null;index"`

	// FarmID references the containing farm.
	FarmID uint `gorm:"index;not null"`

	// AuthorID references the owning user. It equals the farm's author
	// at creation time and is never reassigned.
	AuthorID uint `gorm:"index;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy reports whether the given user owns this product.
func (p *Product) OwnedBy(userID uint) bool {
	return p.AuthorID == userID
}
