// Package entity defines the domain entities for the farms feature.
package entity

import "time"

// Farm is a marketplace listing owned by exactly one user.
//
// ProductIDs is a denormalized, ordered list of the products created
// under the farm. It is appended to at product creation and never
// cleaned up when a product is deleted, so readers must tolerate ids
// that no longer resolve.
type Farm struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"size:255;not null"`
	City  string `gorm:"size:255;not null"`
	Email string `gorm:"size:255;not null"`

	// AuthorID references the owning user. It is set at creation and
	// never reassigned.
	AuthorID uint `gorm:"index;not null"`

	ProductIDs []uint `gorm:"serializer:json;type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy reports whether the given user owns this farm.
func (f *Farm) OwnedBy(userID uint) bool {
	return f.AuthorID == userID
}
