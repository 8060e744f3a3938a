package models

import "time"

// Host represents a host family or partner organization that receives
// deliveries or accommodates visiting volunteers.
type Host struct {
	// ID is the unique identifier for the host.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Name is the host's display name.
	Name string `gorm:"size:255;not null" json:"name"`
	// ContactName is the primary contact person.
	ContactName string `gorm:"size:255" json:"contactName"`
	// Email is the contact email address.
	Email string `gorm:"size:255" json:"email"`
	// Phone is the contact phone number.
	Phone string `gorm:"size:50" json:"phone"`
	// Street, City and PostalCode form the host's address.
	Street     string `gorm:"size:255" json:"street"`
	City       string `gorm:"size:100" json:"city"`
	PostalCode string `gorm:"size:20" json:"postalCode"`
	// Capacity is how many guests the host can accommodate overnight.
	Capacity int `json:"capacity"`
	// Active indicates the host is currently available.
	Active bool `gorm:"default:true" json:"active"`
	// Notes is free-form coordinator text.
	Notes string `gorm:"type:text" json:"notes"`
	// CreatedAt is the timestamp when the host was created (managed by GORM).
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the timestamp when the host was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updatedAt"`
}
