package models

import "time"

// Collection records one donation or supply collection entry, e.g.
// "40 loaves of bread collected on 2026-03-02 at Riverside Church".
type Collection struct {
	// ID is the unique identifier for the entry.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// HostID optionally links the host where the collection happened.
	HostID *uint64 `json:"hostId"`
	// Host is the associated host (loaded via foreign key).
	Host *Host `gorm:"foreignKey:HostID" json:"-"`
	// Item names what was collected.
	Item string `gorm:"size:255;not null" json:"item"`
	// Quantity is the collected amount in Unit.
	Quantity int `json:"quantity"`
	// Unit is the measurement unit (e.g. "loaves", "kg", "boxes").
	Unit string `gorm:"size:50" json:"unit"`
	// CollectedOn is the day of the collection.
	CollectedOn time.Time `json:"collectedOn"`
	// RecordedByID is the user who recorded the entry.
	RecordedByID uint64 `gorm:"not null" json:"recordedById"`
	// RecordedBy is the recording user (loaded via foreign key).
	RecordedBy User `gorm:"foreignKey:RecordedByID" json:"-"`
	// Notes is free-form text.
	Notes string `gorm:"type:text" json:"notes"`
	// CreatedAt is the timestamp when the entry was created (managed by GORM).
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the timestamp when the entry was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updatedAt"`
}
