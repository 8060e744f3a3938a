package models

import (
	"time"

	"github.com/volunteerhub/volunteerhub/internal/intake"
)

// EventRequestStatus is the review state of an event request.
type EventRequestStatus string

const (
	// EventRequestPending is the initial state after intake.
	EventRequestPending EventRequestStatus = "pending"
	// EventRequestApproved means a coordinator accepted the request.
	EventRequestApproved EventRequestStatus = "approved"
	// EventRequestDeclined means a coordinator rejected the request.
	EventRequestDeclined EventRequestStatus = "declined"
)

// EventRequest is an incoming request for a sandwich delivery event,
// optionally with drivers, a speaker or overnight hosting.
//
// Requests are created incomplete on purpose: the intake form saves
// whatever the requester entered, and the completeness checker reports
// what is still missing (see internal/intake).
type EventRequest struct {
	// ID is the unique identifier for the request.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Status is the review state (pending, approved, declined).
	Status EventRequestStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	// Organization is the requesting organization's name.
	Organization string `gorm:"size:255" json:"organization"`
	// EventDate is the day the event takes place.
	EventDate time.Time `json:"eventDate"`

	// Contact fields for the requesting organization.
	ContactName  string `gorm:"size:255" json:"contactName"`
	ContactEmail string `gorm:"size:255" json:"contactEmail"`
	ContactPhone string `gorm:"size:50" json:"contactPhone"`

	// SandwichCount is the number of sandwiches requested; SandwichTypes
	// the selected varieties (JSON string array column).
	SandwichCount int        `json:"sandwichCount"`
	SandwichTypes StringList `gorm:"type:text" json:"sandwichTypes"`

	// Delivery address. Only required when drivers are requested; a
	// self-delivering organization leaves these empty.
	Street     string `gorm:"size:255" json:"street"`
	City       string `gorm:"size:100" json:"city"`
	PostalCode string `gorm:"size:20" json:"postalCode"`

	// DriversNeeded is the number of volunteer drivers requested.
	DriversNeeded int `json:"driversNeeded"`
	// VanDriverNeeded indicates the request needs the organization van.
	VanDriverNeeded bool `json:"vanDriverNeeded"`
	// PickupTimeWindow is when drivers can pick up, e.g. "9:00-11:00".
	PickupTimeWindow string `gorm:"size:100" json:"pickupTimeWindow"`
	// PickupPersonResponsible is who meets the drivers on site.
	PickupPersonResponsible string `gorm:"size:255" json:"pickupPersonResponsible"`

	// SpeakersNeeded is the number of speakers requested for the event.
	SpeakersNeeded int `json:"speakersNeeded"`
	// SpeakerTimeWindow is when the speaker slot takes place.
	SpeakerTimeWindow string `gorm:"size:100" json:"speakerTimeWindow"`

	// OvernightNeeded indicates visiting volunteers must be hosted overnight.
	OvernightNeeded bool `json:"overnightNeeded"`
	// OvernightCapacity is how many guests can be hosted.
	OvernightCapacity int `json:"overnightCapacity"`

	// Notes is free-form intake text.
	Notes string `gorm:"type:text" json:"notes"`

	// HostID optionally links an assigned host.
	HostID *uint64 `json:"hostId"`
	// Host is the assigned host (loaded via foreign key).
	Host *Host `gorm:"foreignKey:HostID" json:"-"`

	// CreatedByID is the user who filed the request.
	CreatedByID uint64 `gorm:"not null" json:"createdById"`
	// CreatedBy is the filing user (loaded via foreign key).
	CreatedBy User `gorm:"foreignKey:CreatedByID" json:"-"`

	// CreatedAt is the timestamp when the request was created (managed by GORM).
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the timestamp when the request was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the database table name for the EventRequest model.
func (EventRequest) TableName() string {
	return "event_requests"
}

// IntakeRecord projects the completeness-relevant fields for the intake
// checker.
func (e *EventRequest) IntakeRecord() intake.Record {
	return intake.Record{
		ContactName:             e.ContactName,
		ContactEmail:            e.ContactEmail,
		ContactPhone:            e.ContactPhone,
		SandwichCount:           e.SandwichCount,
		SandwichTypes:           e.SandwichTypes,
		Street:                  e.Street,
		City:                    e.City,
		PostalCode:              e.PostalCode,
		DriversNeeded:           e.DriversNeeded,
		VanDriverNeeded:         e.VanDriverNeeded,
		PickupTimeWindow:        e.PickupTimeWindow,
		PickupPersonResponsible: e.PickupPersonResponsible,
		SpeakersNeeded:          e.SpeakersNeeded,
		SpeakerTimeWindow:       e.SpeakerTimeWindow,
		OvernightNeeded:         e.OvernightNeeded,
		OvernightCapacity:       e.OvernightCapacity,
	}
}

// MissingFields returns the intake completeness labels for this request.
func (e *EventRequest) MissingFields() []string {
	return intake.MissingFields(e.IntakeRecord())
}
