// Package intake evaluates event-request records for completeness.
//
// Each rule is an independent predicate over the record; a rule that finds
// its fields missing contributes a human-readable label and has no effect
// on later rules. The returned order is the evaluation order (contact info,
// sandwich info, address, then the conditional driver/speaker/overnight
// rules), which the frontend renders verbatim.
package intake

import "strings"

// Field labels reported by MissingFields. The frontend matches on these
// strings, so they are part of the contract.
const (
	LabelContactInfo         = "Contact Info"
	LabelSandwichInfo        = "Sandwich Info"
	LabelAddress             = "Address"
	LabelPickupTimeWindow    = "Pickup Time Window"
	LabelPickupContactPerson = "Pickup Contact Person"
	LabelSpeakerTimeWindow   = "Speaker Time Window"
	LabelOvernightCapacity   = "Overnight Host Capacity"
)

// Record is the completeness-relevant projection of an event request.
type Record struct {
	ContactName  string
	ContactEmail string
	ContactPhone string

	// SandwichCount is the number of sandwiches requested; SandwichTypes
	// lists the selected varieties. Both are required for sandwich info to
	// count as complete.
	SandwichCount int
	SandwichTypes []string

	Street     string
	City       string
	PostalCode string

	// DriversNeeded and VanDriverNeeded gate the pickup rules. When neither
	// is requested the organization delivers itself and no address or pickup
	// details are required.
	DriversNeeded   int
	VanDriverNeeded bool

	PickupTimeWindow        string
	PickupPersonResponsible string

	SpeakersNeeded    int
	SpeakerTimeWindow string

	OvernightNeeded   bool
	OvernightCapacity int
}

// needsPickup reports whether the request asks for any driving capability.
func (r Record) needsPickup() bool {
	return r.DriversNeeded > 0 || r.VanDriverNeeded
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// MissingFields returns the labels of every incomplete field group, in rule
// evaluation order. A record with nothing filled in simply accumulates more
// labels; there is no invalid input.
func MissingFields(r Record) []string {
	var missing []string

	// Contact info: a name plus at least one way to reach the requester.
	if blank(r.ContactName) || (blank(r.ContactEmail) && blank(r.ContactPhone)) {
		missing = append(missing, LabelContactInfo)
	}

	// Sandwich info: a positive count and at least one selected type.
	if r.SandwichCount <= 0 || len(r.SandwichTypes) == 0 {
		missing = append(missing, LabelSandwichInfo)
	}

	// Address: only required when a pickup is requested. Self-delivering
	// organizations are exempt.
	if r.needsPickup() && (blank(r.Street) || blank(r.City) || blank(r.PostalCode)) {
		missing = append(missing, LabelAddress)
	}

	if r.needsPickup() {
		if blank(r.PickupTimeWindow) {
			missing = append(missing, LabelPickupTimeWindow)
		}

		if blank(r.PickupPersonResponsible) {
			missing = append(missing, LabelPickupContactPerson)
		}
	}

	if r.SpeakersNeeded > 0 && blank(r.SpeakerTimeWindow) {
		missing = append(missing, LabelSpeakerTimeWindow)
	}

	if r.OvernightNeeded && r.OvernightCapacity <= 0 {
		missing = append(missing, LabelOvernightCapacity)
	}

	return missing
}

// IsComplete reports whether the record has no missing fields.
func IsComplete(r Record) bool {
	return len(MissingFields(r)) == 0
}
