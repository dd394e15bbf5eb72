package domain

import (
	"time"

	"github.com/google/uuid"
)

type Availability string

const (
	AvailabilityAvailable Availability = "available"
	AvailabilityBusy      Availability = "busy"
	AvailabilityUnknown   Availability = "unknown"
)

type Category string

const (
	CategoryDoctor    Category = "doctor"
	CategoryAmbulance Category = "ambulance"
	CategoryHospital  Category = "hospital"
	CategoryLab       Category = "lab"
	CategoryDonor     Category = "donor"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryDoctor, CategoryAmbulance, CategoryHospital, CategoryLab, CategoryDonor:
		return true
	}
	return false
}

// Candidate is a responder/resource eligible for proximity matching:
// a doctor, ambulance, hospital, lab or blood donor.
type Candidate struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	Location     GeoPoint          `json:"location"`
	Availability Availability      `json:"availability"`
	Category     Category          `json:"category"`
	Rating       float64           `json:"rating"` // 0 when the category carries no quality signal
	Attributes   map[string]string `json:"attributes,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}
