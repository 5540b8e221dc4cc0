package models

import "time"

// ParcelStatus is the lifecycle state of a parcel.
// Transitions are monotonic: registered -> verified -> delivered.
type ParcelStatus string

const (
	StatusRegistered ParcelStatus = "registered"
	StatusVerified   ParcelStatus = "verified"
	StatusDelivered  ParcelStatus = "delivered"
)

// Rank orders statuses along the lifecycle; unknown statuses rank 0.
func (s ParcelStatus) Rank() int {
	switch s {
	case StatusRegistered:
		return 1
	case StatusVerified:
		return 2
	case StatusDelivered:
		return 3
	}
	return 0
}

// Valid reports whether s is one of the known statuses.
func (s ParcelStatus) Valid() bool {
	return s.Rank() > 0
}

// CanTransitionTo reports whether moving from s to next keeps the lifecycle monotonic.
func (s ParcelStatus) CanTransitionTo(next ParcelStatus) bool {
	return next.Valid() && next.Rank() > s.Rank()
}

// Party is a shipper or consignee
type Party struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	Contact string `json:"contact" validate:"required"`
}

// AuxDocumentType tells how an attached document payload should be rendered
type AuxDocumentType string

const (
	AuxDocumentImage AuxDocumentType = "image"
	AuxDocumentPDF   AuxDocumentType = "pdf"
)

// AuxDocument is a supporting document attached to an item (data URL or base64)
type AuxDocument struct {
	Name string          `json:"name"`
	Data string          `json:"data"`
	Type AuxDocumentType `json:"type" validate:"omitempty,oneof=image pdf"`
}

// Item is one line of goods inside a parcel.
// Weight is serialized as "size" to stay compatible with records written by the mobile clients.
type Item struct {
	Name           string        `json:"name" validate:"required"`
	Category       string        `json:"category"`
	Value          string        `json:"value"`
	Weight         string        `json:"size"`
	CubicVolume    string        `json:"cubicVolume,omitempty"`
	Photo          string        `json:"photo,omitempty"`
	FormM          string        `json:"formM,omitempty"`
	NXPNumber      string        `json:"nxpNumber,omitempty"`
	HSCode         string        `json:"hsCode,omitempty"`
	OtherDocuments []AuxDocument `json:"otherDocuments,omitempty" validate:"dive"`
}

// Parcel is a registered shipment with its synthesized documents
type Parcel struct {
	ID              string           `json:"id"`
	ReferenceNumber string           `json:"referenceNumber"`
	DriverID        string           `json:"driverId"`
	Sender          Party            `json:"sender"`
	Receiver        Party            `json:"receiver"`
	Items           []Item           `json:"items"`
	Status          ParcelStatus     `json:"status"`
	CreatedAt       time.Time        `json:"timestamp"`
	Documents       *ParcelDocuments `json:"documents,omitempty"`
}
