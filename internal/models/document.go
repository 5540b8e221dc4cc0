package models

import "time"

// Document type labels carried inside synthesized documents
const (
	DocumentTypeBillOfLading = "Bill of Lading"
	DocumentTypeRoadManifest = "Road Manifest"
)

// ParcelDocuments bundles the documents derived from a parcel at creation time
type ParcelDocuments struct {
	BillOfLading BillOfLading `json:"billOfLading"`
	RoadManifest RoadManifest `json:"roadManifest"`
}

// CarrierDetails identifies the driver and vehicle on a Bill of Lading
type CarrierDetails struct {
	DriverID        string `json:"driverId"`
	DriverName      string `json:"driverName,omitempty"`
	VehicleNumber   string `json:"vehicleNumber,omitempty"`
	VINNumber       string `json:"vinNumber,omitempty"`
	DriverNIN       string `json:"driverNIN,omitempty"`
	InsuranceNumber string `json:"insuranceNumber,omitempty"`
}

// GoodsLine is one Bill of Lading row
type GoodsLine struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Weight      string `json:"weight"`
	Value       string `json:"value"`
	Category    string `json:"category"`
	CubicVolume string `json:"cubicVolume,omitempty"`
}

// Signature records a party's acceptance of the Bill of Lading
type Signature struct {
	Signed    bool      `json:"signed"`
	Timestamp time.Time `json:"timestamp"`
}

// Signatures holds the shipper and carrier signatures
type Signatures struct {
	Shipper Signature `json:"shipper"`
	Carrier Signature `json:"carrier"`
}

// BillOfLading is the contract-of-carriage document
type BillOfLading struct {
	DocumentType       string         `json:"documentType"`
	ReferenceNumber    string         `json:"referenceNumber"`
	IssueDate          time.Time      `json:"issueDate"`
	Shipper            Party          `json:"shipper"`
	Consignee          Party          `json:"consignee"`
	Carrier            CarrierDetails `json:"carrier"`
	Goods              []GoodsLine    `json:"goods"`
	TotalValue         string         `json:"totalValue"`
	TotalWeight        string         `json:"totalWeight"`
	TotalVolume        string         `json:"totalVolume,omitempty"`
	TermsAndConditions []string       `json:"termsAndConditions"`
	Signatures         Signatures     `json:"signatures"`
}

// ManifestDriver identifies the driver and vehicle on a Road Manifest
type ManifestDriver struct {
	ID              string `json:"id"`
	Name            string `json:"name,omitempty"`
	VehicleNumber   string `json:"vehicleNumber,omitempty"`
	VINNumber       string `json:"vinNumber,omitempty"`
	DriverNIN       string `json:"driverNIN,omitempty"`
	InsuranceNumber string `json:"insuranceNumber,omitempty"`
	DriverPhoto     string `json:"driverPhoto,omitempty"`
	LicensePhoto    string `json:"licensePhoto,omitempty"`
}

// Route is the origin and destination of a trip
type Route struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// CargoLine is one Road Manifest row
type CargoLine struct {
	ItemName       string        `json:"itemName"`
	Category       string        `json:"category"`
	Weight         string        `json:"weight"`
	Value          string        `json:"value"`
	CubicVolume    string        `json:"cubicVolume,omitempty"`
	Photo          string        `json:"photo,omitempty"`
	FormM          string        `json:"formM,omitempty"`
	NXPNumber      string        `json:"nxpNumber,omitempty"`
	HSCode         string        `json:"hsCode,omitempty"`
	OtherDocuments []AuxDocument `json:"otherDocuments,omitempty"`
}

// Contact is a name and phone pair
type Contact struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// RoadManifest is the transport document presented at checkpoints
type RoadManifest struct {
	DocumentType    string         `json:"documentType"`
	ReferenceNumber string         `json:"referenceNumber"`
	IssueDate       time.Time      `json:"issueDate"`
	Driver          ManifestDriver `json:"driver"`
	Route           Route          `json:"route"`
	Cargo           []CargoLine    `json:"cargo"`
	Shipper         Contact        `json:"shipper"`
	Consignee       Contact        `json:"consignee"`
	TotalItems      int            `json:"totalItems"`
	TotalValue      string         `json:"totalValue"`
	TotalWeight     string         `json:"totalWeight"`
	TotalVolume     string         `json:"totalVolume,omitempty"`
	Status          ParcelStatus   `json:"status"`
	ComplianceNotes []string       `json:"complianceNotes"`
}

// DocumentKind identifies stored document blobs
type DocumentKind string

const (
	DocumentKindBillOfLading DocumentKind = "bill_of_lading"
	DocumentKindRoadManifest DocumentKind = "road_manifest"
	DocumentKindOther        DocumentKind = "other"
)

// ParseDocumentKind accepts the stored names plus the short route forms "bol" and "manifest".
func ParseDocumentKind(s string) (DocumentKind, bool) {
	switch s {
	case string(DocumentKindBillOfLading), "bol":
		return DocumentKindBillOfLading, true
	case string(DocumentKindRoadManifest), "manifest":
		return DocumentKindRoadManifest, true
	case string(DocumentKindOther):
		return DocumentKindOther, true
	}
	return "", false
}

// DocumentBlob is a rendered document file kept by the remote backend
type DocumentBlob struct {
	ID           string       `json:"id"`
	ParcelID     string       `json:"parcelId"`
	DocumentType DocumentKind `json:"documentType"`
	FileName     string       `json:"fileName"`
	FileData     string       `json:"fileData"` // base64
	FileType     string       `json:"fileType"` // MIME
	CreatedAt    time.Time    `json:"createdAt"`
}

// QRCodeRecord links a reference number to the payload encoded in its QR code
type QRCodeRecord struct {
	ID              string    `json:"id"`
	ParcelID        string    `json:"parcelId"`
	ReferenceNumber string    `json:"referenceNumber"`
	QRData          string    `json:"qrData"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Stats summarizes record counts
type Stats struct {
	Drivers   int64 `json:"totalDrivers"`
	Officials int64 `json:"totalOfficials"`
	Parcels   int64 `json:"totalParcels"`
	Documents int64 `json:"totalDocuments"`
	QRCodes   int64 `json:"totalQRCodes"`
}
