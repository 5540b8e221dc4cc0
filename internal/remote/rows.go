package remote

import (
	"time"

	"github.com/xelth-com/goodstrack/internal/models"
	"gorm.io/datatypes"
)

// UserRow is the relational shape of a user
// Standardized: Go (PascalCase) -> DB (snake_case)
type UserRow struct {
	ID                     string    `gorm:"primaryKey;column:id;type:text"`
	Phone                  string    `gorm:"column:phone;uniqueIndex;not null"`
	FullName               string    `gorm:"column:full_name"`
	Role                   string    `gorm:"column:role;index;not null"`
	CompanyName            string    `gorm:"column:company_name"`
	VehicleNumber          string    `gorm:"column:vehicle_number"`
	VINNumber              string    `gorm:"column:vin_number"`
	VehicleDescription     string    `gorm:"column:vehicle_description"`
	VehicleInsuranceNumber string    `gorm:"column:vehicle_insurance_number"`
	DriverNIN              string    `gorm:"column:driver_nin"`
	DriverPhoto            string    `gorm:"column:driver_photo"`
	LicensePhoto           string    `gorm:"column:license_photo"`
	CreatedAt              time.Time `gorm:"column:created_at"`
	UpdatedAt              time.Time `gorm:"column:updated_at"`
}

func (UserRow) TableName() string {
	return "users"
}

// ParcelRow is the relational shape of a parcel; parties are flattened, items and documents are JSON
type ParcelRow struct {
	ID              string                                      `gorm:"primaryKey;column:id;type:text"`
	ReferenceNumber string                                      `gorm:"column:reference_number;uniqueIndex;not null"`
	DriverID        string                                      `gorm:"column:driver_id;index"`
	SenderName      string                                      `gorm:"column:sender_name"`
	SenderAddress   string                                      `gorm:"column:sender_address"`
	SenderContact   string                                      `gorm:"column:sender_contact"`
	ReceiverName    string                                      `gorm:"column:receiver_name"`
	ReceiverContact string                                      `gorm:"column:receiver_contact"`
	ReceiverAddress string                                      `gorm:"column:receiver_address"`
	Status          string                                      `gorm:"column:status;index;not null"`
	Items           datatypes.JSONType[[]models.Item]           `gorm:"column:items;type:jsonb;not null"`
	Documents       datatypes.JSONType[*models.ParcelDocuments] `gorm:"column:documents;type:jsonb;not null"`
	CreatedAt       time.Time                                   `gorm:"column:created_at;index"`
	UpdatedAt       time.Time                                   `gorm:"column:updated_at"`
}

func (ParcelRow) TableName() string {
	return "parcels"
}

// QRCodeRow links a parcel reference to its QR payload
type QRCodeRow struct {
	ID              string    `gorm:"primaryKey;column:id;type:text"`
	ParcelID        string    `gorm:"column:parcel_id;index"`
	ReferenceNumber string    `gorm:"column:reference_number;index"`
	QRData          string    `gorm:"column:qr_data"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (QRCodeRow) TableName() string {
	return "qr_codes"
}

// DocumentRow stores a rendered document file as base64
type DocumentRow struct {
	ID           string    `gorm:"primaryKey;column:id;type:text"`
	ParcelID     string    `gorm:"column:parcel_id;index"`
	DocumentType string    `gorm:"column:document_type;not null"`
	FileName     string    `gorm:"column:file_name"`
	FileData     string    `gorm:"column:file_data;type:text"`
	FileType     string    `gorm:"column:file_type"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (DocumentRow) TableName() string {
	return "documents"
}

// AllRows lists every table the adapter owns, for migrations
func AllRows() []interface{} {
	return []interface{}{&UserRow{}, &ParcelRow{}, &QRCodeRow{}, &DocumentRow{}}
}

func ToUserRow(u models.User) UserRow {
	return UserRow{
		ID:                     u.ID,
		Phone:                  u.Phone,
		FullName:               u.DisplayName,
		Role:                   string(u.Role),
		CompanyName:            u.CompanyName,
		VehicleNumber:          u.VehicleNumber,
		VINNumber:              u.VINNumber,
		VehicleDescription:     u.VehicleDescription,
		VehicleInsuranceNumber: u.InsuranceNumber,
		DriverNIN:              u.NationalID,
		DriverPhoto:            u.DriverPhoto,
		LicensePhoto:           u.LicensePhoto,
		CreatedAt:              u.CreatedAt,
		UpdatedAt:              u.UpdatedAt,
	}
}

func FromUserRow(r UserRow) models.User {
	return models.User{
		ID:                 r.ID,
		Phone:              r.Phone,
		DisplayName:        r.FullName,
		Role:               models.Role(r.Role),
		CompanyName:        r.CompanyName,
		VehicleNumber:      r.VehicleNumber,
		VINNumber:          r.VINNumber,
		VehicleDescription: r.VehicleDescription,
		InsuranceNumber:    r.VehicleInsuranceNumber,
		NationalID:         r.DriverNIN,
		DriverPhoto:        r.DriverPhoto,
		LicensePhoto:       r.LicensePhoto,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func ToParcelRow(p models.Parcel) ParcelRow {
	items := p.Items
	if items == nil {
		items = []models.Item{}
	}
	return ParcelRow{
		ID:              p.ID,
		ReferenceNumber: p.ReferenceNumber,
		DriverID:        p.DriverID,
		SenderName:      p.Sender.Name,
		SenderAddress:   p.Sender.Address,
		SenderContact:   p.Sender.Contact,
		ReceiverName:    p.Receiver.Name,
		ReceiverContact: p.Receiver.Contact,
		ReceiverAddress: p.Receiver.Address,
		Status:          string(p.Status),
		Items:           datatypes.NewJSONType(items),
		Documents:       datatypes.NewJSONType(p.Documents),
		CreatedAt:       p.CreatedAt,
	}
}

func FromParcelRow(r ParcelRow) models.Parcel {
	return models.Parcel{
		ID:              r.ID,
		ReferenceNumber: r.ReferenceNumber,
		DriverID:        r.DriverID,
		Sender:          models.Party{Name: r.SenderName, Address: r.SenderAddress, Contact: r.SenderContact},
		Receiver:        models.Party{Name: r.ReceiverName, Address: r.ReceiverAddress, Contact: r.ReceiverContact},
		Items:           r.Items.Data(),
		Status:          models.ParcelStatus(r.Status),
		CreatedAt:       r.CreatedAt,
		Documents:       r.Documents.Data(),
	}
}

func toQRCodeRow(q models.QRCodeRecord) QRCodeRow {
	return QRCodeRow{
		ID:              q.ID,
		ParcelID:        q.ParcelID,
		ReferenceNumber: q.ReferenceNumber,
		QRData:          q.QRData,
		CreatedAt:       q.CreatedAt,
	}
}

func fromQRCodeRow(r QRCodeRow) models.QRCodeRecord {
	return models.QRCodeRecord{
		ID:              r.ID,
		ParcelID:        r.ParcelID,
		ReferenceNumber: r.ReferenceNumber,
		QRData:          r.QRData,
		CreatedAt:       r.CreatedAt,
	}
}

func toDocumentRow(d models.DocumentBlob) DocumentRow {
	return DocumentRow{
		ID:           d.ID,
		ParcelID:     d.ParcelID,
		DocumentType: string(d.DocumentType),
		FileName:     d.FileName,
		FileData:     d.FileData,
		FileType:     d.FileType,
		CreatedAt:    d.CreatedAt,
	}
}

func fromDocumentRow(r DocumentRow) models.DocumentBlob {
	return models.DocumentBlob{
		ID:           r.ID,
		ParcelID:     r.ParcelID,
		DocumentType: models.DocumentKind(r.DocumentType),
		FileName:     r.FileName,
		FileData:     r.FileData,
		FileType:     r.FileType,
		CreatedAt:    r.CreatedAt,
	}
}
