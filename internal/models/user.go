package models

import "time"

// Role distinguishes drivers who register parcels from officials who verify them
type Role string

const (
	RoleDriver   Role = "driver"
	RoleOfficial Role = "official"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleDriver || r == RoleOfficial
}

// User is a driver or official account.
// Driver-only fields stay empty for officials.
type User struct {
	ID                 string    `json:"id"`
	Phone              string    `json:"phone"`
	DisplayName        string    `json:"fullName"`
	Role               Role      `json:"role"`
	CompanyName        string    `json:"companyName,omitempty"`
	VehicleNumber      string    `json:"vehicleNumber,omitempty"`
	VINNumber          string    `json:"vinNumber,omitempty"`
	VehicleDescription string    `json:"vehicleDescription,omitempty"`
	InsuranceNumber    string    `json:"vehicleInsuranceNumber,omitempty"`
	NationalID         string    `json:"driverNIN,omitempty"`
	DriverPhoto        string    `json:"driverPhoto,omitempty"`
	LicensePhoto       string    `json:"licensePhoto,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// CarrierProfile returns the carrier metadata held on the user record
func (u User) CarrierProfile() CarrierProfile {
	return CarrierProfile{
		Name:            u.DisplayName,
		CompanyName:     u.CompanyName,
		VehicleNumber:   u.VehicleNumber,
		VINNumber:       u.VINNumber,
		NationalID:      u.NationalID,
		InsuranceNumber: u.InsuranceNumber,
		DriverPhoto:     u.DriverPhoto,
		LicensePhoto:    u.LicensePhoto,
	}
}

// CarrierProfile is the driver/vehicle metadata printed on shipping documents
type CarrierProfile struct {
	Name            string `json:"fullName,omitempty"`
	CompanyName     string `json:"companyName,omitempty"`
	VehicleNumber   string `json:"vehicleNumber,omitempty"`
	VINNumber       string `json:"vinNumber,omitempty"`
	NationalID      string `json:"driverNIN,omitempty"`
	InsuranceNumber string `json:"vehicleInsuranceNumber,omitempty"`
	DriverPhoto     string `json:"driverPhoto,omitempty"`
	LicensePhoto    string `json:"licensePhoto,omitempty"`
}

// IsZero reports whether no field is set
func (c CarrierProfile) IsZero() bool {
	return c == CarrierProfile{}
}

// Merge returns c with every empty field filled from fallback
func (c CarrierProfile) Merge(fallback CarrierProfile) CarrierProfile {
	pick := func(a, b string) string {
		if a != "" {
			return a
		}
		return b
	}
	return CarrierProfile{
		Name:            pick(c.Name, fallback.Name),
		CompanyName:     pick(c.CompanyName, fallback.CompanyName),
		VehicleNumber:   pick(c.VehicleNumber, fallback.VehicleNumber),
		VINNumber:       pick(c.VINNumber, fallback.VINNumber),
		NationalID:      pick(c.NationalID, fallback.NationalID),
		InsuranceNumber: pick(c.InsuranceNumber, fallback.InsuranceNumber),
		DriverPhoto:     pick(c.DriverPhoto, fallback.DriverPhoto),
		LicensePhoto:    pick(c.LicensePhoto, fallback.LicensePhoto),
	}
}
