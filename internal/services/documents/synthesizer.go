// Package documents derives the Bill of Lading and Road Manifest from a parcel.
// Synthesis is pure: the same parcel and carrier always produce the same documents.
package documents

import (
	"fmt"

	"github.com/xelth-com/goodstrack/internal/models"
	"github.com/xelth-com/goodstrack/internal/utils"
)

// CurrencySymbol prefixes every monetary amount on the documents
const CurrencySymbol = "₦"

// TermsAndConditions are printed on every Bill of Lading
var TermsAndConditions = []string{
	"The carrier shall not be liable for any loss or damage unless caused by negligence.",
	"All goods are carried at owner's risk unless otherwise specified.",
	"The consignee must inspect goods upon delivery and report any discrepancies immediately.",
	"Payment terms: COD (Cash on Delivery) unless prior arrangements have been made.",
	"This Bill of Lading is subject to the laws and regulations of Nigeria.",
	"The carrier reserves the right to refuse delivery if proper identification is not provided.",
}

// ComplianceNotes are printed on every Road Manifest
var ComplianceNotes = []string{
	"Driver must carry valid driver's license and vehicle registration.",
	"All cargo must be properly secured during transport.",
	"Driver must comply with all traffic regulations and road safety guidelines.",
	"Cargo must not be altered, opened, or tampered with during transit.",
	"Driver must report any incidents or accidents immediately.",
	"This manifest must be presented upon request by authorized officials.",
	"Delivery must be made only to the named consignee or authorized representative.",
}

// Totals are the aggregated amounts shared by both documents
type Totals struct {
	Value  string
	Weight string
	Volume string // empty when no item carries a volume
}

// ComputeTotals sums item values, weights and volumes
func ComputeTotals(items []models.Item) Totals {
	var value, weight, volume float64
	for _, item := range items {
		value += utils.ParseAmount(item.Value)
		weight += utils.ParseAmount(item.Weight)
		volume += utils.ParseAmount(item.CubicVolume)
	}

	t := Totals{
		Value:  fmt.Sprintf("%s%.2f", CurrencySymbol, value),
		Weight: fmt.Sprintf("%.2f Kg", weight),
	}
	if volume > 0 {
		t.Volume = fmt.Sprintf("%.2f m³", volume)
	}
	return t
}

// Synthesize builds both documents for the parcel. A nil carrier leaves the optional driver fields empty.
func Synthesize(p models.Parcel, carrier *models.CarrierProfile) models.ParcelDocuments {
	c := models.CarrierProfile{}
	if carrier != nil {
		c = *carrier
	}
	totals := ComputeTotals(p.Items)

	return models.ParcelDocuments{
		BillOfLading: billOfLading(p, c, totals),
		RoadManifest: roadManifest(p, c, totals),
	}
}

func billOfLading(p models.Parcel, c models.CarrierProfile, totals Totals) models.BillOfLading {
	goods := make([]models.GoodsLine, 0, len(p.Items))
	for _, item := range p.Items {
		goods = append(goods, models.GoodsLine{
			Description: item.Name,
			Quantity:    1,
			Weight:      item.Weight + " Kg",
			Value:       CurrencySymbol + item.Value,
			Category:    item.Category,
			CubicVolume: item.CubicVolume,
		})
	}

	return models.BillOfLading{
		DocumentType:    models.DocumentTypeBillOfLading,
		ReferenceNumber: p.ReferenceNumber,
		IssueDate:       p.CreatedAt,
		Shipper:         p.Sender,
		Consignee:       p.Receiver,
		Carrier: models.CarrierDetails{
			DriverID:        p.DriverID,
			DriverName:      c.Name,
			VehicleNumber:   c.VehicleNumber,
			VINNumber:       c.VINNumber,
			DriverNIN:       c.NationalID,
			InsuranceNumber: c.InsuranceNumber,
		},
		Goods:              goods,
		TotalValue:         totals.Value,
		TotalWeight:        totals.Weight,
		TotalVolume:        totals.Volume,
		TermsAndConditions: append([]string(nil), TermsAndConditions...),
		Signatures: models.Signatures{
			Shipper: models.Signature{Signed: true, Timestamp: p.CreatedAt},
			Carrier: models.Signature{Signed: true, Timestamp: p.CreatedAt},
		},
	}
}

func roadManifest(p models.Parcel, c models.CarrierProfile, totals Totals) models.RoadManifest {
	cargo := make([]models.CargoLine, 0, len(p.Items))
	for _, item := range p.Items {
		cargo = append(cargo, models.CargoLine{
			ItemName:       item.Name,
			Category:       item.Category,
			Weight:         item.Weight + " Kg",
			Value:          CurrencySymbol + item.Value,
			CubicVolume:    item.CubicVolume,
			Photo:          item.Photo,
			FormM:          item.FormM,
			NXPNumber:      item.NXPNumber,
			HSCode:         item.HSCode,
			OtherDocuments: append([]models.AuxDocument(nil), item.OtherDocuments...),
		})
	}

	return models.RoadManifest{
		DocumentType:    models.DocumentTypeRoadManifest,
		ReferenceNumber: p.ReferenceNumber,
		IssueDate:       p.CreatedAt,
		Driver: models.ManifestDriver{
			ID:              p.DriverID,
			Name:            c.Name,
			VehicleNumber:   c.VehicleNumber,
			VINNumber:       c.VINNumber,
			DriverNIN:       c.NationalID,
			InsuranceNumber: c.InsuranceNumber,
			DriverPhoto:     c.DriverPhoto,
			LicensePhoto:    c.LicensePhoto,
		},
		Route: models.Route{
			Origin:      p.Sender.Address,
			Destination: p.Receiver.Address,
		},
		Cargo:           cargo,
		Shipper:         models.Contact{Name: p.Sender.Name, Contact: p.Sender.Contact},
		Consignee:       models.Contact{Name: p.Receiver.Name, Contact: p.Receiver.Contact},
		TotalItems:      len(p.Items),
		TotalValue:      totals.Value,
		TotalWeight:     totals.Weight,
		TotalVolume:     totals.Volume,
		Status:          p.Status,
		ComplianceNotes: append([]string(nil), ComplianceNotes...),
	}
}
