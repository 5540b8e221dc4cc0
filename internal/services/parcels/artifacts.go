package parcels

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/xelth-com/goodstrack/internal/models"
	"github.com/xelth-com/goodstrack/internal/services/documents"
	"github.com/xelth-com/goodstrack/internal/services/printer"
	"github.com/xelth-com/goodstrack/internal/utils"
	"go.uber.org/zap"
)

// QRPayload is the JSON encoded in the stored QR record
type QRPayload struct {
	ReferenceNumber string              `json:"referenceNumber"`
	ParcelID        string              `json:"parcelId"`
	DriverID        string              `json:"driverId"`
	Status          models.ParcelStatus `json:"status"`
}

// PublishResult reports which artifacts reached the remote backend
type PublishResult struct {
	Reference string   `json:"referenceNumber"`
	Skipped   bool     `json:"skipped"`
	QRCode    bool     `json:"qrCode"`
	Documents []string `json:"documents"`
	Failed    []string `json:"failed,omitempty"`
}

// QRCode renders the parcel's reference number as a PNG.
// The scanner side resolves the reference through GetParcelByReference.
func (s *Service) QRCode(ctx context.Context, ref string, size int) ([]byte, error) {
	p, err := s.GetParcelByReference(ctx, ref)
	if err != nil {
		return nil, err
	}
	return printer.QRCodePNG(p.ReferenceNumber, size)
}

// RenderDocument renders one of the parcel's documents as a PDF
func (s *Service) RenderDocument(ctx context.Context, ref string, kind models.DocumentKind) ([]byte, error) {
	p, err := s.GetParcelByReference(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, *p, kind)
}

func (s *Service) render(ctx context.Context, p models.Parcel, kind models.DocumentKind) ([]byte, error) {
	docs := s.documentsOf(ctx, p)
	switch kind {
	case models.DocumentKindBillOfLading:
		return printer.RenderBillOfLading(docs.BillOfLading)
	case models.DocumentKindRoadManifest:
		return printer.RenderRoadManifest(docs.RoadManifest)
	}
	return nil, fmt.Errorf("%w: no renderer for document kind %q", models.ErrInvalidInput, kind)
}

// documentsOf returns the embedded documents, synthesizing them for records that carry none
func (s *Service) documentsOf(ctx context.Context, p models.Parcel) models.ParcelDocuments {
	if p.Documents != nil {
		return *p.Documents
	}
	s.logger.Debug("Parcel has no embedded documents, synthesizing", zap.String("reference", p.ReferenceNumber))
	return documents.Synthesize(p, s.resolveCarrier(ctx, p.DriverID, models.CarrierProfile{}))
}

// PublishArtifacts stores the QR record and both rendered documents in the
// remote backend. It is skipped when the remote is not configured; individual
// failures are reported in the result, not returned.
func (s *Service) PublishArtifacts(ctx context.Context, ref string) (*PublishResult, error) {
	p, err := s.GetParcelByReference(ctx, ref)
	if err != nil {
		return nil, err
	}
	result := &PublishResult{Reference: p.ReferenceNumber, Documents: []string{}}
	if !s.remote.Configured() {
		result.Skipped = true
		return result, nil
	}

	payload, err := json.Marshal(QRPayload{
		ReferenceNumber: p.ReferenceNumber,
		ParcelID:        p.ID,
		DriverID:        p.DriverID,
		Status:          p.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR payload: %w", err)
	}
	qr := s.remote.SaveQRCode(ctx, models.QRCodeRecord{
		ID:              utils.NewRecordID(),
		ParcelID:        p.ID,
		ReferenceNumber: p.ReferenceNumber,
		QRData:          string(payload),
		CreatedAt:       s.now().UTC(),
	})
	result.QRCode = qr.OK()
	if !qr.OK() {
		result.Failed = append(result.Failed, "qr_code")
	}

	for _, kind := range []models.DocumentKind{models.DocumentKindBillOfLading, models.DocumentKindRoadManifest} {
		pdf, err := s.render(ctx, *p, kind)
		if err != nil {
			s.logger.Error("❌ Failed to render document", zap.String("reference", p.ReferenceNumber), zap.String("kind", string(kind)), zap.Error(err))
			result.Failed = append(result.Failed, string(kind))
			continue
		}
		res := s.remote.SaveDocument(ctx, models.DocumentBlob{
			ID:           utils.NewRecordID(),
			ParcelID:     p.ID,
			DocumentType: kind,
			FileName:     fmt.Sprintf("%s_%s.pdf", p.ReferenceNumber, kind),
			FileData:     base64.StdEncoding.EncodeToString(pdf),
			FileType:     "application/pdf",
			CreatedAt:    s.now().UTC(),
		})
		if !res.OK() {
			result.Failed = append(result.Failed, string(kind))
			continue
		}
		result.Documents = append(result.Documents, string(kind))
	}

	s.logger.Info("📤 Parcel artifacts published",
		zap.String("reference", p.ReferenceNumber),
		zap.Bool("qr_code", result.QRCode),
		zap.Strings("documents", result.Documents),
		zap.Strings("failed", result.Failed))
	return result, nil
}

// StoredDocuments lists the document files published for a parcel, newest first.
// It returns an empty list when the remote backend is unavailable.
func (s *Service) StoredDocuments(ctx context.Context, ref string) ([]models.DocumentBlob, error) {
	p, err := s.GetParcelByReference(ctx, ref)
	if err != nil {
		return nil, err
	}
	if res := s.remote.ListDocumentsByParcel(ctx, p.ID); res.OK() {
		return res.Value, nil
	}
	return []models.DocumentBlob{}, nil
}

// LabelSheet renders a printable sheet with one QR label per reference number
func (s *Service) LabelSheet(ctx context.Context, refs []string, cfg printer.LabelSheetConfig) ([]byte, error) {
	if len(refs) == 0 {
		return nil, fmt.Errorf("%w: at least one reference is required", models.ErrInvalidInput)
	}
	labels := make([]printer.Label, 0, len(refs))
	for _, ref := range refs {
		p, err := s.GetParcelByReference(ctx, ref)
		if err != nil {
			return nil, err
		}
		labels = append(labels, printer.Label{
			ReferenceNumber: p.ReferenceNumber,
			Caption:         p.Receiver.Name + ", " + p.Receiver.Address,
		})
	}
	return printer.GenerateLabelsPDF(labels, cfg)
}
