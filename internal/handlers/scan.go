package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/xelth-com/goodstrack/internal/models"
	"github.com/xelth-com/goodstrack/internal/services/parcels"
)

// ScanRequest represents the payload from a scanner
type ScanRequest struct {
	Barcode string `json:"barcode"`
}

// ScanResponse standardizes the scan result
type ScanResponse struct {
	Type    string      `json:"type"`           // parcel
	Message string      `json:"message"`        // Human readable status
	Action  string      `json:"action"`         // found, not_found
	Data    interface{} `json:"data,omitempty"` // The resulting object
}

// handleScan resolves a scanned label. The barcode is either a bare
// reference number or the JSON payload of a published QR record.
func (r *Router) handleScan(w http.ResponseWriter, req *http.Request) {
	var body ScanRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ref := scannedReference(body.Barcode)
	if ref == "" {
		respondError(w, http.StatusBadRequest, "Empty barcode")
		return
	}

	p, err := r.parcels.GetParcelByReference(req.Context(), ref)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			respondJSON(w, http.StatusOK, ScanResponse{
				Type:    "parcel",
				Message: "No parcel with reference " + ref,
				Action:  "not_found",
			})
			return
		}
		r.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ScanResponse{
		Type:    "parcel",
		Message: "Parcel " + p.ReferenceNumber + " is " + string(p.Status),
		Action:  "found",
		Data:    p,
	})
}

func scannedReference(barcode string) string {
	barcode = strings.TrimSpace(barcode)
	if strings.HasPrefix(barcode, "{") {
		var payload parcels.QRPayload
		if err := json.Unmarshal([]byte(barcode), &payload); err == nil {
			return strings.TrimSpace(payload.ReferenceNumber)
		}
	}
	return barcode
}
