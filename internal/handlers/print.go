package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/xelth-com/goodstrack/internal/services/printer"
)

// LabelRequest selects the parcels to print and the sheet layout.
// A zero sheet falls back to the default label stock.
type LabelRequest struct {
	References []string                 `json:"references"`
	Sheet      printer.LabelSheetConfig `json:"sheet"`
}

// generateLabels handles the PDF generation request
func (r *Router) generateLabels(w http.ResponseWriter, req *http.Request) {
	var body LabelRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	pdfBytes, err := r.parcels.LabelSheet(req.Context(), body.References, body.Sheet)
	if err != nil {
		r.respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	respondFile(w, "application/pdf", fmt.Sprintf("labels_%d.pdf", len(body.References)), pdfBytes)
}
