package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/xelth-com/goodstrack/internal/models"
	"github.com/xelth-com/goodstrack/internal/services/parcels"
)

// StatusRequest is the body of a status update
type StatusRequest struct {
	Status models.ParcelStatus `json:"status"`
}

func (r *Router) createParcel(w http.ResponseWriter, req *http.Request) {
	var body parcels.CreateParcelRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	p, err := r.parcels.CreateParcel(req.Context(), body)
	if err != nil {
		r.respondServiceError(w, err)
		return
	}
	// pick up the new record on the next loop pass instead of waiting for the ticker
	r.sync.TriggerPush()

	respondJSON(w, http.StatusCreated, p)
}

func (r *Router) listParcels(w http.ResponseWriter, req *http.Request) {
	list, err := r.parcels.ListParcels(req.Context())
	if err != nil {
		r.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (r *Router) getParcel(w http.ResponseWriter, req *http.Request) {
	p, err := r.parcels.GetParcelByReference(req.Context(), mux.Vars(req)["ref"])
	if err != nil {
		r.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (r *Router) getParcelByID(w http.ResponseWriter, req *http.Request) {
	p, err := r.parcels.GetParcelByID(req.Context(), mux.Vars(req)["id"])
	if err != nil {
		r.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (r *Router) acknowledgeParcel(w http.ResponseWriter, req *http.Request) {
	p, err := r.parcels.AcknowledgeParcel(req.Context(), mux.Vars(req)["ref"])
	if err != nil {
		r.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (r *Router) updateParcelStatus(w http.ResponseWriter, req *http.Request) {
	var body StatusRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	p, err := r.parcels.UpdateParcelStatus(req.Context(), mux.Vars(req)["ref"], body.Status)
	if err != nil {
		r.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (r *Router) parcelQRCode(w http.ResponseWriter, req *http.Request) {
	size, _ := strconv.Atoi(req.URL.Query().Get("size"))
	png, err := r.parcels.QRCode(req.Context(), mux.Vars(req)["ref"], size)
	if err != nil {
		r.respondServiceError(w, err)
		return
	}
	respondFile(w, "image/png", "", png)
}

func (r *Router) parcelDocument(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	kind, ok := models.ParseDocumentKind(vars["kind"])
	if !ok {
		respondError(w, http.StatusNotFound, "Unknown document")
		return
	}

	pdf, err := r.parcels.RenderDocument(req.Context(), vars["ref"], kind)
	if err != nil {
		r.respondServiceError(w, err)
		return
	}
	respondFile(w, "application/pdf", fmt.Sprintf("%s_%s.pdf", vars["ref"], kind), pdf)
}

// listStoredDocuments returns the document files published for a parcel
func (r *Router) listStoredDocuments(w http.ResponseWriter, req *http.Request) {
	docs, err := r.parcels.StoredDocuments(req.Context(), mux.Vars(req)["ref"])
	if err != nil {
		r.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, docs)
}

func (r *Router) publishArtifacts(w http.ResponseWriter, req *http.Request) {
	res, err := r.parcels.PublishArtifacts(req.Context(), mux.Vars(req)["ref"])
	if err != nil {
		r.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (r *Router) driverParcels(w http.ResponseWriter, req *http.Request) {
	list, err := r.parcels.GetParcelsByDriver(req.Context(), mux.Vars(req)["id"])
	if err != nil {
		r.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}
