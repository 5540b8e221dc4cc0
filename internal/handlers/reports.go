package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/xelth-com/goodstrack/internal/services/reports"
)

// driverReport returns the driver's parcel history, filtered by ?q=
func (r *Router) driverReport(w http.ResponseWriter, req *http.Request) {
	report, err := r.reports.DriverReport(req.Context(), mux.Vars(req)["id"], req.URL.Query().Get("q"))
	if err != nil {
		r.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// driverReportXLSX exports the same report as a spreadsheet
func (r *Router) driverReportXLSX(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]
	report, err := r.reports.DriverReport(req.Context(), id, req.URL.Query().Get("q"))
	if err != nil {
		r.respondServiceError(w, err)
		return
	}

	data, err := reports.ExportXLSX(report)
	if err != nil {
		r.respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	respondFile(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		fmt.Sprintf("parcels_%s.xlsx", id), data)
}
