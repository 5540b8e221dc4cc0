package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xelth-com/goodstrack/internal/sync"
)

// SyncHandler handles synchronization requests
type SyncHandler struct {
	syncEngine *sync.Engine
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(syncEngine *sync.Engine) *SyncHandler {
	return &SyncHandler{syncEngine: syncEngine}
}

// RegisterRoutes registers sync routes
func (sh *SyncHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/sync/status", sh.GetSyncStatus).Methods("GET")
	r.HandleFunc("/sync/push", sh.PushUpdates).Methods("POST")
	r.HandleFunc("/sync/pull", sh.PullUpdates).Methods("POST")
}

// GetSyncStatus returns the engine state and the last pass results
func (sh *SyncHandler) GetSyncStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sh.syncEngine.Status())
}

// PushUpdates uploads every local record now
func (sh *SyncHandler) PushUpdates(w http.ResponseWriter, r *http.Request) {
	result, err := sh.syncEngine.PushAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// PullUpdates refreshes the local store from the remote backend
func (sh *SyncHandler) PullUpdates(w http.ResponseWriter, r *http.Request) {
	result, err := sh.syncEngine.PullAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
