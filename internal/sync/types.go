package sync

import (
	"context"
	"time"

	"github.com/xelth-com/goodstrack/internal/models"
	"github.com/xelth-com/goodstrack/internal/remote"
)

// Direction of a sync pass
type Direction string

const (
	DirectionPush Direction = "push"
	DirectionPull Direction = "pull"
)

// EntityType names a synchronized collection
type EntityType string

const (
	EntityTypeUser   EntityType = "users"
	EntityTypeParcel EntityType = "parcels"
)

// Remote is the subset of the remote adapter the reconciler drives
type Remote interface {
	Configured() bool
	UpsertUser(ctx context.Context, u models.User) remote.Result[models.User]
	UpsertParcel(ctx context.Context, p models.Parcel) remote.Result[models.Parcel]
	ListUsers(ctx context.Context) remote.Result[[]models.User]
	ListParcels(ctx context.Context) remote.Result[[]models.Parcel]
}

// Local is the subset of the local store the reconciler reads and replaces
type Local interface {
	Users(ctx context.Context) []models.User
	Parcels(ctx context.Context) []models.Parcel
	SaveUsers(ctx context.Context, users []models.User)
	SaveParcels(ctx context.Context, parcels []models.Parcel)
}

// EntityResult reports one collection within a sync pass
type EntityResult struct {
	Entity   EntityType `json:"entity"`
	Synced   int        `json:"synced"`
	Failed   int        `json:"failed"`
	Replaced bool       `json:"replaced,omitempty"` // pull only
	Outcome  string     `json:"outcome,omitempty"`  // pull only
}

// SyncResult represents the result of a sync operation
type SyncResult struct {
	Direction Direction      `json:"direction"`
	Success   bool           `json:"success"`
	Skipped   bool           `json:"skipped"`
	Entities  []EntityResult `json:"entities"`
	Errors    []string       `json:"errors,omitempty"`
	Duration  time.Duration  `json:"duration"`
	Timestamp time.Time      `json:"timestamp"`
}

// Synced totals the records written across entities
func (r *SyncResult) Synced() int {
	n := 0
	for _, e := range r.Entities {
		n += e.Synced
	}
	return n
}

// Failed totals the records that could not be written
func (r *SyncResult) Failed() int {
	n := 0
	for _, e := range r.Entities {
		n += e.Failed
	}
	return n
}

// Status is a snapshot of the engine state
type Status struct {
	Running          bool          `json:"running"`
	RemoteConfigured bool          `json:"remoteConfigured"`
	Interval         time.Duration `json:"interval"`
	LastPush         *SyncResult   `json:"lastPush,omitempty"`
	LastPull         *SyncResult   `json:"lastPull,omitempty"`
}
