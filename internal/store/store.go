// Package store is the on-device record store. Every collection lives under a
// single key as a JSON array and is read and written whole. Storage failures are
// logged and absorbed: reads degrade to empty, writes are dropped.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"sync"

	"github.com/xelth-com/goodstrack/internal/models"
	"go.uber.org/zap"
)

// Collection names a stored key
type Collection string

const (
	CollectionUsers         Collection = "users"
	CollectionParcels       Collection = "parcels"
	CollectionParcelCounter Collection = "parcel_counter"
)

const driverProfilePrefix = "driver_profile_id_"

// Field names accepted by the Find helpers; they match the JSON field names.
const (
	FieldID              = "id"
	FieldReferenceNumber = "referenceNumber"
	FieldDriverID        = "driverId"
	FieldStatus          = "status"
	FieldPhone           = "phone"
	FieldRole            = "role"
)

// Store is the Local Store over a key-value backend
type Store struct {
	backend Backend
	prefix  string
	logger  *zap.Logger

	// mu serializes read-modify-write sequences on whole collections
	mu sync.Mutex
}

// New creates a store; keys are namespaced with prefix
func New(backend Backend, prefix string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{backend: backend, prefix: prefix, logger: logger.Named("local_store")}
}

// Close releases the backend
func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) key(name string) string {
	return s.prefix + name
}

// readKey decodes the value at key into out.
// It reports false when the key is absent, unreadable or corrupt.
func (s *Store) readKey(ctx context.Context, key string, out interface{}) bool {
	data, err := s.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			s.logger.Warn("⚠️ Local read failed", zap.String("key", key),
				zap.Error(fmt.Errorf("%w: %v", models.ErrStorageUnavailable, err)))
		}
		return false
	}
	// decode aside so a half-decoded value never reaches out
	tmp := reflect.New(reflect.TypeOf(out).Elem())
	if err := json.Unmarshal(data, tmp.Interface()); err != nil {
		s.logger.Warn("⚠️ Corrupt local value ignored", zap.String("key", key), zap.Error(err))
		return false
	}
	reflect.ValueOf(out).Elem().Set(tmp.Elem())
	return true
}

func (s *Store) writeKey(ctx context.Context, key string, value interface{}) bool {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("❌ Failed to encode local value", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := s.backend.Set(ctx, key, data); err != nil {
		s.logger.Error("❌ Local write failed", zap.String("key", key),
			zap.Error(fmt.Errorf("%w: %v", models.ErrStorageUnavailable, err)))
		return false
	}
	return true
}

// ReadAll decodes a whole collection into out, which must point to a slice.
// A never-written or unreadable collection leaves out untouched.
func (s *Store) ReadAll(ctx context.Context, c Collection, out interface{}) {
	s.readKey(ctx, s.key(string(c)), out)
}

// WriteAll replaces a whole collection
func (s *Store) WriteAll(ctx context.Context, c Collection, records interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeKey(ctx, s.key(string(c)), records)
}

// ==========================================
// Parcels
// ==========================================

// Parcels returns every stored parcel in stored order
func (s *Store) Parcels(ctx context.Context) []models.Parcel {
	var parcels []models.Parcel
	s.ReadAll(ctx, CollectionParcels, &parcels)
	return parcels
}

// SaveParcels replaces the parcel collection
func (s *Store) SaveParcels(ctx context.Context, parcels []models.Parcel) {
	if parcels == nil {
		parcels = []models.Parcel{}
	}
	s.WriteAll(ctx, CollectionParcels, parcels)
}

// UpsertParcel replaces the parcel with the same id or appends it.
// It reports whether the collection was persisted.
func (s *Store) UpsertParcel(ctx context.Context, p models.Parcel) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	parcels := s.Parcels(ctx)
	replaced := false
	for i := range parcels {
		if parcels[i].ID == p.ID {
			parcels[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		parcels = append(parcels, p)
	}
	return s.writeKey(ctx, s.key(string(CollectionParcels)), parcels)
}

// FindParcelBy returns the first parcel whose field equals value
func (s *Store) FindParcelBy(ctx context.Context, field, value string) (models.Parcel, bool) {
	for _, p := range s.Parcels(ctx) {
		if parcelField(p, field) == value {
			return p, true
		}
	}
	return models.Parcel{}, false
}

// FilterParcelsBy returns all parcels whose field equals value
func (s *Store) FilterParcelsBy(ctx context.Context, field, value string) []models.Parcel {
	var out []models.Parcel
	for _, p := range s.Parcels(ctx) {
		if parcelField(p, field) == value {
			out = append(out, p)
		}
	}
	return out
}

func parcelField(p models.Parcel, field string) string {
	switch field {
	case FieldID:
		return p.ID
	case FieldReferenceNumber:
		return p.ReferenceNumber
	case FieldDriverID:
		return p.DriverID
	case FieldStatus:
		return string(p.Status)
	}
	return ""
}

// ==========================================
// Users
// ==========================================

// Users returns every stored user
func (s *Store) Users(ctx context.Context) []models.User {
	var users []models.User
	s.ReadAll(ctx, CollectionUsers, &users)
	return users
}

// SaveUsers replaces the user collection
func (s *Store) SaveUsers(ctx context.Context, users []models.User) {
	if users == nil {
		users = []models.User{}
	}
	s.WriteAll(ctx, CollectionUsers, users)
}

// UpsertUser replaces the user with the same id or appends it
func (s *Store) UpsertUser(ctx context.Context, u models.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.Users(ctx)
	replaced := false
	for i := range users {
		if users[i].ID == u.ID {
			users[i] = u
			replaced = true
			break
		}
	}
	if !replaced {
		users = append(users, u)
	}
	return s.writeKey(ctx, s.key(string(CollectionUsers)), users)
}

// FindUserBy returns the first user whose field equals value
func (s *Store) FindUserBy(ctx context.Context, field, value string) (models.User, bool) {
	for _, u := range s.Users(ctx) {
		if userField(u, field) == value {
			return u, true
		}
	}
	return models.User{}, false
}

func userField(u models.User, field string) string {
	switch field {
	case FieldID:
		return u.ID
	case FieldPhone:
		return u.Phone
	case FieldRole:
		return string(u.Role)
	}
	return ""
}

// ==========================================
// Reference counter and driver profiles
// ==========================================

// ReadCounter returns the last issued reference sequence
func (s *Store) ReadCounter(ctx context.Context) (int64, bool) {
	var raw json.RawMessage
	if !s.readKey(ctx, s.key(string(CollectionParcelCounter)), &raw) {
		return 0, false
	}
	// Older clients stored the counter as a quoted string
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		v, err := strconv.ParseInt(str, 10, 64)
		return v, err == nil
	}
	var v int64
	if err := json.Unmarshal(raw, &v); err != nil {
		s.logger.Warn("⚠️ Corrupt parcel counter ignored", zap.Error(err))
		return 0, false
	}
	return v, true
}

// WriteCounter persists the last issued reference sequence
func (s *Store) WriteCounter(ctx context.Context, value int64) {
	s.writeKey(ctx, s.key(string(CollectionParcelCounter)), value)
}

// DriverProfile returns the carrier metadata saved for a driver
func (s *Store) DriverProfile(ctx context.Context, driverID string) (models.CarrierProfile, bool) {
	var profile models.CarrierProfile
	if driverID == "" || !s.readKey(ctx, s.key(driverProfilePrefix+driverID), &profile) {
		return models.CarrierProfile{}, false
	}
	return profile, true
}

// SaveDriverProfile stores the carrier metadata for a driver
func (s *Store) SaveDriverProfile(ctx context.Context, driverID string, profile models.CarrierProfile) {
	if driverID == "" {
		return
	}
	s.writeKey(ctx, s.key(driverProfilePrefix+driverID), profile)
}
