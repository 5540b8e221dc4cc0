package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xelth-com/goodstrack/internal/models"
	"go.uber.org/zap"
)

// failingBackend simulates an unavailable device store
type failingBackend struct{}

func (failingBackend) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("disk unavailable")
}

func (failingBackend) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("disk full")
}

func (failingBackend) Close() error { return nil }

func newParcel(id, ref, driver string) models.Parcel {
	return models.Parcel{
		ID:              id,
		ReferenceNumber: ref,
		DriverID:        driver,
		Sender:          models.Party{Name: "Ada", Address: "Lagos", Contact: "1"},
		Receiver:        models.Party{Name: "Sani", Address: "Kano", Contact: "2"},
		Items:           []models.Item{{Name: "Phone", Value: "200000", Weight: "5"}},
		Status:          models.StatusRegistered,
		CreatedAt:       time.Date(2025, 3, 7, 10, 30, 0, 0, time.UTC),
	}
}

func TestReadAllNeverWrittenIsEmpty(t *testing.T) {
	s := New(NewMemoryBackend(), "gts_", zap.NewNop())

	assert.Empty(t, s.Parcels(context.Background()))
	assert.Empty(t, s.Users(context.Background()))

	_, ok := s.ReadCounter(context.Background())
	assert.False(t, ok)
}

func TestWriteAllReplacesCollection(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryBackend(), "gts_", zap.NewNop())

	s.SaveParcels(ctx, []models.Parcel{newParcel("p1", "GTS-20250307-1001", "d1"), newParcel("p2", "GTS-20250307-1002", "d1")})
	s.SaveParcels(ctx, []models.Parcel{newParcel("p3", "GTS-20250307-1003", "d2")})

	parcels := s.Parcels(ctx)
	require.Len(t, parcels, 1)
	assert.Equal(t, "p3", parcels[0].ID)
}

func TestUpsertParcelAndFind(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryBackend(), "gts_", zap.NewNop())

	require.True(t, s.UpsertParcel(ctx, newParcel("p1", "GTS-20250307-1001", "d1")))
	require.True(t, s.UpsertParcel(ctx, newParcel("p2", "GTS-20250307-1002", "d2")))

	updated := newParcel("p1", "GTS-20250307-1001", "d1")
	updated.Status = models.StatusVerified
	require.True(t, s.UpsertParcel(ctx, updated))

	parcels := s.Parcels(ctx)
	require.Len(t, parcels, 2)
	assert.Equal(t, "p1", parcels[0].ID, "upsert keeps position")

	found, ok := s.FindParcelBy(ctx, FieldReferenceNumber, "GTS-20250307-1001")
	require.True(t, ok)
	assert.Equal(t, models.StatusVerified, found.Status)

	_, ok = s.FindParcelBy(ctx, FieldReferenceNumber, "GTS-19990101-0001")
	assert.False(t, ok)

	byDriver := s.FilterParcelsBy(ctx, FieldDriverID, "d2")
	require.Len(t, byDriver, 1)
	assert.Equal(t, "p2", byDriver[0].ID)
}

func TestUpsertConcurrentWritersKeepAllRecords(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryBackend(), "gts_", zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.UpsertParcel(ctx, newParcel(fmt.Sprintf("p%d", i), fmt.Sprintf("GTS-20250307-%04d", 1001+i), "d1"))
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.Parcels(ctx), 40)
}

func TestCounterRoundTripAndLegacyString(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	s := New(backend, "gts_", zap.NewNop())

	s.WriteCounter(ctx, 1042)
	v, ok := s.ReadCounter(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(1042), v)

	require.NoError(t, backend.Set(ctx, "gts_parcel_counter", []byte(`"1077"`)))
	v, ok = s.ReadCounter(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(1077), v)
}

func TestDriverProfile(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryBackend(), "gts_", zap.NewNop())

	_, ok := s.DriverProfile(ctx, "d1")
	assert.False(t, ok)

	s.SaveDriverProfile(ctx, "d1", models.CarrierProfile{Name: "Musa", VehicleNumber: "LAG-1"})
	p, ok := s.DriverProfile(ctx, "d1")
	require.True(t, ok)
	assert.Equal(t, "LAG-1", p.VehicleNumber)
}

func TestUsersFindBy(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryBackend(), "gts_", zap.NewNop())

	s.UpsertUser(ctx, models.User{ID: "u1", Phone: "+2348000000001", Role: models.RoleDriver})
	s.UpsertUser(ctx, models.User{ID: "u2", Phone: "+2348000000002", Role: models.RoleOfficial})

	u, ok := s.FindUserBy(ctx, FieldPhone, "+2348000000002")
	require.True(t, ok)
	assert.Equal(t, "u2", u.ID)

	u, ok = s.FindUserBy(ctx, FieldRole, "driver")
	require.True(t, ok)
	assert.Equal(t, "u1", u.ID)
}

func TestCorruptValueReadsEmpty(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	require.NoError(t, backend.Set(ctx, "gts_parcels", []byte("{not json")))

	s := New(backend, "gts_", zap.NewNop())
	assert.Empty(t, s.Parcels(ctx))
}

func TestPartiallyCorruptValueIsNotWrittenBack(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	require.NoError(t, backend.Set(ctx, "gts_parcels", []byte(`[{"id":"a"},{"id":5}]`)))
	s := New(backend, "gts_", zap.NewNop())

	existing := []models.Parcel{newParcel("keep", "GTS-20250307-1000", "d1")}
	s.ReadAll(ctx, CollectionParcels, &existing)
	require.Len(t, existing, 1)
	assert.Equal(t, "keep", existing[0].ID)

	require.True(t, s.UpsertParcel(ctx, newParcel("p2", "GTS-20250307-1002", "d1")))
	parcels := s.Parcels(ctx)
	require.Len(t, parcels, 1)
	assert.Equal(t, "p2", parcels[0].ID)
}

func TestUnavailableBackendIsAbsorbed(t *testing.T) {
	ctx := context.Background()
	s := New(failingBackend{}, "gts_", zap.NewNop())

	assert.NotPanics(t, func() {
		s.SaveParcels(ctx, []models.Parcel{newParcel("p1", "GTS-20250307-1001", "d1")})
		s.WriteCounter(ctx, 5)
	})
	assert.False(t, s.UpsertParcel(ctx, newParcel("p1", "GTS-20250307-1001", "d1")))
	assert.Empty(t, s.Parcels(ctx))
}

func TestFileBackendPersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	b1, err := NewFileBackend(dir)
	require.NoError(t, err)
	New(b1, "gts_", zap.NewNop()).UpsertParcel(ctx, newParcel("p1", "GTS-20250307-1001", "d1"))

	b2, err := NewFileBackend(dir)
	require.NoError(t, err)
	parcels := New(b2, "gts_", zap.NewNop()).Parcels(ctx)
	require.Len(t, parcels, 1)
	assert.Equal(t, "GTS-20250307-1001", parcels[0].ReferenceNumber)
	assert.True(t, parcels[0].CreatedAt.Equal(time.Date(2025, 3, 7, 10, 30, 0, 0, time.UTC)))

	_, err = b2.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
