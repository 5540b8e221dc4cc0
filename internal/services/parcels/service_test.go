package parcels

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xelth-com/goodstrack/internal/models"
	"github.com/xelth-com/goodstrack/internal/remote"
	"github.com/xelth-com/goodstrack/internal/services/printer"
	"github.com/xelth-com/goodstrack/internal/store"
	"github.com/xelth-com/goodstrack/internal/utils"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2025, 3, 7, 10, 30, 0, 0, time.UTC)

type fakeAuth struct {
	id   string
	meta models.CarrierProfile
}

func (f fakeAuth) CurrentCallerID(ctx context.Context) (string, bool) { return f.id, f.id != "" }
func (f fakeAuth) CurrentCallerMetadata(ctx context.Context) models.CarrierProfile {
	return f.meta
}

// fakeRemote is an in-memory remote backend; fail makes every call fail
type fakeRemote struct {
	mu         sync.Mutex
	configured bool
	fail       bool
	parcels    map[string]models.Parcel
	statusIDs  []string
	qrCodes    []models.QRCodeRecord
	documents  []models.DocumentBlob
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{configured: true, parcels: make(map[string]models.Parcel)}
}

func (f *fakeRemote) Configured() bool { return f.configured }

func failed[T any]() remote.Result[T] {
	return remote.Result[T]{Outcome: remote.OutcomeFailed, Err: models.ErrRemoteUnavailable}
}

func (f *fakeRemote) UpsertParcel(ctx context.Context, p models.Parcel) remote.Result[models.Parcel] {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return failed[models.Parcel]()
	}
	f.parcels[p.ID] = p
	return remote.Result[models.Parcel]{Value: p, Outcome: remote.OutcomeOK}
}

func (f *fakeRemote) find(match func(models.Parcel) bool) remote.Result[models.Parcel] {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return failed[models.Parcel]()
	}
	for _, p := range f.parcels {
		if match(p) {
			return remote.Result[models.Parcel]{Value: p, Outcome: remote.OutcomeOK}
		}
	}
	return remote.Result[models.Parcel]{Outcome: remote.OutcomeEmpty}
}

func (f *fakeRemote) FindParcelByID(ctx context.Context, id string) remote.Result[models.Parcel] {
	return f.find(func(p models.Parcel) bool { return p.ID == id })
}

func (f *fakeRemote) FindParcelByReference(ctx context.Context, ref string) remote.Result[models.Parcel] {
	return f.find(func(p models.Parcel) bool { return p.ReferenceNumber == ref })
}

func (f *fakeRemote) list(match func(models.Parcel) bool) remote.Result[[]models.Parcel] {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return failed[[]models.Parcel]()
	}
	var out []models.Parcel
	for _, p := range f.parcels {
		if match(p) {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return remote.Result[[]models.Parcel]{Outcome: remote.OutcomeEmpty}
	}
	return remote.Result[[]models.Parcel]{Value: out, Outcome: remote.OutcomeOK}
}

func (f *fakeRemote) ListParcels(ctx context.Context) remote.Result[[]models.Parcel] {
	return f.list(func(models.Parcel) bool { return true })
}

func (f *fakeRemote) ListParcelsByDriver(ctx context.Context, driverID string) remote.Result[[]models.Parcel] {
	return f.list(func(p models.Parcel) bool { return p.DriverID == driverID })
}

func (f *fakeRemote) UpdateParcelStatus(ctx context.Context, id string, status models.ParcelStatus, docs *models.ParcelDocuments) remote.Result[models.Parcel] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusIDs = append(f.statusIDs, id)
	p, ok := f.parcels[id]
	if !ok {
		return remote.Result[models.Parcel]{Outcome: remote.OutcomeEmpty}
	}
	p.Status = status
	p.Documents = docs
	f.parcels[id] = p
	return remote.Result[models.Parcel]{Value: p, Outcome: remote.OutcomeOK}
}

func (f *fakeRemote) SaveQRCode(ctx context.Context, q models.QRCodeRecord) remote.Result[models.QRCodeRecord] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.qrCodes = append(f.qrCodes, q)
	return remote.Result[models.QRCodeRecord]{Value: q, Outcome: remote.OutcomeOK}
}

func (f *fakeRemote) SaveDocument(ctx context.Context, d models.DocumentBlob) remote.Result[models.DocumentBlob] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.documents = append(f.documents, d)
	return remote.Result[models.DocumentBlob]{Value: d, Outcome: remote.OutcomeOK}
}

func (f *fakeRemote) ListDocumentsByParcel(ctx context.Context, parcelID string) remote.Result[[]models.DocumentBlob] {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.DocumentBlob
	for _, d := range f.documents {
		if d.ParcelID == parcelID {
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		return remote.Result[[]models.DocumentBlob]{Outcome: remote.OutcomeEmpty}
	}
	return remote.Result[[]models.DocumentBlob]{Value: out, Outcome: remote.OutcomeOK}
}

func (f *fakeRemote) Stats(ctx context.Context) remote.Result[models.Stats] {
	if f.fail {
		return failed[models.Stats]()
	}
	return remote.Result[models.Stats]{Value: models.Stats{Parcels: int64(len(f.parcels))}, Outcome: remote.OutcomeOK}
}

type fixture struct {
	svc    *Service
	local  *store.Store
	remote *fakeRemote
}

func newFixture(t *testing.T, configured bool, auth Authenticator) fixture {
	t.Helper()
	local := store.New(store.NewMemoryBackend(), "gts_", zap.NewNop())
	rem := newFakeRemote()
	rem.configured = configured
	refs := utils.NewReferenceGenerator("GTS", local, func() time.Time { return fixedNow })
	svc := NewService(local, rem, refs, auth, zap.NewNop(), WithClock(func() time.Time { return fixedNow }))
	return fixture{svc: svc, local: local, remote: rem}
}

func laptopRequest() CreateParcelRequest {
	return CreateParcelRequest{
		Sender:   models.Party{Name: "Ada Obi", Address: "12 Marina, Lagos", Contact: "+2348011111111"},
		Receiver: models.Party{Name: "Sani Umar", Address: "4 Zoo Road, Kano", Contact: "+2348022222222"},
		Items:    []models.Item{{Name: "Laptop", Category: "electronics", Value: "200000", Weight: "5"}},
		DriverID: "D1",
	}
}

func TestCreateParcelEndToEnd(t *testing.T) {
	f := newFixture(t, false, fakeAuth{id: "D1"})
	ctx := context.Background()

	p, err := f.svc.CreateParcel(ctx, laptopRequest())
	require.NoError(t, err)

	assert.Equal(t, models.StatusRegistered, p.Status)
	assert.Equal(t, "GTS-20250307-1001", p.ReferenceNumber)
	assert.Len(t, p.ID, 36)
	assert.Equal(t, fixedNow, p.CreatedAt)
	require.Len(t, p.Items, 1)
	assert.Equal(t, "8517.62.00", p.Items[0].HSCode)
	assert.Equal(t, "0.0333", p.Items[0].CubicVolume)
	require.NotNil(t, p.Documents)
	assert.Equal(t, "5.00 Kg", p.Documents.BillOfLading.TotalWeight)
	assert.Equal(t, 1, p.Documents.RoadManifest.TotalItems)
	assert.Equal(t, models.StatusRegistered, p.Documents.RoadManifest.Status)
	assert.Equal(t, p.ReferenceNumber, p.Documents.BillOfLading.ReferenceNumber)

	stored, ok := f.local.FindParcelBy(ctx, store.FieldReferenceNumber, p.ReferenceNumber)
	require.True(t, ok)
	assert.Equal(t, *p, stored)
	assert.Empty(t, f.remote.parcels, "create does not push")

	next, err := f.svc.CreateParcel(ctx, laptopRequest())
	require.NoError(t, err)
	assert.Equal(t, "GTS-20250307-1002", next.ReferenceNumber)
	assert.NotEqual(t, p.ID, next.ID)
}

func TestCreateParcelUnauthenticated(t *testing.T) {
	f := newFixture(t, false, fakeAuth{})
	ctx := context.Background()

	_, err := f.svc.CreateParcel(ctx, laptopRequest())
	assert.True(t, errors.Is(err, models.ErrUnauthenticated))
	assert.Empty(t, f.local.Parcels(ctx))

	_, ok := f.local.ReadCounter(ctx)
	assert.False(t, ok, "no reference consumed")
}

func TestCreateParcelInvalidInput(t *testing.T) {
	cases := map[string]func(*CreateParcelRequest){
		"no items":          func(r *CreateParcelRequest) { r.Items = nil },
		"empty items":       func(r *CreateParcelRequest) { r.Items = []models.Item{} },
		"missing sender":    func(r *CreateParcelRequest) { r.Sender = models.Party{} },
		"missing receiver":  func(r *CreateParcelRequest) { r.Receiver.Address = "" },
		"unnamed item":      func(r *CreateParcelRequest) { r.Items[0].Name = "" },
		"missing driver":    func(r *CreateParcelRequest) { r.DriverID = "" },
		"bad document type": func(r *CreateParcelRequest) { r.Items[0].OtherDocuments = []models.AuxDocument{{Name: "x", Type: "zip"}} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, false, fakeAuth{id: "D1"})
			ctx := context.Background()
			req := laptopRequest()
			mutate(&req)

			_, err := f.svc.CreateParcel(ctx, req)
			assert.True(t, errors.Is(err, models.ErrInvalidInput), "got %v", err)
			assert.Empty(t, f.local.Parcels(ctx))
		})
	}
}

func TestCreateParcelCarrierResolution(t *testing.T) {
	f := newFixture(t, false, fakeAuth{id: "D1", meta: models.CarrierProfile{
		Name:          "Session Name",
		VehicleNumber: "SESSION-1",
		DriverPhoto:   "data:image/png;base64,AAA",
	}})
	ctx := context.Background()
	f.local.SaveDriverProfile(ctx, "D1", models.CarrierProfile{Name: "Musa Bello", VehicleNumber: "LAG-123-XY"})
	f.local.UpsertUser(ctx, models.User{ID: "D1", Role: models.RoleDriver, DisplayName: "Musa B.", VINNumber: "VIN-9"})

	p, err := f.svc.CreateParcel(ctx, laptopRequest())
	require.NoError(t, err)

	carrier := p.Documents.BillOfLading.Carrier
	assert.Equal(t, "D1", carrier.DriverID)
	assert.Equal(t, "Musa Bello", carrier.DriverName)
	assert.Equal(t, "LAG-123-XY", carrier.VehicleNumber)
	assert.Equal(t, "VIN-9", carrier.VINNumber)
	assert.Equal(t, "data:image/png;base64,AAA", p.Documents.RoadManifest.Driver.DriverPhoto)
}

func TestCreateParcelWithoutCarrierInfo(t *testing.T) {
	f := newFixture(t, false, fakeAuth{id: "D1"})

	p, err := f.svc.CreateParcel(context.Background(), laptopRequest())
	require.NoError(t, err)
	assert.Equal(t, models.CarrierDetails{DriverID: "D1"}, p.Documents.BillOfLading.Carrier)
}

func TestCreateParcelSharesOneInstant(t *testing.T) {
	local := store.New(store.NewMemoryBackend(), "gts_", zap.NewNop())
	// 23:59 in UTC-1 is already the next day in UTC
	clock := func() time.Time {
		return time.Date(2025, 3, 7, 23, 59, 59, 123456789, time.FixedZone("AZOT", -3600))
	}
	rem := newFakeRemote()
	rem.configured = false
	refs := utils.NewReferenceGenerator("GTS", local, nil)
	svc := NewService(local, rem, refs, fakeAuth{id: "D1"}, zap.NewNop(), WithClock(clock))

	p, err := svc.CreateParcel(context.Background(), laptopRequest())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 3, 8, 0, 59, 59, 123000000, time.UTC), p.CreatedAt)
	assert.Equal(t, "GTS-20250308-1001", p.ReferenceNumber)
	assert.Equal(t, p.CreatedAt, p.Documents.BillOfLading.IssueDate)
}

func TestListParcelsMirrorsRemoteListing(t *testing.T) {
	f := newFixture(t, true, fakeAuth{id: "official-1"})
	ctx := context.Background()
	f.remote.parcels["r1"] = models.Parcel{ID: "r1", ReferenceNumber: "GTS-20250306-1500", DriverID: "D2", Status: models.StatusRegistered}
	f.remote.parcels["r2"] = models.Parcel{ID: "r2", ReferenceNumber: "GTS-20250306-1501", DriverID: "D3", Status: models.StatusVerified}

	list, err := f.svc.ListParcels(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	for _, id := range []string{"r1", "r2"} {
		mirrored, ok := f.local.FindParcelBy(ctx, store.FieldID, id)
		require.True(t, ok, id)
		assert.Equal(t, f.remote.parcels[id], mirrored)
	}
}

func TestGetParcelLocal(t *testing.T) {
	f := newFixture(t, false, fakeAuth{id: "D1"})
	ctx := context.Background()
	created, err := f.svc.CreateParcel(ctx, laptopRequest())
	require.NoError(t, err)

	byRef, err := f.svc.GetParcelByReference(ctx, created.ReferenceNumber)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byRef.ID)

	byID, err := f.svc.GetParcelByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ReferenceNumber, byID.ReferenceNumber)

	_, err = f.svc.GetParcelByReference(ctx, "GTS-20250307-9999")
	assert.True(t, errors.Is(err, models.ErrNotFound))
	_, err = f.svc.GetParcelByID(ctx, "missing")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestGetParcelRemoteFirstMirrorsLocally(t *testing.T) {
	f := newFixture(t, true, fakeAuth{id: "official-1"})
	ctx := context.Background()
	remoteOnly := models.Parcel{ID: "r1", ReferenceNumber: "GTS-20250306-1500", DriverID: "D2", Status: models.StatusRegistered}
	f.remote.parcels["r1"] = remoteOnly

	p, err := f.svc.GetParcelByReference(ctx, "GTS-20250306-1500")
	require.NoError(t, err)
	assert.Equal(t, "r1", p.ID)

	mirrored, ok := f.local.FindParcelBy(ctx, store.FieldID, "r1")
	require.True(t, ok)
	assert.Equal(t, remoteOnly, mirrored)
}

func TestGetParcelFallsBackWhenRemoteFails(t *testing.T) {
	f := newFixture(t, true, fakeAuth{id: "D1"})
	ctx := context.Background()
	created, err := f.svc.CreateParcel(ctx, laptopRequest())
	require.NoError(t, err)

	f.remote.fail = true
	p, err := f.svc.GetParcelByReference(ctx, created.ReferenceNumber)
	require.NoError(t, err)
	assert.Equal(t, created.ID, p.ID)

	list, err := f.svc.ListParcels(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestReadsRequireCaller(t *testing.T) {
	f := newFixture(t, false, nil)
	ctx := context.Background()

	_, err := f.svc.GetParcelByReference(ctx, "GTS-20250307-1001")
	assert.True(t, errors.Is(err, models.ErrUnauthenticated))
	_, err = f.svc.GetParcelsByDriver(ctx, "D1")
	assert.True(t, errors.Is(err, models.ErrUnauthenticated))
	_, err = f.svc.AcknowledgeParcel(ctx, "GTS-20250307-1001")
	assert.True(t, errors.Is(err, models.ErrUnauthenticated))
}

func TestGetParcelsByDriver(t *testing.T) {
	f := newFixture(t, false, fakeAuth{id: "D1"})
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, err := f.svc.CreateParcel(ctx, laptopRequest())
		require.NoError(t, err)
	}
	other := laptopRequest()
	other.DriverID = "D2"
	_, err := f.svc.CreateParcel(ctx, other)
	require.NoError(t, err)

	mine, err := f.svc.GetParcelsByDriver(ctx, "D1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	none, err := f.svc.GetParcelsByDriver(ctx, "D9")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestAcknowledgeParcel(t *testing.T) {
	f := newFixture(t, false, fakeAuth{id: "official-1"})
	ctx := context.Background()
	created, err := f.svc.CreateParcel(ctx, laptopRequest())
	require.NoError(t, err)

	acked, err := f.svc.AcknowledgeParcel(ctx, created.ReferenceNumber)
	require.NoError(t, err)
	assert.Equal(t, models.StatusVerified, acked.Status)
	assert.Equal(t, models.StatusVerified, acked.Documents.RoadManifest.Status)

	again, err := f.svc.AcknowledgeParcel(ctx, created.ReferenceNumber)
	require.NoError(t, err)
	assert.Equal(t, models.StatusVerified, again.Status)

	stored, _ := f.local.FindParcelBy(ctx, store.FieldReferenceNumber, created.ReferenceNumber)
	assert.Equal(t, models.StatusVerified, stored.Status)
	assert.Equal(t, models.StatusRegistered, created.Documents.RoadManifest.Status, "original value untouched")

	_, err = f.svc.AcknowledgeParcel(ctx, "GTS-20250307-4040")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestAcknowledgeUpdatesRemoteWhenConfigured(t *testing.T) {
	f := newFixture(t, true, fakeAuth{id: "official-1"})
	ctx := context.Background()
	created, err := f.svc.CreateParcel(ctx, laptopRequest())
	require.NoError(t, err)
	f.remote.UpsertParcel(ctx, *created)

	_, err = f.svc.AcknowledgeParcel(ctx, created.ReferenceNumber)
	require.NoError(t, err)
	assert.Equal(t, []string{created.ID}, f.remote.statusIDs)
	assert.Equal(t, models.StatusVerified, f.remote.parcels[created.ID].Status)
}

func TestUpdateParcelStatusIsMonotonic(t *testing.T) {
	f := newFixture(t, false, fakeAuth{id: "official-1"})
	ctx := context.Background()
	created, err := f.svc.CreateParcel(ctx, laptopRequest())
	require.NoError(t, err)
	ref := created.ReferenceNumber

	delivered, err := f.svc.UpdateParcelStatus(ctx, ref, models.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, delivered.Status)

	_, err = f.svc.UpdateParcelStatus(ctx, ref, models.StatusVerified)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))

	same, err := f.svc.UpdateParcelStatus(ctx, ref, models.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, same.Status)

	_, err = f.svc.UpdateParcelStatus(ctx, ref, "lost")
	assert.True(t, errors.Is(err, models.ErrInvalidInput))

	acked, err := f.svc.AcknowledgeParcel(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, acked.Status, "acknowledge never moves backward")
}

func TestQRCodeAndDocuments(t *testing.T) {
	f := newFixture(t, false, fakeAuth{id: "D1"})
	ctx := context.Background()
	created, err := f.svc.CreateParcel(ctx, laptopRequest())
	require.NoError(t, err)

	data, err := f.svc.QRCode(ctx, created.ReferenceNumber, 200)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())

	for _, kind := range []models.DocumentKind{models.DocumentKindBillOfLading, models.DocumentKindRoadManifest} {
		pdf, err := f.svc.RenderDocument(ctx, created.ReferenceNumber, kind)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	}

	_, err = f.svc.RenderDocument(ctx, created.ReferenceNumber, models.DocumentKindOther)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
}

func TestRenderSynthesizesMissingDocuments(t *testing.T) {
	f := newFixture(t, false, fakeAuth{id: "D1"})
	ctx := context.Background()
	legacy := models.Parcel{
		ID:              "legacy-1",
		ReferenceNumber: "GTS-20240101-1001",
		DriverID:        "D1",
		Items:           []models.Item{{Name: "Rice", Value: "50000", Weight: "50"}},
		Status:          models.StatusRegistered,
		CreatedAt:       fixedNow,
	}
	f.local.UpsertParcel(ctx, legacy)

	pdf, err := f.svc.RenderDocument(ctx, legacy.ReferenceNumber, models.DocumentKindRoadManifest)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestPublishArtifacts(t *testing.T) {
	t.Run("skipped without remote", func(t *testing.T) {
		f := newFixture(t, false, fakeAuth{id: "D1"})
		ctx := context.Background()
		created, err := f.svc.CreateParcel(ctx, laptopRequest())
		require.NoError(t, err)

		res, err := f.svc.PublishArtifacts(ctx, created.ReferenceNumber)
		require.NoError(t, err)
		assert.True(t, res.Skipped)
		assert.Empty(t, f.remote.qrCodes)

		stored, err := f.svc.StoredDocuments(ctx, created.ReferenceNumber)
		require.NoError(t, err)
		assert.NotNil(t, stored)
		assert.Empty(t, stored)
	})

	t.Run("stores qr and both documents", func(t *testing.T) {
		f := newFixture(t, true, fakeAuth{id: "D1"})
		ctx := context.Background()
		created, err := f.svc.CreateParcel(ctx, laptopRequest())
		require.NoError(t, err)

		res, err := f.svc.PublishArtifacts(ctx, created.ReferenceNumber)
		require.NoError(t, err)
		assert.True(t, res.QRCode)
		assert.Equal(t, []string{"bill_of_lading", "road_manifest"}, res.Documents)
		assert.Empty(t, res.Failed)

		require.Len(t, f.remote.qrCodes, 1)
		assert.Contains(t, f.remote.qrCodes[0].QRData, created.ReferenceNumber)
		require.Len(t, f.remote.documents, 2)
		assert.Equal(t, "application/pdf", f.remote.documents[0].FileType)
		assert.Equal(t, created.ReferenceNumber+"_bill_of_lading.pdf", f.remote.documents[0].FileName)
		assert.NotEmpty(t, f.remote.documents[1].FileData)

		stored, err := f.svc.StoredDocuments(ctx, created.ReferenceNumber)
		require.NoError(t, err)
		assert.Len(t, stored, 2)
	})
}

func TestStatsLocalFallback(t *testing.T) {
	f := newFixture(t, false, fakeAuth{id: "D1"})
	ctx := context.Background()
	f.local.UpsertUser(ctx, models.User{ID: "D1", Role: models.RoleDriver})
	f.local.UpsertUser(ctx, models.User{ID: "O1", Role: models.RoleOfficial})
	_, err := f.svc.CreateParcel(ctx, laptopRequest())
	require.NoError(t, err)

	st, err := f.svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Stats{Drivers: 1, Officials: 1, Parcels: 1, Documents: 2, QRCodes: 1}, st)
}

func TestLabelSheet(t *testing.T) {
	f := newFixture(t, false, fakeAuth{id: "D1"})
	ctx := context.Background()
	created, err := f.svc.CreateParcel(ctx, laptopRequest())
	require.NoError(t, err)

	pdf, err := f.svc.LabelSheet(ctx, []string{created.ReferenceNumber}, printer.LabelSheetConfig{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	_, err = f.svc.LabelSheet(ctx, nil, printer.DefaultLabelSheet)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))

	_, err = f.svc.LabelSheet(ctx, []string{"GTS-20250307-0000"}, printer.DefaultLabelSheet)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}
