// Package parcels is the public core API used by the UI collaborators:
// registering parcels, looking them up and moving them through their lifecycle.
package parcels

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/xelth-com/goodstrack/internal/models"
	"github.com/xelth-com/goodstrack/internal/remote"
	"github.com/xelth-com/goodstrack/internal/services/documents"
	"github.com/xelth-com/goodstrack/internal/store"
	"github.com/xelth-com/goodstrack/internal/utils"
	"go.uber.org/zap"
)

// Authenticator supplies the identity of the current caller
type Authenticator interface {
	CurrentCallerID(ctx context.Context) (string, bool)
	CurrentCallerMetadata(ctx context.Context) models.CarrierProfile
}

// Local is the part of the Local Store the service reads and writes
type Local interface {
	Parcels(ctx context.Context) []models.Parcel
	UpsertParcel(ctx context.Context, p models.Parcel) bool
	FindParcelBy(ctx context.Context, field, value string) (models.Parcel, bool)
	FilterParcelsBy(ctx context.Context, field, value string) []models.Parcel
	Users(ctx context.Context) []models.User
	FindUserBy(ctx context.Context, field, value string) (models.User, bool)
	DriverProfile(ctx context.Context, driverID string) (models.CarrierProfile, bool)
}

// Remote is the part of the Remote Store Adapter the service uses
type Remote interface {
	Configured() bool
	UpsertParcel(ctx context.Context, p models.Parcel) remote.Result[models.Parcel]
	FindParcelByID(ctx context.Context, id string) remote.Result[models.Parcel]
	FindParcelByReference(ctx context.Context, ref string) remote.Result[models.Parcel]
	ListParcels(ctx context.Context) remote.Result[[]models.Parcel]
	ListParcelsByDriver(ctx context.Context, driverID string) remote.Result[[]models.Parcel]
	UpdateParcelStatus(ctx context.Context, id string, status models.ParcelStatus, docs *models.ParcelDocuments) remote.Result[models.Parcel]
	SaveQRCode(ctx context.Context, q models.QRCodeRecord) remote.Result[models.QRCodeRecord]
	SaveDocument(ctx context.Context, d models.DocumentBlob) remote.Result[models.DocumentBlob]
	ListDocumentsByParcel(ctx context.Context, parcelID string) remote.Result[[]models.DocumentBlob]
	Stats(ctx context.Context) remote.Result[models.Stats]
}

// CreateParcelRequest is the raw form input for a new parcel
type CreateParcelRequest struct {
	Sender   models.Party  `json:"sender"`
	Receiver models.Party  `json:"receiver"`
	Items    []models.Item `json:"items" validate:"required,min=1,dive"`
	DriverID string        `json:"driverId" validate:"required"`
}

// Service implements the parcel operations
type Service struct {
	local    Local
	remote   Remote
	refs     *utils.ReferenceGenerator
	auth     Authenticator
	logger   *zap.Logger
	validate *validator.Validate
	now      func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithClock overrides the clock used for creation timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService wires the parcel service. A nil remote behaves as not configured.
func NewService(local Local, rem Remote, refs *utils.ReferenceGenerator, auth Authenticator, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rem == nil {
		rem = remote.New(nil, logger)
	}
	s := &Service{
		local:    local,
		remote:   rem,
		refs:     refs,
		auth:     auth,
		logger:   logger.Named("parcels"),
		validate: validator.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) caller(ctx context.Context) (string, error) {
	if s.auth == nil {
		return "", models.ErrUnauthenticated
	}
	id, ok := s.auth.CurrentCallerID(ctx)
	if !ok || id == "" {
		return "", models.ErrUnauthenticated
	}
	return id, nil
}

// CreateParcel validates the input, assigns an id and reference number,
// synthesizes the documents and stores the record locally.
// It does not push to the remote backend; the sync engine does that.
func (s *Service) CreateParcel(ctx context.Context, req CreateParcelRequest) (*models.Parcel, error) {
	callerID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, invalidInput(err)
	}

	carrier := s.resolveCarrier(ctx, req.DriverID, s.auth.CurrentCallerMetadata(ctx))

	created := s.now().UTC().Truncate(time.Millisecond)
	p := models.Parcel{
		ID:              utils.NewRecordID(),
		ReferenceNumber: s.refs.NextAt(ctx, created),
		DriverID:        req.DriverID,
		Sender:          req.Sender,
		Receiver:        req.Receiver,
		Items:           normalizeItems(req.Items),
		Status:          models.StatusRegistered,
		CreatedAt:       created,
	}
	docs := documents.Synthesize(p, carrier)
	p.Documents = &docs

	if !s.local.UpsertParcel(ctx, p) {
		s.logger.Error("❌ Parcel created but not persisted locally",
			zap.String("reference", p.ReferenceNumber))
	}

	s.logger.Info("📦 Parcel registered",
		zap.String("reference", p.ReferenceNumber),
		zap.String("driver_id", p.DriverID),
		zap.String("caller_id", callerID),
		zap.Int("items", len(p.Items)))
	return &p, nil
}

// resolveCarrier merges the saved driver profile, the local user record and
// the caller's session metadata, in that order of precedence.
func (s *Service) resolveCarrier(ctx context.Context, driverID string, session models.CarrierProfile) *models.CarrierProfile {
	var carrier models.CarrierProfile
	if profile, ok := s.local.DriverProfile(ctx, driverID); ok {
		carrier = profile
	} else {
		s.logger.Debug("No saved driver profile", zap.String("driver_id", driverID))
	}
	if u, ok := s.local.FindUserBy(ctx, store.FieldID, driverID); ok {
		carrier = carrier.Merge(u.CarrierProfile())
	}
	carrier = carrier.Merge(session)
	if carrier.IsZero() {
		return nil
	}
	return &carrier
}

// normalizeItems recomputes derived item fields
func normalizeItems(items []models.Item) []models.Item {
	out := make([]models.Item, len(items))
	for i, item := range items {
		item.Name = strings.TrimSpace(item.Name)
		item.CubicVolume = utils.CubicVolume(item.Weight, item.Value)
		if item.HSCode == "" {
			item.HSCode = utils.HSCode(item.Category)
		}
		out[i] = item
	}
	return out
}

func invalidInput(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Namespace()+" "+fe.Tag())
		}
		return fmt.Errorf("%w: %s", models.ErrInvalidInput, strings.Join(fields, ", "))
	}
	return fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
}
