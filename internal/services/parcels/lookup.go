package parcels

import (
	"context"
	"fmt"

	"github.com/xelth-com/goodstrack/internal/models"
	"github.com/xelth-com/goodstrack/internal/remote"
	"github.com/xelth-com/goodstrack/internal/store"
	"go.uber.org/zap"
)

// GetParcelByReference returns the parcel with the given reference number.
// The remote backend is tried first when configured; a remote hit is mirrored locally.
func (s *Service) GetParcelByReference(ctx context.Context, ref string) (*models.Parcel, error) {
	if _, err := s.caller(ctx); err != nil {
		return nil, err
	}
	return s.find(ctx, store.FieldReferenceNumber, ref, s.remote.FindParcelByReference)
}

// GetParcelByID returns the parcel with the given id, remote first like GetParcelByReference
func (s *Service) GetParcelByID(ctx context.Context, id string) (*models.Parcel, error) {
	if _, err := s.caller(ctx); err != nil {
		return nil, err
	}
	return s.find(ctx, store.FieldID, id, s.remote.FindParcelByID)
}

func (s *Service) find(ctx context.Context, field, value string, fetch func(context.Context, string) remote.Result[models.Parcel]) (*models.Parcel, error) {
	if value == "" {
		return nil, fmt.Errorf("%w: %s is required", models.ErrInvalidInput, field)
	}

	if s.remote.Configured() {
		res := fetch(ctx, value)
		if res.OK() {
			p := res.Value
			s.mirror(ctx, p)
			return &p, nil
		}
		if res.Failed() {
			s.logger.Warn("⚠️ Remote lookup failed, using local store",
				zap.String(field, value), zap.Error(res.Err))
		}
	}

	p, ok := s.local.FindParcelBy(ctx, field, value)
	if !ok {
		return nil, fmt.Errorf("%w: parcel %s=%s", models.ErrNotFound, field, value)
	}
	return &p, nil
}

func (s *Service) mirror(ctx context.Context, p models.Parcel) {
	if !s.local.UpsertParcel(ctx, p) {
		s.logger.Warn("⚠️ Remote parcel not mirrored locally", zap.String("reference", p.ReferenceNumber))
	}
}

// GetParcelsByDriver returns every parcel registered by a driver.
// Ordering is left to the caller.
func (s *Service) GetParcelsByDriver(ctx context.Context, driverID string) ([]models.Parcel, error) {
	if _, err := s.caller(ctx); err != nil {
		return nil, err
	}
	if driverID == "" {
		return nil, fmt.Errorf("%w: driverId is required", models.ErrInvalidInput)
	}

	if s.remote.Configured() {
		if res := s.remote.ListParcelsByDriver(ctx, driverID); res.OK() {
			for _, p := range res.Value {
				s.mirror(ctx, p)
			}
			return res.Value, nil
		}
	}
	parcels := s.local.FilterParcelsBy(ctx, store.FieldDriverID, driverID)
	if parcels == nil {
		parcels = []models.Parcel{}
	}
	return parcels, nil
}

// ListParcels returns every parcel, for the officials' overview
func (s *Service) ListParcels(ctx context.Context) ([]models.Parcel, error) {
	if _, err := s.caller(ctx); err != nil {
		return nil, err
	}
	if s.remote.Configured() {
		if res := s.remote.ListParcels(ctx); res.OK() {
			for _, p := range res.Value {
				s.mirror(ctx, p)
			}
			return res.Value, nil
		}
	}
	parcels := s.local.Parcels(ctx)
	if parcels == nil {
		parcels = []models.Parcel{}
	}
	return parcels, nil
}

// Stats returns record counts from the remote backend, or computed from the
// local collections when the remote is unavailable.
func (s *Service) Stats(ctx context.Context) (models.Stats, error) {
	if _, err := s.caller(ctx); err != nil {
		return models.Stats{}, err
	}
	if s.remote.Configured() {
		if res := s.remote.Stats(ctx); res.OK() {
			return res.Value, nil
		}
	}

	var st models.Stats
	for _, u := range s.local.Users(ctx) {
		switch u.Role {
		case models.RoleDriver:
			st.Drivers++
		case models.RoleOfficial:
			st.Officials++
		}
	}
	for _, p := range s.local.Parcels(ctx) {
		st.Parcels++
		st.QRCodes++
		if p.Documents != nil {
			st.Documents += 2
		}
	}
	return st, nil
}
