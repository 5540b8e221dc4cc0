package parcels

import (
	"context"
	"fmt"

	"github.com/xelth-com/goodstrack/internal/models"
	"go.uber.org/zap"
)

// AcknowledgeParcel marks a registered parcel as verified.
// Acknowledging a parcel that is already verified or delivered changes nothing.
func (s *Service) AcknowledgeParcel(ctx context.Context, ref string) (*models.Parcel, error) {
	p, err := s.GetParcelByReference(ctx, ref)
	if err != nil {
		return nil, err
	}
	if p.Status.Rank() >= models.StatusVerified.Rank() {
		s.logger.Debug("Parcel already acknowledged", zap.String("reference", ref), zap.String("status", string(p.Status)))
		return p, nil
	}
	return s.transition(ctx, *p, models.StatusVerified)
}

// UpdateParcelStatus moves a parcel forward in its lifecycle.
// Backward moves fail with ErrInvalidInput; setting the current status is a no-op.
func (s *Service) UpdateParcelStatus(ctx context.Context, ref string, status models.ParcelStatus) (*models.Parcel, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", models.ErrInvalidInput, status)
	}
	p, err := s.GetParcelByReference(ctx, ref)
	if err != nil {
		return nil, err
	}
	if p.Status == status {
		return p, nil
	}
	if !p.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: cannot move parcel from %s to %s", models.ErrInvalidInput, p.Status, status)
	}
	return s.transition(ctx, *p, status)
}

func (s *Service) transition(ctx context.Context, p models.Parcel, status models.ParcelStatus) (*models.Parcel, error) {
	from := p.Status
	p.Status = status
	if p.Documents != nil {
		docs := *p.Documents
		docs.RoadManifest.Status = status
		p.Documents = &docs
	}

	if !s.local.UpsertParcel(ctx, p) {
		s.logger.Error("❌ Status change not persisted locally", zap.String("reference", p.ReferenceNumber))
	}
	if s.remote.Configured() {
		if res := s.remote.UpdateParcelStatus(ctx, p.ID, status, p.Documents); !res.OK() {
			// the next push carries the change
			s.logger.Warn("⚠️ Remote status update deferred",
				zap.String("reference", p.ReferenceNumber),
				zap.Stringer("outcome", res.Outcome))
		}
	}

	s.logger.Info("🔄 Parcel status changed",
		zap.String("reference", p.ReferenceNumber),
		zap.String("from", string(from)),
		zap.String("to", string(status)))
	return &p, nil
}
